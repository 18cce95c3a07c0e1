// Package config loads daybook settings from defaults, a TOML file and
// DAYBOOK_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/alexanderramin/daybook/internal/llm"
	"github.com/alexanderramin/daybook/internal/scheduler"
	"github.com/alexanderramin/daybook/internal/service"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Storage  StorageConfig  `toml:"storage"`
	LLM      LLMConfig      `toml:"llm"`
	Telegram TelegramConfig `toml:"telegram"`
	HTTP     HTTPConfig     `toml:"http"`
}

type ScheduleConfig struct {
	WorkStart        string `toml:"work_start"`        // "08:00"
	WorkEnd          string `toml:"work_end"`          // "17:00"
	Timezone         string `toml:"timezone"`          // IANA name
	AutoBlockStart   string `toml:"auto_block_start"`  // "13:00"
	AutoBlockEnd     string `toml:"auto_block_end"`    // "18:00"
	RecurringInvalid string `toml:"recurring_invalid"` // "skip" or "error"
}

type StorageConfig struct {
	// DSN is a sqlite path, ":memory:", or a postgres:// URL.
	DSN string `toml:"dsn"`
}

type LLMConfig struct {
	Enabled    bool   `toml:"enabled"`
	Provider   string `toml:"provider"`
	Model      string `toml:"model"`
	BaseURL    string `toml:"base_url"`
	APIKey     string `toml:"api_key"`
	TimeoutMs  int    `toml:"timeout_ms"`
	MaxRetries int    `toml:"max_retries"`
	LogCalls   bool   `toml:"log_calls"`
}

type TelegramConfig struct {
	BotToken string `toml:"bot_token"`
	ChatID   string `toml:"chat_id"`
}

type HTTPConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins"`
	// JWTSecret enables bearer auth when non-empty.
	JWTSecret string `toml:"jwt_secret"`
}

func Default() *Config {
	l := llm.DefaultConfig()
	return &Config{
		Schedule: ScheduleConfig{
			WorkStart:        "08:00",
			WorkEnd:          "17:00",
			Timezone:         "Asia/Jakarta",
			AutoBlockStart:   "13:00",
			AutoBlockEnd:     "18:00",
			RecurringInvalid: string(scheduler.SkipInvalid),
		},
		Storage: StorageConfig{DSN: defaultDSN()},
		LLM: LLMConfig{
			Provider:   string(l.Provider),
			Model:      l.Model,
			BaseURL:    l.Endpoint,
			TimeoutMs:  l.TimeoutMs,
			MaxRetries: l.MaxRetries,
		},
		HTTP: HTTPConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

func defaultDSN() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "daybook.db"
	}
	return filepath.Join(home, ".local", "share", "daybook", "daybook.db")
}

// DefaultPath is ~/.config/daybook/config.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "daybook", "config.toml")
}

// Load reads the config at path, or DefaultPath when path is empty. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()
	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}
	applyEnv(cfg)
	cfg.Storage.DSN = expandPath(cfg.Storage.DSN)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// applyEnv overlays the non-LLM DAYBOOK_* variables. LLM variables are
// applied by llm.ApplyEnv in LLMSettings.
func applyEnv(cfg *Config) {
	set := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set("DAYBOOK_WORK_START", &cfg.Schedule.WorkStart)
	set("DAYBOOK_WORK_END", &cfg.Schedule.WorkEnd)
	set("DAYBOOK_TIMEZONE", &cfg.Schedule.Timezone)
	set("DAYBOOK_AUTO_BLOCK_START", &cfg.Schedule.AutoBlockStart)
	set("DAYBOOK_AUTO_BLOCK_END", &cfg.Schedule.AutoBlockEnd)
	set("DAYBOOK_RECURRING_INVALID", &cfg.Schedule.RecurringInvalid)
	set("DAYBOOK_DSN", &cfg.Storage.DSN)
	set("DAYBOOK_TELEGRAM_BOT_TOKEN", &cfg.Telegram.BotToken)
	set("DAYBOOK_TELEGRAM_CHAT_ID", &cfg.Telegram.ChatID)
	set("DAYBOOK_HTTP_ADDR", &cfg.HTTP.Addr)
	set("DAYBOOK_JWT_SECRET", &cfg.HTTP.JWTSecret)
	if v := os.Getenv("DAYBOOK_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = strings.Split(v, ",")
	}
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func (c *Config) Validate() error {
	// ParseWorkHours also rejects end <= start.
	if _, err := scheduler.ParseWorkHours(c.Schedule.WorkStart, c.Schedule.WorkEnd); err != nil {
		return fmt.Errorf("work hours: %w", err)
	}
	if _, err := scheduler.ParseWorkHours(c.Schedule.AutoBlockStart, c.Schedule.AutoBlockEnd); err != nil {
		return fmt.Errorf("auto block: %w", err)
	}
	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Schedule.Timezone, err)
	}
	switch scheduler.InvalidWindowPolicy(c.Schedule.RecurringInvalid) {
	case scheduler.SkipInvalid, scheduler.RejectInvalid:
	default:
		return fmt.Errorf("recurring_invalid must be %q or %q, got %q",
			scheduler.SkipInvalid, scheduler.RejectInvalid, c.Schedule.RecurringInvalid)
	}
	switch llm.Provider(c.LLM.Provider) {
	case llm.ProviderOllama, llm.ProviderOpenAI:
	default:
		return fmt.Errorf("%w: %q", llm.ErrUnknownProvider, c.LLM.Provider)
	}
	if c.Storage.DSN == "" {
		return errors.New("storage dsn must be set")
	}
	return nil
}

// ServiceSettings converts the schedule section. Call after Validate.
func (c *Config) ServiceSettings() (service.Settings, error) {
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return service.Settings{}, err
	}
	work, err := scheduler.ParseWorkHours(c.Schedule.WorkStart, c.Schedule.WorkEnd)
	if err != nil {
		return service.Settings{}, err
	}
	block, err := scheduler.ParseWorkHours(c.Schedule.AutoBlockStart, c.Schedule.AutoBlockEnd)
	if err != nil {
		return service.Settings{}, err
	}
	return service.Settings{
		Location:        loc,
		WorkHours:       work,
		AutoBlock:       block,
		RecurringPolicy: scheduler.InvalidWindowPolicy(c.Schedule.RecurringInvalid),
	}, nil
}

// LLMSettings merges the [llm] section over the llm defaults and then
// applies DAYBOOK_LLM_* overrides.
func (c *Config) LLMSettings() llm.LLMConfig {
	out := llm.DefaultConfig()
	out.Enabled = c.LLM.Enabled
	out.LogCalls = c.LLM.LogCalls
	if c.LLM.Provider != "" {
		out.Provider = llm.Provider(c.LLM.Provider)
	}
	if c.LLM.Model != "" {
		out.Model = c.LLM.Model
	}
	if c.LLM.BaseURL != "" {
		out.Endpoint = strings.TrimRight(c.LLM.BaseURL, "/")
	}
	out.APIKey = c.LLM.APIKey
	if c.LLM.TimeoutMs > 0 {
		out.TimeoutMs = c.LLM.TimeoutMs
	}
	if c.LLM.MaxRetries >= 0 {
		out.MaxRetries = c.LLM.MaxRetries
	}
	llm.ApplyEnv(&out)
	return out
}
