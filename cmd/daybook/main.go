package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/alexanderramin/daybook/internal/agent"
	"github.com/alexanderramin/daybook/internal/cli"
	"github.com/alexanderramin/daybook/internal/config"
	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/httpapi"
	"github.com/alexanderramin/daybook/internal/llm"
	"github.com/alexanderramin/daybook/internal/notify"
	"github.com/alexanderramin/daybook/internal/repository"
	"github.com/alexanderramin/daybook/internal/service"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

func main() {
	if !isTerminal(os.Stdout) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	if err := cli.NewRootCmd(load).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// load reads the config and wires storage, services, the assistant and
// the HTTP handler.
func load(configPath string) (*cli.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	settings, err := cfg.ServiceSettings()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if os.Getenv("DAYBOOK_DEBUG") != "" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	database, err := db.OpenDB(cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	conn := database.Conn()
	uow := db.NewUnitOfWork(database)

	// Wire repositories
	taskRepo := repository.NewSQLTaskRepo(conn)
	eventRepo := repository.NewSQLEventRepo(conn)
	reflections := repository.NewSQLDayRecordRepo(conn, repository.KindReflection)

	var notifier service.Notifier = notify.Noop{}
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		notifier = notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger,
			notify.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}))
	}
	observer := service.NewSlogUseCaseObserver(logger)

	tasks := service.NewTaskService(taskRepo, uow, settings, notifier, observer)
	events := service.NewEventService(eventRepo, uow, settings, observer)
	goals := service.NewGoalService(repository.NewSQLGoalRepo(conn), uow, settings)
	planning := service.NewPlanningService(taskRepo, eventRepo,
		repository.NewSQLDayRecordRepo(conn, repository.KindSummary),
		repository.NewSQLDayRecordRepo(conn, repository.KindEvaluation),
		reflections, settings, notifier, observer)
	priority := service.NewPriorityService(taskRepo, eventRepo, uow, settings, observer)

	// The assistant runs without a model too; it then only answers that
	// no action was taken.
	llmCfg := cfg.LLMSettings()
	var client llm.LLMClient
	if llmCfg.Enabled {
		var llmObserver llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			llmObserver = llm.NewLogObserver(logger)
		}
		client, err = llm.NewClient(llmCfg, llmObserver)
		if err != nil && !errors.Is(err, llm.ErrDisabled) {
			database.Close()
			return nil, fmt.Errorf("building llm client: %w", err)
		}
	}
	memory := agent.NewMemory(repository.NewSQLMemoryRepo(conn), time.Now, agent.WithMemoryLogger(logger))
	registry := agent.NewDefaultRegistry(agent.Services{
		Tasks:    tasks,
		Events:   events,
		Goals:    goals,
		Planning: planning,
		Priority: priority,
		Memory:   memory,
		Location: settings.Location,
	})
	assistant := agent.NewAssistant(client, registry, agent.NewState(time.Now), memory, reflections, time.Now)

	handler := httpapi.NewServer(httpapi.Deps{
		Tasks:     tasks,
		Events:    events,
		Goals:     goals,
		Planning:  planning,
		Priority:  priority,
		Assistant: assistant,
		Location:  settings.Location,
		Logger:    logger,
	}, httpapi.Options{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		JWTSecret:      cfg.HTTP.JWTSecret,
	}).Handler()

	return &cli.App{
		Tasks:     tasks,
		Events:    events,
		Goals:     goals,
		Planning:  planning,
		Priority:  priority,
		Assistant: assistant,
		Location:  settings.Location,
		Logger:    logger,
		HTTP:      handler,
		Addr:      cfg.HTTP.Addr,
		JWTSecret: cfg.HTTP.JWTSecret,
		Close:     database.Close,

		Interactive: isTerminal(os.Stdin) && isTerminal(os.Stdout),
	}, nil
}
