package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"time"
)

const defaultTelegramAPI = "https://api.telegram.org"

var markdownV2Special = regexp.MustCompile("([_*\\[\\]()~`>#+\\-=|{}.!\\\\])")

// EscapeMarkdownV2 escapes every character Telegram reserves in MarkdownV2.
func EscapeMarkdownV2(s string) string {
	return markdownV2Special.ReplaceAllString(s, `\$1`)
}

// Telegram posts messages through the Bot API sendMessage method.
type Telegram struct {
	token   string
	chatID  string
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

type TelegramOption func(*Telegram)

// WithBaseURL points the sender at a different Bot API host.
func WithBaseURL(u string) TelegramOption {
	return func(t *Telegram) { t.baseURL = u }
}

func WithHTTPClient(c *http.Client) TelegramOption {
	return func(t *Telegram) { t.http = c }
}

func NewTelegram(token, chatID string, logger *slog.Logger, opts ...TelegramOption) *Telegram {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Telegram{
		token:   token,
		chatID:  chatID,
		baseURL: defaultTelegramAPI,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type sendMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// Notify sends text as plain text to the configured chat. A missing token
// or chat id makes it a logged no-op.
func (t *Telegram) Notify(ctx context.Context, text string) error {
	return t.SendTo(ctx, "", text, false)
}

// SendTo sends text to chatID, or to the configured chat when chatID is
// empty. With markdown set the text is escaped for MarkdownV2; if Telegram
// rejects it the message is resent once as plain text.
func (t *Telegram) SendTo(ctx context.Context, chatID, text string, markdown bool) error {
	if chatID == "" {
		chatID = t.chatID
	}
	if t.token == "" || chatID == "" {
		t.logger.WarnContext(ctx, "telegram token or chat id missing; message dropped")
		return nil
	}

	msg := sendMessage{ChatID: chatID, Text: text}
	if !markdown {
		return t.post(ctx, msg)
	}

	msg.Text = EscapeMarkdownV2(text)
	msg.ParseMode = "MarkdownV2"
	if err := t.post(ctx, msg); err != nil {
		t.logger.WarnContext(ctx, "telegram markdown send failed, retrying as plain text", "error", err)
		return t.post(ctx, sendMessage{ChatID: chatID, Text: text})
	}
	return nil
}

func (t *Telegram) post(ctx context.Context, msg sendMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding telegram message: %w", err)
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram returned status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}
