package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type botServer struct {
	mu       sync.Mutex
	received []sendMessage
	paths    []string
	status   func(msg sendMessage) int
}

func (b *botServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var msg sendMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		b.mu.Lock()
		b.received = append(b.received, msg)
		b.paths = append(b.paths, r.URL.Path)
		b.mu.Unlock()
		code := http.StatusOK
		if b.status != nil {
			code = b.status(msg)
		}
		w.WriteHeader(code)
		w.Write([]byte(`{"ok":true}`))
	}
}

func TestTelegram_NotifySendsPlainText(t *testing.T) {
	bot := &botServer{}
	srv := httptest.NewServer(bot.handler(t))
	defer srv.Close()

	tg := NewTelegram("123:abc", "42", nil, WithBaseURL(srv.URL))
	require.NoError(t, tg.Notify(context.Background(), "Daily Summary 2025-03-15"))

	require.Len(t, bot.received, 1)
	assert.Equal(t, "/bot123:abc/sendMessage", bot.paths[0])
	assert.Equal(t, "42", bot.received[0].ChatID)
	assert.Equal(t, "Daily Summary 2025-03-15", bot.received[0].Text)
	assert.Empty(t, bot.received[0].ParseMode)
}

func TestTelegram_MissingCredentialsIsNoop(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	tg := NewTelegram("", "42", logger, WithBaseURL("http://127.0.0.1:1"))
	require.NoError(t, tg.Notify(context.Background(), "hello"))
	assert.Contains(t, logs.String(), "message dropped")
}

func TestTelegram_NonSuccessStatusIsError(t *testing.T) {
	bot := &botServer{status: func(sendMessage) int { return http.StatusForbidden }}
	srv := httptest.NewServer(bot.handler(t))
	defer srv.Close()

	err := NewTelegram("t", "42", nil, WithBaseURL(srv.URL)).Notify(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestTelegram_MarkdownFallsBackToPlainText(t *testing.T) {
	bot := &botServer{status: func(m sendMessage) int {
		if m.ParseMode != "" {
			return http.StatusBadRequest
		}
		return http.StatusOK
	}}
	srv := httptest.NewServer(bot.handler(t))
	defer srv.Close()

	tg := NewTelegram("t", "42", nil, WithBaseURL(srv.URL))
	require.NoError(t, tg.SendTo(context.Background(), "7", "done (2/3).", true))

	require.Len(t, bot.received, 2)
	assert.Equal(t, `done \(2/3\)\.`, bot.received[0].Text)
	assert.Equal(t, "MarkdownV2", bot.received[0].ParseMode)
	assert.Equal(t, "done (2/3).", bot.received[1].Text)
	assert.Equal(t, "7", bot.received[1].ChatID)
}

func TestEscapeMarkdownV2(t *testing.T) {
	assert.Equal(t, `a\_b \*c\* \[x\]\(y\) 1\.5\!`, EscapeMarkdownV2("a_b *c* [x](y) 1.5!"))
}

func TestNoop(t *testing.T) {
	var n Notifier = Noop{}
	assert.NoError(t, n.Notify(context.Background(), "ignored"))
}
