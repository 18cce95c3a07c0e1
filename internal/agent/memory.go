package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/repository"
	"github.com/google/uuid"
)

const (
	summaryWindow  = 50
	summaryTail    = 5
	contextWindow  = 40
	contextLines   = 8
	contextSnippet = 80
)

// Memory is the agent's append-only conversation and action log.
type Memory struct {
	repo   repository.MemoryRepo
	now    func() time.Time
	logger *slog.Logger
}

// MemoryOption configures a Memory.
type MemoryOption func(*Memory)

// WithMemoryLogger sets the logger that Note reports write failures to.
func WithMemoryLogger(l *slog.Logger) MemoryOption {
	return func(m *Memory) {
		if l != nil {
			m.logger = l
		}
	}
}

func NewMemory(repo repository.MemoryRepo, now func() time.Time, opts ...MemoryOption) *Memory {
	if now == nil {
		now = time.Now
	}
	m := &Memory{repo: repo, now: now, logger: slog.Default()}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Remember appends an entry. action and result are stored as JSON when
// non-nil.
func (m *Memory) Remember(ctx context.Context, role domain.MemoryRole, content string, action, result any) error {
	entry := &domain.MemoryEntry{
		ID:      uuid.New().String(),
		TS:      m.now(),
		Role:    role,
		Content: content,
	}
	var err error
	if entry.Action, err = marshalOptional(action); err != nil {
		return err
	}
	if entry.Result, err = marshalOptional(result); err != nil {
		return err
	}
	return m.repo.Append(ctx, entry)
}

// Note is Remember for bookkeeping entries whose loss must not fail the
// caller. A failed write is logged at warn level.
func (m *Memory) Note(ctx context.Context, role domain.MemoryRole, content string, action, result any) {
	if err := m.Remember(ctx, role, content, action, result); err != nil {
		m.logger.WarnContext(ctx, "agent_memory_write_failed",
			"role", string(role),
			"content", content,
			"error", err.Error(),
		)
	}
}

// Recent returns up to limit entries, oldest first.
func (m *Memory) Recent(ctx context.Context, limit int) ([]*domain.MemoryEntry, error) {
	entries, err := m.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	slices.Reverse(entries)
	return entries, nil
}

// Context renders the latest user and action entries as short "U:" and
// "A:" lines for the planning prompt.
func (m *Memory) Context(ctx context.Context) (string, error) {
	entries, err := m.Recent(ctx, contextWindow)
	if err != nil {
		return "", err
	}
	var lines []string
	for _, e := range entries {
		switch e.Role {
		case domain.RoleUser:
			lines = append(lines, "U:"+truncate(e.Content, contextSnippet))
		case domain.RoleAction:
			var act Intent
			_ = json.Unmarshal(e.Action, &act)
			var res struct {
				Title string `json:"title"`
				OK    bool   `json:"ok"`
			}
			_ = json.Unmarshal(e.Result, &res)
			outcome := res.Title
			if outcome == "" && res.OK {
				outcome = "ok"
			}
			lines = append(lines, fmt.Sprintf("A:%s -> %s", act.Action, outcome))
		}
	}
	if len(lines) > contextLines {
		lines = lines[len(lines)-contextLines:]
	}
	return strings.Join(lines, "\n"), nil
}

type MemorySummary struct {
	Actions           map[string]int     `json:"actions"`
	RecentUserQueries []string           `json:"recent_user_queries"`
	RecentAddedTasks  []contract.TaskRef `json:"recent_added_tasks"`
}

// Summarize counts actions over the last 50 entries and lists the latest
// user queries and added tasks. The summary itself is recorded as a system
// entry.
func (m *Memory) Summarize(ctx context.Context) (*MemorySummary, error) {
	entries, err := m.Recent(ctx, summaryWindow)
	if err != nil {
		return nil, err
	}
	sum := &MemorySummary{Actions: map[string]int{}, RecentUserQueries: []string{}, RecentAddedTasks: []contract.TaskRef{}}
	for _, e := range entries {
		switch e.Role {
		case domain.RoleUser:
			if e.Content != "" {
				sum.RecentUserQueries = append(sum.RecentUserQueries, e.Content)
			}
		case domain.RoleAction:
			var act Intent
			if json.Unmarshal(e.Action, &act) != nil || act.Action == "" {
				continue
			}
			sum.Actions[act.Action]++
			if act.Action == "add_task" {
				var task contract.TaskRef
				if json.Unmarshal(e.Result, &task) == nil && task.Title != "" {
					sum.RecentAddedTasks = append(sum.RecentAddedTasks, task)
				}
			}
		}
	}
	sum.RecentUserQueries = tail(sum.RecentUserQueries, summaryTail)
	sum.RecentAddedTasks = tail(sum.RecentAddedTasks, summaryTail)

	if err := m.Remember(ctx, domain.RoleSystem, "memory_summary", nil, sum); err != nil {
		return nil, err
	}
	return sum, nil
}

func marshalOptional(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	if raw, ok := v.(json.RawMessage); ok {
		return raw, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding memory payload: %w", err)
	}
	return b, nil
}

func tail[T any](s []T, n int) []T {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
