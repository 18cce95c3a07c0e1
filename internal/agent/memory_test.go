package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RecentIsOldestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, f.memory.Remember(ctx, domain.RoleUser, fmt.Sprintf("m%d", i), nil, nil))
	}

	got, err := f.memory.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "m1", got[0].Content)
	assert.Equal(t, "m2", got[1].Content)
}

func TestMemory_ContextRendersLastEightLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.memory.Remember(ctx, domain.RoleUser, strings.Repeat("x", 100), nil, nil))
	require.NoError(t, f.memory.Remember(ctx, domain.RoleAssistant, "ignored", nil, nil))
	require.NoError(t, f.memory.Remember(ctx, domain.RoleAction, "", Intent{Action: "add_task"}, map[string]string{"title": "Report"}))

	got, err := f.memory.Context(ctx)
	require.NoError(t, err)
	assert.Equal(t, "U:"+strings.Repeat("x", 80)+"\nA:add_task -> Report", got)

	for i := 0; i < 10; i++ {
		require.NoError(t, f.memory.Remember(ctx, domain.RoleUser, fmt.Sprintf("q%d", i), nil, nil))
	}
	got, err = f.memory.Context(ctx)
	require.NoError(t, err)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, contextLines)
	assert.Equal(t, "U:q2", lines[0])
	assert.Equal(t, "U:q9", lines[7])
}

func TestMemory_Summarize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 7; i++ {
		require.NoError(t, f.memory.Remember(ctx, domain.RoleUser, fmt.Sprintf("q%d", i), nil, nil))
		require.NoError(t, f.memory.Remember(ctx, domain.RoleAction, "",
			Intent{Action: "add_task"}, domain.Task{ID: fmt.Sprintf("t%d", i), Title: fmt.Sprintf("Task %d", i)}))
	}
	require.NoError(t, f.memory.Remember(ctx, domain.RoleAction, "", Intent{Action: "list_tasks"}, []string{}))

	sum, err := f.memory.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"add_task": 7, "list_tasks": 1}, sum.Actions)
	assert.Equal(t, []string{"q2", "q3", "q4", "q5", "q6"}, sum.RecentUserQueries)
	require.Len(t, sum.RecentAddedTasks, summaryTail)
	assert.Equal(t, "t6", sum.RecentAddedTasks[4].ID)
	assert.Equal(t, "Task 2", sum.RecentAddedTasks[0].Title)

	last, err := f.memory.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSystem, last[0].Role)
	assert.Equal(t, "memory_summary", last[0].Content)
}

var errMemoryDown = errors.New("memory store down")

type failingMemoryRepo struct{}

func (failingMemoryRepo) Append(context.Context, *domain.MemoryEntry) error { return errMemoryDown }

func (failingMemoryRepo) ListRecent(context.Context, int) ([]*domain.MemoryEntry, error) {
	return nil, errMemoryDown
}

func newFailingMemory(f *fixture) (*Memory, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return NewMemory(failingMemoryRepo{}, f.clock.Now, WithMemoryLogger(logger)), &buf
}

func TestMemory_NoteLogsWriteFailure(t *testing.T) {
	f := newFixture(t)
	mem, logs := newFailingMemory(f)

	mem.Note(context.Background(), domain.RoleSystem, "focus_today computed", nil, nil)

	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "agent_memory_write_failed")
	assert.Contains(t, logs.String(), "memory store down")
}

func TestExecutor_MemoryFailureIsLoggedNotFatal(t *testing.T) {
	f := newFixture(t)
	mem, logs := newFailingMemory(f)
	exec := NewExecutor(f.registry, f.state, mem)

	plan := f.state.StartPlan("list", []Intent{{Action: "list_tasks", Params: json.RawMessage(`{}`)}})
	results := exec.Execute(context.Background(), plan)

	require.Len(t, results, 1)
	assert.Empty(t, results[0].Error)
	assert.Equal(t, StatusDone, f.state.Snapshot().Current.Intents[0].Status)
	assert.Contains(t, logs.String(), "role=action")
	assert.Contains(t, logs.String(), "memory store down")
}

func TestFunctions_MemoryFailureIsLoggedNotFatal(t *testing.T) {
	f := newFixture(t)
	mem, logs := newFailingMemory(f)
	svc := f.svc
	svc.Memory = mem
	registry := NewDefaultRegistry(svc)

	out, err := registry.Call(context.Background(), "detect_stagnant_tasks", json.RawMessage(`{"hours":24}`))
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Contains(t, logs.String(), "content=stagnant_scan")
}
