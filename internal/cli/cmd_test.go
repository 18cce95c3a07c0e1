package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/daybook/internal/agent"
	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/httpapi"
	"github.com/alexanderramin/daybook/internal/repository"
	"github.com/alexanderramin/daybook/internal/service"
	"github.com/alexanderramin/daybook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	conn := database.Conn()
	uow := testutil.NewTestUoW(database)
	settings := service.DefaultSettings()
	settings.Now = func() time.Time { return testutil.FixedNow }

	tasks := repository.NewSQLTaskRepo(conn)
	events := repository.NewSQLEventRepo(conn)
	reflections := repository.NewSQLDayRecordRepo(conn, repository.KindReflection)
	now := func() time.Time { return testutil.FixedNow }

	app := &App{
		Tasks:  service.NewTaskService(tasks, uow, settings, nil),
		Events: service.NewEventService(events, uow, settings),
		Goals:  service.NewGoalService(repository.NewSQLGoalRepo(conn), uow, settings),
		Planning: service.NewPlanningService(tasks, events,
			repository.NewSQLDayRecordRepo(conn, repository.KindSummary),
			repository.NewSQLDayRecordRepo(conn, repository.KindEvaluation),
			reflections, settings, nil),
		Priority:  service.NewPriorityService(tasks, events, uow, settings),
		Location:  time.UTC,
		Now:       now,
		JWTSecret: "test-secret",
	}
	memory := agent.NewMemory(repository.NewSQLMemoryRepo(conn), now)
	registry := agent.NewDefaultRegistry(agent.Services{
		Tasks: app.Tasks, Events: app.Events, Goals: app.Goals,
		Planning: app.Planning, Priority: app.Priority,
		Memory: memory, Location: time.UTC,
	})
	app.Assistant = agent.NewAssistant(nil, registry, agent.NewState(now), memory, reflections, now)
	return app
}

// run executes one command line against app and returns stdout.
func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(func(string) (*App, error) { return app, nil })
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func runJSON[T any](t *testing.T, app *App, args ...string) T {
	t.Helper()
	out, err := run(t, app, append(args, "--json")...)
	require.NoError(t, err)
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestTaskAddAndList(t *testing.T) {
	app := newTestApp(t)

	task := runJSON[domain.Task](t, app, "task", "add", "Write", "report",
		"--priority", "urgent", "--deadline", "2025-03-15 18:00", "--estimate", "90")
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, domain.Priority("urgent"), task.Priority)
	require.NotNil(t, task.Deadline)
	assert.True(t, task.Deadline.Equal(time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC)))
	require.NotNil(t, task.EstimatedMinutes)
	assert.Equal(t, 90, *task.EstimatedMinutes)

	out, err := run(t, app, "task", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "urgent")
}

func TestTaskDoneMovesTaskBetweenLists(t *testing.T) {
	app := newTestApp(t)
	task := runJSON[domain.Task](t, app, "task", "add", "Ship")

	done := runJSON[domain.Task](t, app, "task", "done", task.ID)
	assert.Equal(t, domain.TaskDone, done.Status)

	open := runJSON[[]domain.Task](t, app, "task", "list")
	assert.Empty(t, open)
	finished := runJSON[[]domain.Task](t, app, "task", "list", "--status", "done")
	require.Len(t, finished, 1)
	assert.Equal(t, task.ID, finished[0].ID)
}

func TestTaskListRejectsUnknownStatus(t *testing.T) {
	_, err := run(t, newTestApp(t), "task", "list", "--status", "later")
	assert.ErrorContains(t, err, "--status")
}

func TestTaskRemoveRequiresIDOrAll(t *testing.T) {
	app := newTestApp(t)
	runJSON[domain.Task](t, app, "task", "add", "One")
	runJSON[domain.Task](t, app, "task", "add", "Two")

	_, err := run(t, app, "task", "rm")
	assert.Error(t, err)

	res := runJSON[map[string]int64](t, app, "task", "rm", "--all")
	assert.Equal(t, int64(2), res["deleted"])
}

func TestTaskSplitCreatesSubtasks(t *testing.T) {
	app := newTestApp(t)
	res := runJSON[contract.SubtaskResult](t, app, "task", "split", "Launch", "site", "-n", "2")
	require.NotNil(t, res.Parent)
	assert.Equal(t, "Launch site", res.Parent.Title)
	assert.Len(t, res.Subtasks, 2)
}

func TestEventAddReportsConflictWithSuggestion(t *testing.T) {
	app := newTestApp(t)
	first := runJSON[contract.ScheduleEventResult](t, app, "event", "add", "Standup",
		"--start", "2025-03-15 14:00", "--end", "2025-03-15 15:00")
	assert.False(t, first.Conflict)
	require.NotNil(t, first.Event)

	second := runJSON[contract.ScheduleEventResult](t, app, "event", "add", "Review",
		"--start", "2025-03-15 14:30", "--end", "2025-03-15 15:00")
	assert.True(t, second.Conflict)
	assert.Nil(t, second.Event)
	require.NotNil(t, second.SuggestedInterval)
	assert.True(t, second.SuggestedInterval.Start.Equal(testutil.At(15, 15)))

	out, err := run(t, app, "event", "add", "Review",
		"--start", "2025-03-15 14:30", "--end", "2025-03-15 15:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Conflicts with")
	assert.Contains(t, out, "Standup")

	forced := runJSON[contract.ScheduleEventResult](t, app, "event", "add", "Review",
		"--start", "2025-03-15 14:30", "--end", "2025-03-15 15:00", "--force")
	require.NotNil(t, forced.Event)
}

func TestEventListForDay(t *testing.T) {
	app := newTestApp(t)
	runJSON[contract.ScheduleEventResult](t, app, "event", "add", "Today",
		"--start", "2025-03-15 09:00", "--end", "2025-03-15 10:00")
	runJSON[contract.ScheduleEventResult](t, app, "event", "add", "Tomorrow",
		"--start", "2025-03-16 09:00", "--end", "2025-03-16 10:00")

	day := runJSON[[]domain.Event](t, app, "event", "list", "--date", "2025-03-16")
	require.Len(t, day, 1)
	assert.Equal(t, "Tomorrow", day[0].Title)

	all := runJSON[[]domain.Event](t, app, "event", "list")
	assert.Len(t, all, 2)
}

func TestEventRecurringAcceptsDayNames(t *testing.T) {
	app := newTestApp(t)
	res := runJSON[contract.RecurringResult](t, app, "event", "recurring", "monday",
		"--start", "09:00", "--end", "09:30", "--weeks", "3", "--title", "Sync")
	assert.Equal(t, 3, res.Count)
	for _, e := range res.Events {
		assert.Equal(t, time.Monday, e.StartTime.Weekday())
		assert.Equal(t, "Sync", e.Title)
	}
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]int{"0": 0, "6": 6, "sun": 0, "Monday": 1, "sat": 6, " Fri ": 5}
	for in, want := range cases {
		got, err := parseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseWeekday("7")
	assert.Error(t, err)
	_, err = parseWeekday("someday")
	assert.Error(t, err)
}

func TestEventShiftAcceptsNegativeMinutes(t *testing.T) {
	app := newTestApp(t)
	runJSON[contract.ScheduleEventResult](t, app, "event", "add", "Call",
		"--start", "2025-03-15 14:00", "--end", "2025-03-15 15:00")

	out, err := run(t, app, "event", "shift", "--json", "--", "-15")
	require.NoError(t, err)
	var res contract.ShiftResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.NotNil(t, res.Shifted)
	assert.Equal(t, -15, res.Minutes)
	assert.True(t, res.Shifted.StartTime.Equal(testutil.At(13, 45)))
}

func TestPlanAndPriorityCommands(t *testing.T) {
	app := newTestApp(t)
	runJSON[domain.Task](t, app, "task", "add", "Urgent thing", "--priority", "urgent", "--deadline", "2025-03-15 16:00")
	runJSON[domain.Task](t, app, "task", "add", "Later thing", "--priority", "low")

	summary := runJSON[contract.DailySummary](t, app, "plan")
	assert.Equal(t, "2025-03-15", summary.Date)
	assert.Equal(t, 2, summary.TasksCount)

	scored := runJSON[[]contract.ScoredTask](t, app, "prioritize")
	require.Len(t, scored, 2)
	assert.Equal(t, "Urgent thing", scored[0].Title)

	next := runJSON[contract.NextTaskSuggestion](t, app, "next")
	require.NotNil(t, next.Suggestion)
	assert.Equal(t, "Urgent thing", next.Suggestion.Title)

	for _, args := range [][]string{
		{"eval"}, {"trend", "--days", "3"}, {"focus"}, {"progress"},
		{"stagnant", "--hours", "1"}, {"auto-schedule", "-n", "1"},
	} {
		_, err := run(t, app, args...)
		assert.NoError(t, err, args)
	}
}

func TestGoalCommands(t *testing.T) {
	app := newTestApp(t)
	goal := runJSON[domain.Goal](t, app, "goal", "add", "Run", "a", "marathon", "--target", "2025-10-01")
	assert.Equal(t, "Run a marathon", goal.Title)

	updated := runJSON[domain.Goal](t, app, "goal", "progress", goal.ID, "40")
	assert.InDelta(t, 40, updated.Progress, 0.001)

	_, err := run(t, app, "goal", "progress", goal.ID, "lots")
	assert.Error(t, err)

	out, err := run(t, app, "goal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Run a marathon")
}

func TestAskWithoutModelTakesNoAction(t *testing.T) {
	app := newTestApp(t)
	res := runJSON[agent.ChatResult](t, app, "ask", "add", "a", "task")
	assert.Empty(t, res.Results)
	assert.NotEmpty(t, res.Answer)

	_, err := run(t, app, "reflect")
	assert.ErrorIs(t, err, errNoAssistant)
}

func TestTokenIssuesParseableJWT(t *testing.T) {
	app := newTestApp(t)
	out, err := run(t, app, "token", "--subject", "phone", "--ttl", "87600h")
	require.NoError(t, err)

	sub, err := httpapi.ParseToken([]byte("test-secret"), trimNewline(out))
	require.NoError(t, err)
	assert.Equal(t, "phone", sub)

	app.JWTSecret = ""
	_, err = run(t, app, "token")
	assert.Error(t, err)
}

func TestLoaderErrorStopsCommand(t *testing.T) {
	boom := errors.New("no config")
	root := NewRootCmd(func(string) (*App, error) { return nil, boom })
	root.SetArgs([]string{"task", "list"})
	root.SetOut(&bytes.Buffer{})
	assert.ErrorIs(t, root.Execute(), boom)
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
