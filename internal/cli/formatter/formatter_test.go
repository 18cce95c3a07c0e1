package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

var now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2025, 3, 15, h, m, 0, 0, time.UTC)
}

func TestRenderTable_AlignsByVisibleWidth(t *testing.T) {
	out := stripANSI(RenderTable([]string{"ID", "TITLE"}, [][]string{
		{StyleRed.Render("abc"), "first"},
		{"abcdefgh", "second"},
	}))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID        TITLE", lines[0])
	assert.Equal(t, "────────  ──────", lines[1])
	assert.Equal(t, "abc       first", lines[2])
	assert.Equal(t, "abcdefgh  second", lines[3])

	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, "[░░░░░░░░░░]   0%"},
		{0.5, "[█████░░░░░]  50%"},
		{1.4, "[██████████] 100%"},
		{-1, "[░░░░░░░░░░]   0%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripANSI(RenderProgress(tt.ratio, 10)))
	}
	assert.Equal(t, "[█░]  50%", stripANSI(RenderProgress(0.5, 1)))
}

func TestFormatMinutesAndHours(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1h 30m", FormatMinutes(90))

	assert.Equal(t, "5h", FormatHours(5.9))
	assert.Equal(t, "2d", FormatHours(48))
	assert.Equal(t, "3d 4h", FormatHours(76))
}

func TestSpan(t *testing.T) {
	assert.Equal(t, "14:00–15:00", Span(at(14, 0), at(15, 0), now))
	assert.Equal(t, "Mon Mar 17 09:00–10:00", Span(at(9, 0).AddDate(0, 0, 2), at(10, 0).AddDate(0, 0, 2), now))
}

func TestRelativeDeadline(t *testing.T) {
	assert.Equal(t, "overdue 3 hours", RelativeDeadline(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2 days from now", RelativeDeadline(now.Add(48*time.Hour), now))
}

func TestFormatScheduled_Conflict(t *testing.T) {
	suggested := domain.TimeInterval{Start: at(15, 15), End: at(15, 45)}
	out := stripANSI(FormatScheduled(&contract.ScheduleEventResult{
		ConflictResult: contract.ConflictResult{
			Conflict:          true,
			ConflictingEvents: []domain.Event{{Title: "Standup", StartTime: at(14, 0), EndTime: at(15, 0)}},
			SuggestedInterval: &suggested,
		},
	}, now))
	assert.Contains(t, out, "14:00–15:00 Standup")
	assert.Contains(t, out, "Suggested: 15:15–15:45")
}

func TestFormatDailySummary(t *testing.T) {
	deadline := at(18, 0)
	out := stripANSI(FormatDailySummary(&contract.DailySummary{
		Date:                "2025-03-15",
		TasksCount:          2,
		EventsCount:         1,
		FirstDeadline:       &deadline,
		FocusRecommendation: "Focus on the highest-priority tasks first",
		Plan:                []contract.PlanEntry{{Title: "Write report", Start: at(8, 0), End: at(9, 0)}},
		Unscheduled:         []contract.TaskRef{{ID: "t2", Title: "Big migration"}},
		RescheduleSuggestions: []contract.RescheduleSuggestion{
			{TaskID: "t2", Suggestion: "Consider scheduling tomorrow morning at 09:00"},
		},
	}, now))
	assert.Contains(t, out, "PLAN FOR 2025-03-15")
	assert.Contains(t, out, "08:00–09:00  Write report")
	assert.Contains(t, out, "Big migration")
	assert.Contains(t, out, "tomorrow morning at 09:00")
	assert.Contains(t, out, "6 hours from now")
}

func TestFormatTasks(t *testing.T) {
	parent := "p1"
	deadline := now.Add(2 * time.Hour)
	out := stripANSI(FormatTasks([]*domain.Task{
		{ID: "p1-aaaaaaaa", Title: "Launch", Status: domain.TaskPending, Priority: domain.PriorityUrgent, Deadline: &deadline},
		{ID: "c1-bbbbbbbb", Title: "Draft copy", Status: domain.TaskDone, Priority: domain.PriorityNormal, ParentTaskID: &parent},
	}, now))
	assert.Contains(t, out, "p1-aaaaa")
	assert.Contains(t, out, "▲ urgent")
	assert.Contains(t, out, "└ Draft copy")
	assert.Contains(t, out, "✔ Done")
	assert.Contains(t, out, "30m")

	assert.Equal(t, "No tasks.", stripANSI(FormatTasks(nil, now)))
}

func TestFormatSuggestion_Message(t *testing.T) {
	assert.Equal(t, "No active tasks.", stripANSI(FormatSuggestion(&contract.NextTaskSuggestion{Message: "No active tasks."})))
}
