package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
)

func FormatTasks(tasks []*domain.Task, now time.Time) string {
	if len(tasks) == 0 {
		return Dim("No tasks.")
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := Dim("--")
		if t.Deadline != nil {
			due = DeadlineStyled(*t.Deadline, now)
		}
		title := t.Title
		if t.IsSubtask() {
			title = Dim("└ ") + title
		}
		rows = append(rows, []string{TruncID(t.ID), title, StatusPill(t.Status), PriorityBadge(t.Priority), due, FormatMinutes(t.EffectiveMinutes())})
	}
	return RenderTable([]string{"ID", "TITLE", "STATUS", "PRIORITY", "DUE", "EST"}, rows)
}

func FormatScored(scored []contract.ScoredTask) string {
	if len(scored) == 0 {
		return Dim("No tasks.")
	}
	rows := make([][]string, 0, len(scored))
	for i, s := range scored {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			StylePurple.Render(fmt.Sprintf("%.1f", s.Score)),
			s.Title,
			PriorityBadge(s.Priority),
			Dim(strings.Join(s.Reasons, "; ")),
		})
	}
	return RenderTable([]string{"#", "SCORE", "TITLE", "PRIORITY", "WHY"}, rows)
}

func FormatSuggestion(s *contract.NextTaskSuggestion) string {
	if s.Suggestion == nil {
		return Dim(s.Message)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s\n", StyleGreen.Render("→"), Bold(s.Suggestion.Title), PriorityBadge(s.Suggestion.Priority))
	for _, r := range s.Rationale {
		fmt.Fprintf(&b, "   %s %s\n", StyleYellow.Render("REASON:"), Dim(r))
	}
	return strings.TrimRight(b.String(), "\n")
}

func FormatFocus(f *contract.FocusResult) string {
	var b strings.Builder
	if len(f.Top) == 0 {
		b.WriteString(Dim("No active tasks."))
		return RenderBox("Focus today", b.String())
	}
	for i, t := range f.Top {
		fmt.Fprintf(&b, "%s %s  %s\n", Bold(fmt.Sprintf("%d.", i+1)), StyleFg.Render(t.Title), PriorityBadge(t.Priority))
		for _, r := range t.Reasons {
			fmt.Fprintf(&b, "   %s\n", Dim(r))
		}
	}
	fmt.Fprintf(&b, "\n%s", Dim(fmt.Sprintf("%d tasks scored", f.Count)))
	return RenderBox("Focus today", b.String())
}

func FormatStagnant(r *contract.StagnantReport) string {
	if r.Count == 0 {
		return StyleGreen.Render("No stagnant tasks.")
	}
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%d stagnant tasks", r.Count)) + "\n")
	for _, t := range r.Tasks {
		fmt.Fprintf(&b, "%s %s\n   %s\n", TruncID(t.ID), t.Title, Dim(t.Suggestion))
	}
	return strings.TrimRight(b.String(), "\n")
}

func FormatSubtasks(r *contract.SubtaskResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", TruncID(r.Parent.ID), Bold(r.Parent.Title))
	for _, t := range r.Subtasks {
		fmt.Fprintf(&b, "  %s %s %s\n", Dim("└"), TruncID(t.ID), t.Title)
	}
	return strings.TrimRight(b.String(), "\n")
}
