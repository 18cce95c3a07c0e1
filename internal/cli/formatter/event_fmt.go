package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
)

func FormatEvents(events []*domain.Event, now time.Time) string {
	if len(events) == 0 {
		return Dim("No events.")
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{TruncID(e.ID), StyleBlue.Render(Span(e.StartTime, e.EndTime, now)), e.Title})
	}
	return RenderTable([]string{"ID", "WHEN", "TITLE"}, rows)
}

// FormatScheduled reports an accepted event or the conflict that blocked it.
func FormatScheduled(r *contract.ScheduleEventResult, now time.Time) string {
	if !r.Conflict {
		return fmt.Sprintf("%s %s %s", StyleGreen.Render("✔ Scheduled"), Bold(r.Event.Title), StyleBlue.Render(Span(r.Event.StartTime, r.Event.EndTime, now)))
	}
	var b strings.Builder
	b.WriteString(StyleRed.Render("✖ Conflicts with:") + "\n")
	for _, e := range r.ConflictingEvents {
		fmt.Fprintf(&b, "   %s %s\n", StyleBlue.Render(Span(e.StartTime, e.EndTime, now)), e.Title)
	}
	if s := r.SuggestedInterval; s != nil {
		fmt.Fprintf(&b, "%s %s %s", StyleYellow.Render("Suggested:"), StyleBlue.Render(Span(s.Start, s.End, now)), Dim("(use --force to keep the original time)"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func FormatRecurring(r *contract.RecurringResult, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", StyleGreen.Render(fmt.Sprintf("✔ %d occurrences created", r.Count)))
	for _, e := range r.Events {
		fmt.Fprintf(&b, "   %s %s\n", StyleBlue.Render(Span(e.StartTime, e.EndTime, now)), e.Title)
	}
	for _, d := range r.Skipped {
		fmt.Fprintf(&b, "   %s\n", StyleYellow.Render("skipped "+d))
	}
	return strings.TrimRight(b.String(), "\n")
}

func FormatShift(r *contract.ShiftResult, now time.Time) string {
	if r.Shifted == nil {
		return Dim(r.Message)
	}
	return fmt.Sprintf("%s %s → %s", StyleGreen.Render("✔ Moved"), Bold(r.Shifted.Title),
		StyleBlue.Render(Span(r.Shifted.StartTime, r.Shifted.EndTime, now)))
}

func FormatAutoSchedule(r *contract.AutoScheduleResult, now time.Time) string {
	if len(r.Scheduled) == 0 {
		return Dim("No focus blocks placed.")
	}
	var b strings.Builder
	for _, e := range r.Scheduled {
		fmt.Fprintf(&b, "%s %s %s\n", StyleGreen.Render("✔"), StyleBlue.Render(Span(e.StartTime, e.EndTime, now)), e.Title)
	}
	return strings.TrimRight(b.String(), "\n")
}
