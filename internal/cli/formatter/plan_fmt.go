package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
)

// FormatDailySummary renders the day plan as a timeline box.
func FormatDailySummary(s *contract.DailySummary, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim(fmt.Sprintf("%d open tasks", s.TasksCount)), Dim(fmt.Sprintf("%d events", s.EventsCount)))
	if s.FirstDeadline != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("First deadline:"), DeadlineStyled(*s.FirstDeadline, now))
	}
	b.WriteString("\n")

	if len(s.Plan) == 0 {
		b.WriteString(Dim("Nothing placed.") + "\n")
	}
	for _, p := range s.Plan {
		fmt.Fprintf(&b, "%s  %s\n", StyleBlue.Render(Clock(p.Start)+"–"+Clock(p.End)), StyleFg.Render(p.Title))
	}

	if len(s.Unscheduled) > 0 {
		b.WriteString("\n" + StyleYellow.Render("Unscheduled:") + "\n")
		for _, u := range s.Unscheduled {
			fmt.Fprintf(&b, "   %s\n", u.Title)
		}
	}
	if len(s.RescheduleSuggestions) > 0 {
		b.WriteString("\n")
		for _, r := range s.RescheduleSuggestions {
			fmt.Fprintf(&b, "%s\n", Dim(r.Suggestion))
		}
	}
	if s.FocusRecommendation != "" {
		fmt.Fprintf(&b, "\n%s %s", StylePurple.Render("FOCUS:"), s.FocusRecommendation)
	}
	return RenderBox("Plan for "+s.Date, strings.TrimRight(b.String(), "\n"))
}

func FormatEvaluation(e *contract.DayEvaluation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", RenderProgress(e.CompletedRatio, 20))
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("%d done, %d remaining of %d", e.Done, e.Remaining, e.Total)))
	if e.Notes != "" {
		fmt.Fprintf(&b, "\n%s\n", e.Notes)
	}
	fmt.Fprintf(&b, "%s %s", StyleYellow.Render("NEXT:"), e.Recommendations)
	return RenderBox("Day "+e.Date, b.String())
}

func FormatTrend(t *contract.TrendOverview) string {
	if len(t.Series) == 0 {
		return Dim("No evaluations yet.")
	}
	var b strings.Builder
	for _, p := range t.Series {
		fmt.Fprintf(&b, "%s  %s\n", Dim(p.Date), RenderProgress(p.Ratio, 20))
	}
	delta := fmt.Sprintf("%+.2f", t.Delta)
	style := StyleGreen
	if t.Delta < 0 {
		style = StyleRed
	}
	fmt.Fprintf(&b, "\n%s %.2f  %s %.2f  %s %s", Dim("avg"), t.Avg, Dim("last"), t.Last, Dim("delta"), style.Render(delta))
	for _, r := range t.Reflections {
		for _, issue := range r.Issues {
			fmt.Fprintf(&b, "\n%s %s", StyleYellow.Render(r.Date), issue)
		}
	}
	return b.String()
}

func FormatProgress(p *contract.ProgressOverview) string {
	return fmt.Sprintf("%s  %s", RenderProgress(p.CompletionRatio, 20), Dim(fmt.Sprintf("%d/%d tasks done", p.Done, p.Total)))
}
