package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDeadline describes a deadline against now: "overdue 3h",
// "in 2 days", and so on.
func RelativeDeadline(deadline, now time.Time) string {
	if !deadline.After(now) {
		return "overdue " + strings.TrimSpace(humanize.RelTime(deadline, now, "", ""))
	}
	return humanize.RelTime(deadline, now, "ago", "from now")
}

// DeadlineStyled colors a deadline by urgency: red within a day or
// overdue, yellow within three days.
func DeadlineStyled(deadline, now time.Time) string {
	text := RelativeDeadline(deadline, now)
	hours := deadline.Sub(now).Hours()
	switch {
	case hours <= 24:
		return StyleRed.Render(text)
	case hours <= 72:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// Clock formats t as HH:MM.
func Clock(t time.Time) string {
	return t.Format("15:04")
}

// Span formats an interval as "HH:MM–HH:MM", adding the date when the
// interval does not start on ref's day.
func Span(start, end, ref time.Time) string {
	y1, m1, d1 := start.Date()
	y2, m2, d2 := ref.Date()
	s := Clock(start) + "–" + Clock(end)
	if y1 != y2 || m1 != m2 || d1 != d2 {
		s = start.Format("Mon Jan 2 ") + s
	}
	return s
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatHours renders an age in hours as "5h" or "3d 4h".
func FormatHours(h float64) string {
	total := int(math.Floor(h))
	if total < 24 {
		return fmt.Sprintf("%dh", total)
	}
	if total%24 == 0 {
		return fmt.Sprintf("%dd", total/24)
	}
	return fmt.Sprintf("%dd %dh", total/24, total%24)
}
