package formatter

import (
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
)

func FormatGoals(goals []*domain.Goal, now time.Time) string {
	if len(goals) == 0 {
		return Dim("No goals.")
	}
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		target := Dim("--")
		if g.TargetDate != nil {
			target = DeadlineStyled(*g.TargetDate, now)
		}
		rows = append(rows, []string{TruncID(g.ID), g.Title, RenderProgress(g.Progress/100, 10), target})
	}
	return RenderTable([]string{"ID", "GOAL", "PROGRESS", "TARGET"}, rows)
}
