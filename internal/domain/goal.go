package domain

import (
	"fmt"
	"time"
)

type Goal struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	TargetDate *time.Time `json:"target_date,omitempty"`
	Progress   float64    `json:"progress"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// SetProgress records progress in percent.
func (g *Goal) SetProgress(pct float64, now time.Time) error {
	if pct < 0 || pct > 100 {
		return fmt.Errorf("progress must be between 0 and 100, got %v", pct)
	}
	g.Progress = pct
	g.UpdatedAt = now
	return nil
}
