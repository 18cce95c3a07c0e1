package domain

import (
	"fmt"
	"time"
)

// DefaultEstimatedMinutes is used for allocation when a task has no usable estimate.
const DefaultEstimatedMinutes = 30

type Task struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Status           TaskStatus `json:"status"`
	Priority         Priority   `json:"priority"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	ParentTaskID     *string    `json:"parent_task_id,omitempty"`
	EstimatedMinutes *int       `json:"estimated_minutes,omitempty"`
	AIExplanation    string     `json:"ai_explanation,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// IsSubtask reports whether the task hangs under a parent task.
func (t *Task) IsSubtask() bool {
	return t.ParentTaskID != nil && *t.ParentTaskID != ""
}

// EffectiveMinutes returns the estimate, falling back to
// DefaultEstimatedMinutes when absent or non-positive.
func (t *Task) EffectiveMinutes() int {
	if t.EstimatedMinutes == nil || *t.EstimatedMinutes <= 0 {
		return DefaultEstimatedMinutes
	}
	return *t.EstimatedMinutes
}

// SetStatus validates and applies a status transition.
func (t *Task) SetStatus(s TaskStatus, now time.Time) error {
	if !ValidTaskStatuses[s] {
		return fmt.Errorf("unknown task status %q", s)
	}
	t.Status = s
	t.UpdatedAt = now
	return nil
}
