package contract

import (
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
)

type AddTaskRequest struct {
	Title            string           `json:"title"`
	Deadline         *time.Time       `json:"deadline,omitempty"`
	Priority         *domain.Priority `json:"priority,omitempty"`
	ParentTaskID     *string          `json:"parent_task_id,omitempty"`
	EstimatedMinutes *int             `json:"estimated_minutes,omitempty"`
}

// UpdateTaskRequest carries optional field changes; nil fields are left as-is.
type UpdateTaskRequest struct {
	TaskID           string           `json:"task_id"`
	Title            *string          `json:"title,omitempty"`
	Deadline         *time.Time       `json:"deadline,omitempty"`
	Priority         *domain.Priority `json:"priority,omitempty"`
	EstimatedMinutes *int             `json:"estimated_minutes,omitempty"`
	AIExplanation    *string          `json:"ai_explanation,omitempty"`
}

type ScheduleEventRequest struct {
	Title string `json:"title"`
	Start string `json:"datetime_start"`
	End   string `json:"datetime_end"`
	Force bool   `json:"force"`
}

type UpdateEventRequest struct {
	EventID string  `json:"event_id"`
	Title   *string `json:"title,omitempty"`
	Start   *string `json:"start_time,omitempty"`
	End     *string `json:"end_time,omitempty"`
}

type RecurringEventRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartHHMM string `json:"start_time_hhmm"`
	EndHHMM   string `json:"end_time_hhmm"`
	Weeks     int    `json:"weeks"`
	Title     string `json:"title"`
}

// NewRecurringEventRequest returns a request with the default horizon of 4 weeks.
func NewRecurringEventRequest(dayOfWeek int, start, end string) RecurringEventRequest {
	return RecurringEventRequest{
		DayOfWeek: dayOfWeek,
		StartHHMM: start,
		EndHHMM:   end,
		Weeks:     4,
		Title:     "Recurring Event",
	}
}

type AddGoalRequest struct {
	Title      string     `json:"title"`
	TargetDate *time.Time `json:"target_date,omitempty"`
}

type UpdateGoalRequest struct {
	GoalID     string     `json:"goal_id"`
	Title      *string    `json:"title,omitempty"`
	TargetDate *time.Time `json:"target_date,omitempty"`
}
