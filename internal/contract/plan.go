package contract

import (
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
)

// DefaultFocusRecommendation is reported when nothing could be scheduled.
const DefaultFocusRecommendation = "09:00–11:00"

type RescheduleSuggestion struct {
	TaskID     string `json:"task_id"`
	Suggestion string `json:"suggestion"`
}

type DailySummary struct {
	Date                  string                 `json:"date"`
	TasksCount            int                    `json:"tasks_count"`
	EventsCount           int                    `json:"events_count"`
	FirstDeadline         *time.Time             `json:"first_deadline"`
	FocusRecommendation   string                 `json:"focus_recommendation"`
	Plan                  []PlanEntry            `json:"plan"`
	Unscheduled           []TaskRef              `json:"unscheduled"`
	RescheduleSuggestions []RescheduleSuggestion `json:"reschedule_suggestions"`
}

type DayEvaluation struct {
	Date            string  `json:"date"`
	CompletedRatio  float64 `json:"completed_ratio"`
	Total           int     `json:"total"`
	Done            int     `json:"done"`
	Remaining       int     `json:"remaining"`
	Notes           string  `json:"notes"`
	Recommendations string  `json:"recommendations"`
}

type TrendPoint struct {
	Date  string  `json:"date"`
	Ratio float64 `json:"ratio"`
}

type TrendOverview struct {
	Series      []TrendPoint     `json:"series"`
	Avg         float64          `json:"avg"`
	Last        float64          `json:"last"`
	Delta       float64          `json:"delta"`
	Reflections []ReflectionNote `json:"reflections"`
}

// Reflection is the stored outcome of an agent self-review.
type Reflection struct {
	Improvements []string `json:"improvements"`
	Issues       []string `json:"issues"`
	NextActions  []string `json:"next_actions"`
}

type ReflectionNote struct {
	Date         string   `json:"date"`
	Improvements []string `json:"improvements"`
	Issues       []string `json:"issues"`
}

type RecurringResult struct {
	Count   int            `json:"count"`
	Events  []domain.Event `json:"events"`
	Skipped []string       `json:"skipped,omitempty"`
}

type AutoScheduleResult struct {
	Scheduled []domain.Event `json:"scheduled"`
}

type ShiftResult struct {
	Shifted *domain.Event `json:"shifted,omitempty"`
	Minutes int           `json:"minutes"`
	Message string        `json:"message,omitempty"`
}

// ScheduleEventResult is returned by event scheduling. Event is set when the
// candidate was accepted and persisted.
type ScheduleEventResult struct {
	ConflictResult
	Event *domain.Event `json:"event,omitempty"`
}

// SubtaskResult is a parent task with its generated children.
type SubtaskResult struct {
	Parent   *domain.Task   `json:"parent"`
	Subtasks []*domain.Task `json:"subtasks"`
}
