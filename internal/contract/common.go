package contract

import (
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
)

// ScoredTask is a task annotated by the priority scorer.
type ScoredTask struct {
	domain.Task
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons"`
	AgeHours float64  `json:"age_hours"`
}

// PlanEntry is one task placed into a free slot.
type PlanEntry struct {
	TaskID string    `json:"task_id"`
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// FreeBusy is the complement of a work window against busy intervals.
type FreeBusy struct {
	Free []domain.TimeInterval `json:"free"`
	Busy []domain.TimeInterval `json:"busy"`
}

// Allocation is the result of packing an ordered task list into free slots.
type Allocation struct {
	Plan        []PlanEntry   `json:"plan"`
	Unscheduled []domain.Task `json:"unscheduled"`
}

// ConflictResult describes the outcome of checking a candidate event.
// SuggestedInterval and ConflictingEvents are set only when Conflict is true.
type ConflictResult struct {
	Conflict          bool                 `json:"conflict"`
	ConflictingEvents []domain.Event       `json:"conflicting_events,omitempty"`
	SuggestedInterval *domain.TimeInterval `json:"suggested_interval,omitempty"`
}

type TaskRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
