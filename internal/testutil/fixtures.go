package testutil

import (
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/google/uuid"
)

// FixedNow is the reference instant shared by fixtures and tests.
var FixedNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

// Task options
type TaskOption func(*domain.Task)

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithDeadline(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.Deadline = &d
	}
}

func WithEstimate(minutes int) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedMinutes = &minutes
	}
}

func WithParent(id string) TaskOption {
	return func(t *domain.Task) {
		t.ParentTaskID = &id
	}
}

func WithCreatedAt(c time.Time) TaskOption {
	return func(t *domain.Task) {
		t.CreatedAt = c
		t.UpdatedAt = c
	}
}

func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    domain.TaskPending,
		Priority:  domain.PriorityNormal,
		CreatedAt: FixedNow,
		UpdatedAt: FixedNow,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestEvent creates an event starting at start and lasting d.
func NewTestEvent(title string, start time.Time, d time.Duration) *domain.Event {
	return &domain.Event{
		ID:        uuid.New().String(),
		Title:     title,
		StartTime: start,
		EndTime:   start.Add(d),
		CreatedAt: FixedNow,
	}
}

func NewTestGoal(title string, progress float64) *domain.Goal {
	return &domain.Goal{
		ID:        uuid.New().String(),
		Title:     title,
		Progress:  progress,
		CreatedAt: FixedNow,
		UpdatedAt: FixedNow,
	}
}

// At returns FixedNow's date at the given wall-clock time.
func At(hour, minute int) time.Time {
	return time.Date(2025, 3, 15, hour, minute, 0, 0, time.UTC)
}
