package scheduler

import (
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
)

var refNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

type taskOpt func(*domain.Task)

func withPriority(p domain.Priority) taskOpt {
	return func(t *domain.Task) { t.Priority = p }
}

func withStatus(s domain.TaskStatus) taskOpt {
	return func(t *domain.Task) { t.Status = s }
}

func withDeadline(d time.Time) taskOpt {
	return func(t *domain.Task) { t.Deadline = &d }
}

func withMinutes(m int) taskOpt {
	return func(t *domain.Task) { t.EstimatedMinutes = &m }
}

func withParent(id string) taskOpt {
	return func(t *domain.Task) { t.ParentTaskID = &id }
}

func withCreated(c time.Time) taskOpt {
	return func(t *domain.Task) { t.CreatedAt = c }
}

func newTask(id string, opts ...taskOpt) domain.Task {
	t := domain.Task{
		ID:        id,
		Title:     "Task " + id,
		Status:    domain.TaskPending,
		Priority:  domain.PriorityNormal,
		CreatedAt: refNow,
		UpdatedAt: refNow,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 15, hour, minute, 0, 0, time.UTC)
}

func newEvent(id string, start, end time.Time) domain.Event {
	return domain.Event{ID: id, Title: "Event " + id, StartTime: start, EndTime: end, CreatedAt: refNow}
}

func span(start, end time.Time) domain.TimeInterval {
	return domain.TimeInterval{Start: start, End: end}
}
