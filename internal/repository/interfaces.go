package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
)

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns every task ordered by creation time.
	List(ctx context.Context) ([]*domain.Task, error)
	// ListOpen returns pending and in-progress tasks, earliest deadline
	// first with undated tasks last.
	ListOpen(ctx context.Context) ([]*domain.Task, error)
	ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	// ListStartingBetween returns events whose start lies in [from, to).
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error)
	// ListOverlapping returns events sharing any instant with [from, to).
	ListOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Event, error)
	// NextAfter returns the earliest event starting strictly after t.
	NextAfter(ctx context.Context, t time.Time) (*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

type GoalRepo interface {
	Create(ctx context.Context, g *domain.Goal) error
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	List(ctx context.Context) ([]*domain.Goal, error)
	Update(ctx context.Context, g *domain.Goal) error
	Delete(ctx context.Context, id string) error
}

// DayRecordRepo stores dated JSON documents of one RecordKind.
type DayRecordRepo interface {
	Save(ctx context.Context, r *domain.DayRecord) error
	// LatestForDate returns the most recently saved record for a
	// "2006-01-02" date.
	LatestForDate(ctx context.Context, date string) (*domain.DayRecord, error)
	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.DayRecord, error)
}

type MemoryRepo interface {
	Append(ctx context.Context, m *domain.MemoryEntry) error
	// ListRecent returns up to limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.MemoryEntry, error)
}
