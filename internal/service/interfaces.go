package service

import (
	"context"
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
)

type TaskService interface {
	Add(ctx context.Context, req contract.AddTaskRequest) (*domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Update(ctx context.Context, req contract.UpdateTaskRequest) (*domain.Task, error)
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]*domain.Task, error)
	ListOpen(ctx context.Context) ([]*domain.Task, error)
	ListDone(ctx context.Context) ([]*domain.Task, error)
	// GenerateSubtasks creates a parent task and count children derived
	// from its title.
	GenerateSubtasks(ctx context.Context, parentTitle string, count int) (*contract.SubtaskResult, error)
}

type EventService interface {
	Schedule(ctx context.Context, req contract.ScheduleEventRequest) (*contract.ScheduleEventResult, error)
	ScheduleRecurring(ctx context.Context, req contract.RecurringEventRequest) (*contract.RecurringResult, error)
	ShiftNext(ctx context.Context, minutes int) (*contract.ShiftResult, error)
	Update(ctx context.Context, req contract.UpdateEventRequest) (*domain.Event, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]*domain.Event, error)
	ListForDay(ctx context.Context, day time.Time) ([]*domain.Event, error)
}

type GoalService interface {
	Add(ctx context.Context, req contract.AddGoalRequest) (*domain.Goal, error)
	Update(ctx context.Context, req contract.UpdateGoalRequest) (*domain.Goal, error)
	UpdateProgress(ctx context.Context, id string, progress float64) (*domain.Goal, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Goal, error)
}

type PlanningService interface {
	GenerateDailySummary(ctx context.Context, date time.Time) (*contract.DailySummary, error)
	EvaluateDay(ctx context.Context, date time.Time) (*contract.DayEvaluation, error)
	Trend(ctx context.Context, days int) (*contract.TrendOverview, error)
}

type PriorityService interface {
	Prioritize(ctx context.Context) ([]contract.ScoredTask, error)
	SuggestNext(ctx context.Context) (*contract.NextTaskSuggestion, error)
	FocusToday(ctx context.Context) (*contract.FocusResult, error)
	AutoSchedule(ctx context.Context, count int) (*contract.AutoScheduleResult, error)
	Stagnant(ctx context.Context, hours int) (*contract.StagnantReport, error)
	Progress(ctx context.Context) (*contract.ProgressOverview, error)
}
