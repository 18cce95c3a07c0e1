package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/repository"
	"github.com/alexanderramin/daybook/internal/scheduler"
	"github.com/google/uuid"
)

const (
	focusSetSize         = 3
	defaultAutoBlocks    = 2
	defaultStagnantHours = 48
	noActiveTasks        = "No active tasks."
)

type priorityService struct {
	tasks    repository.TaskRepo
	events   repository.EventRepo
	uow      db.UnitOfWork
	settings Settings
	observer UseCaseObserver
}

func NewPriorityService(
	tasks repository.TaskRepo,
	events repository.EventRepo,
	uow db.UnitOfWork,
	settings Settings,
	observers ...UseCaseObserver,
) PriorityService {
	return &priorityService{
		tasks:    tasks,
		events:   events,
		uow:      uow,
		settings: settings,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *priorityService) Prioritize(ctx context.Context) ([]contract.ScoredTask, error) {
	all, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	return scheduler.ScoreTasks(derefTasks(all), s.settings.now()), nil
}

func (s *priorityService) SuggestNext(ctx context.Context) (*contract.NextTaskSuggestion, error) {
	scored, err := s.Prioritize(ctx)
	if err != nil {
		return nil, err
	}
	next := scheduler.SuggestNext(scored)
	if next == nil {
		return &contract.NextTaskSuggestion{Message: noActiveTasks}, nil
	}
	return &contract.NextTaskSuggestion{Suggestion: next, Rationale: next.Reasons}, nil
}

func (s *priorityService) FocusToday(ctx context.Context) (*contract.FocusResult, error) {
	scored, err := s.Prioritize(ctx)
	if err != nil {
		return nil, err
	}
	return &contract.FocusResult{
		Next:  scheduler.SuggestNext(scored),
		Top:   scheduler.FocusSet(scored, focusSetSize),
		Count: len(scored),
	}, nil
}

// AutoSchedule reserves one-hour focus blocks for the top count undated
// top-level tasks inside today's auto-block window.
func (s *priorityService) AutoSchedule(ctx context.Context, count int) (res *contract.AutoScheduleResult, err error) {
	if count <= 0 {
		count = defaultAutoBlocks
	}
	fields := map[string]any{"count": count}
	done := track(ctx, s.observer, "auto-schedule", fields)
	defer func() { done(err) }()

	now := s.settings.now()
	scored, err := s.Prioritize(ctx)
	if err != nil {
		return nil, err
	}
	candidates := scheduler.AutoScheduleCandidates(scored, count)

	window, err := s.settings.AutoBlock.Window(now)
	if err != nil {
		return nil, err
	}

	res = &contract.AutoScheduleResult{Scheduled: []domain.Event{}}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLEventRepo(tx)
		// Events starting a minute before the window still count as busy.
		busy, err := repo.ListStartingBetween(ctx, window.Start.Add(-time.Minute), window.End)
		if err != nil {
			return err
		}
		for _, p := range scheduler.PlaceFocusBlocks(candidates, window, derefEvents(busy)) {
			ev := domain.Event{
				ID:        uuid.New().String(),
				Title:     p.Title,
				StartTime: p.Interval.Start,
				EndTime:   p.Interval.End,
				CreatedAt: now,
			}
			if err := repo.Create(ctx, &ev); err != nil {
				return err
			}
			res.Scheduled = append(res.Scheduled, ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["scheduled"] = len(res.Scheduled)
	return res, nil
}

func (s *priorityService) Stagnant(ctx context.Context, hours int) (*contract.StagnantReport, error) {
	if hours <= 0 {
		hours = defaultStagnantHours
	}
	all, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	report := scheduler.DetectStagnant(derefTasks(all), s.settings.now(), hours)
	return &report, nil
}

func (s *priorityService) Progress(ctx context.Context) (*contract.ProgressOverview, error) {
	all, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	overview := scheduler.Progress(derefTasks(all))
	return &overview, nil
}
