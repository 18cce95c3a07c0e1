package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/repository"
	"github.com/alexanderramin/daybook/internal/scheduler"
	"github.com/google/uuid"
)

const (
	defaultEventTitle     = "Event"
	defaultRecurringTitle = "Recurring Event"
	noUpcomingEvent       = "No upcoming events."
)

type eventService struct {
	events   repository.EventRepo
	uow      db.UnitOfWork
	settings Settings
	observer UseCaseObserver
}

func NewEventService(
	events repository.EventRepo,
	uow db.UnitOfWork,
	settings Settings,
	observers ...UseCaseObserver,
) EventService {
	return &eventService{
		events:   events,
		uow:      uow,
		settings: settings,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Schedule checks the candidate against stored events and persists it when
// there is no conflict or Force is set. The overlap query and the insert
// share one transaction.
func (s *eventService) Schedule(ctx context.Context, req contract.ScheduleEventRequest) (res *contract.ScheduleEventResult, err error) {
	fields := map[string]any{"force": req.Force}
	done := track(ctx, s.observer, "schedule-event", fields)
	defer func() { done(err) }()

	candidate, err := domain.ParseTimeInterval(req.Start, req.End)
	if err != nil {
		return nil, err
	}
	title := domain.CoalesceStr(strings.TrimSpace(req.Title), defaultEventTitle)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLEventRepo(tx)
		overlapping, err := repo.ListOverlapping(ctx, candidate.Start, candidate.End)
		if err != nil {
			return err
		}
		check, err := scheduler.DetectConflict(candidate, derefEvents(overlapping), req.Force)
		if err != nil {
			return err
		}
		res = &contract.ScheduleEventResult{ConflictResult: check}
		if check.Conflict {
			return nil
		}

		ev := &domain.Event{
			ID:        uuid.New().String(),
			Title:     title,
			StartTime: candidate.Start,
			EndTime:   candidate.End,
			CreatedAt: s.settings.now(),
		}
		if err := repo.Create(ctx, ev); err != nil {
			return err
		}
		res.Event = ev
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["conflict"] = res.Conflict
	return res, nil
}

func (s *eventService) ScheduleRecurring(ctx context.Context, req contract.RecurringEventRequest) (res *contract.RecurringResult, err error) {
	fields := map[string]any{"day_of_week": req.DayOfWeek, "weeks": req.Weeks}
	done := track(ctx, s.observer, "schedule-recurring-event", fields)
	defer func() { done(err) }()

	rule, err := scheduler.ParseWeeklyRule(req.DayOfWeek, req.StartHHMM, req.EndHHMM, req.Weeks)
	if err != nil {
		return nil, err
	}
	occ, err := scheduler.ExpandWeekly(rule, s.settings.now(), s.settings.RecurringPolicy)
	if err != nil {
		return nil, err
	}

	title := domain.CoalesceStr(strings.TrimSpace(req.Title), defaultRecurringTitle)
	res = &contract.RecurringResult{Events: []domain.Event{}}
	for _, day := range occ.Skipped {
		res.Skipped = append(res.Skipped, day.Format(dateLayout))
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLEventRepo(tx)
		now := s.settings.now()
		for _, iv := range occ.Intervals {
			ev := domain.Event{
				ID:        uuid.New().String(),
				Title:     title,
				StartTime: iv.Start,
				EndTime:   iv.End,
				CreatedAt: now,
			}
			if err := repo.Create(ctx, &ev); err != nil {
				return err
			}
			res.Events = append(res.Events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Count = len(res.Events)
	fields["count"] = res.Count
	fields["skipped"] = len(res.Skipped)
	return res, nil
}

// ShiftNext moves the earliest event starting after now by minutes.
func (s *eventService) ShiftNext(ctx context.Context, minutes int) (res *contract.ShiftResult, err error) {
	done := track(ctx, s.observer, "shift-next-event", map[string]any{"minutes": minutes})
	defer func() { done(err) }()

	if minutes == 0 {
		return nil, fmt.Errorf("%w: minutes must be non-zero", ErrValidation)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLEventRepo(tx)
		next, err := repo.NextAfter(ctx, s.settings.now())
		if errors.Is(err, repository.ErrNotFound) {
			res = &contract.ShiftResult{Minutes: minutes, Message: noUpcomingEvent}
			return nil
		}
		if err != nil {
			return err
		}
		shifted := next.Interval().Shift(minutes)
		next.StartTime, next.EndTime = shifted.Start, shifted.End
		if err := repo.Update(ctx, next); err != nil {
			return err
		}
		res = &contract.ShiftResult{Shifted: next, Minutes: minutes}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *eventService) Update(ctx context.Context, req contract.UpdateEventRequest) (ev *domain.Event, err error) {
	done := track(ctx, s.observer, "update-event", map[string]any{"event_id": req.EventID})
	defer func() { done(err) }()

	if req.Title == nil && req.Start == nil && req.End == nil {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLEventRepo(tx)
		e, err := repo.GetByID(ctx, req.EventID)
		if err != nil {
			return err
		}
		if req.Title != nil {
			e.Title = domain.CoalesceStr(strings.TrimSpace(*req.Title), defaultEventTitle)
		}
		start := e.StartTime.Format(time.RFC3339)
		end := e.EndTime.Format(time.RFC3339)
		iv, err := domain.ParseTimeInterval(
			domain.StrFromPtrWithDefault(start, req.Start),
			domain.StrFromPtrWithDefault(end, req.End),
		)
		if err != nil {
			return err
		}
		e.StartTime, e.EndTime = iv.Start, iv.End
		ev = e
		return repo.Update(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	return ev, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}

func (s *eventService) DeleteAll(ctx context.Context) (int64, error) {
	return s.events.DeleteAll(ctx)
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.events.List(ctx)
}

// ListForDay returns events starting on day's calendar date in the
// configured location.
func (s *eventService) ListForDay(ctx context.Context, day time.Time) ([]*domain.Event, error) {
	bounds := scheduler.DayBounds(day.In(s.settings.location()))
	return s.events.ListStartingBetween(ctx, bounds.Start, bounds.End)
}

func derefEvents(events []*domain.Event) []domain.Event {
	out := make([]domain.Event, len(events))
	for i, e := range events {
		out[i] = *e
	}
	return out
}
