package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/repository"
	"github.com/alexanderramin/daybook/internal/scheduler"
	"github.com/google/uuid"
)

const (
	defaultTrendDays = 7
	dateLayout       = "2006-01-02"
)

type planningService struct {
	tasks       repository.TaskRepo
	events      repository.EventRepo
	summaries   repository.DayRecordRepo
	evaluations repository.DayRecordRepo
	reflections repository.DayRecordRepo
	settings    Settings
	notifier    Notifier
	observer    UseCaseObserver
}

func NewPlanningService(
	tasks repository.TaskRepo,
	events repository.EventRepo,
	summaries repository.DayRecordRepo,
	evaluations repository.DayRecordRepo,
	reflections repository.DayRecordRepo,
	settings Settings,
	notifier Notifier,
	observers ...UseCaseObserver,
) PlanningService {
	return &planningService{
		tasks:       tasks,
		events:      events,
		summaries:   summaries,
		evaluations: evaluations,
		reflections: reflections,
		settings:    settings,
		notifier:    notifier,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *planningService) GenerateDailySummary(ctx context.Context, date time.Time) (summary *contract.DailySummary, err error) {
	fields := map[string]any{}
	done := track(ctx, s.observer, "generate-daily-summary", fields)
	defer func() { done(err) }()

	day := s.day(date)
	fields["date"] = day.Format(dateLayout)

	open, err := s.tasks.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading open tasks: %w", err)
	}
	bounds := scheduler.DayBounds(day)
	events, err := s.events.ListStartingBetween(ctx, bounds.Start, bounds.End)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}

	composed, err := scheduler.ComposeDailyPlan(day, derefTasks(open), derefEvents(events), s.settings.WorkHours)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, s.summaries, composed.Date, composed); err != nil {
		return nil, err
	}
	fields["planned"] = len(composed.Plan)
	fields["unscheduled"] = len(composed.Unscheduled)

	deliver(ctx, s.notifier, s.observer, "Daily Summary "+composed.Date)
	return &composed, nil
}

// EvaluateDay scores completion over every stored task and persists the
// evaluation under date.
func (s *planningService) EvaluateDay(ctx context.Context, date time.Time) (eval *contract.DayEvaluation, err error) {
	fields := map[string]any{}
	done := track(ctx, s.observer, "evaluate-day", fields)
	defer func() { done(err) }()

	all, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	result := scheduler.EvaluateDay(s.day(date).Format(dateLayout), derefTasks(all))
	if err := s.save(ctx, s.evaluations, result.Date, result); err != nil {
		return nil, err
	}
	fields["date"] = result.Date
	fields["ratio"] = result.CompletedRatio
	return &result, nil
}

// Trend summarizes the last days evaluations and attaches the matching
// reflection notes.
func (s *planningService) Trend(ctx context.Context, days int) (*contract.TrendOverview, error) {
	if days <= 0 {
		days = defaultTrendDays
	}
	recs, err := s.evaluations.ListRecent(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("loading evaluations: %w", err)
	}
	evals := make([]contract.DayEvaluation, 0, len(recs))
	for _, r := range recs {
		var e contract.DayEvaluation
		if err := json.Unmarshal(r.Content, &e); err != nil {
			return nil, fmt.Errorf("decoding evaluation %s: %w", r.ID, err)
		}
		if e.Date == "" {
			e.Date = r.Date
		}
		evals = append(evals, e)
	}
	overview := scheduler.Trend(evals)

	notes, err := s.reflections.ListRecent(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("loading reflections: %w", err)
	}
	overview.Reflections = make([]contract.ReflectionNote, 0, len(notes))
	for _, r := range notes {
		var refl contract.Reflection
		// Reflections are model output; an unreadable one is skipped.
		if json.Unmarshal(r.Content, &refl) != nil {
			continue
		}
		overview.Reflections = append(overview.Reflections, contract.ReflectionNote{
			Date:         r.Date,
			Improvements: refl.Improvements,
			Issues:       refl.Issues,
		})
	}
	return &overview, nil
}

func (s *planningService) day(date time.Time) time.Time {
	if date.IsZero() {
		return s.settings.now()
	}
	return date.In(s.settings.location())
}

func (s *planningService) save(ctx context.Context, repo repository.DayRecordRepo, date string, v any) error {
	content, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	return repo.Save(ctx, &domain.DayRecord{
		ID:        uuid.New().String(),
		Date:      date,
		Content:   content,
		CreatedAt: s.settings.now(),
	})
}

func derefTasks(tasks []*domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		out[i] = *t
	}
	return out
}
