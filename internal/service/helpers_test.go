package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/repository"
	"github.com/alexanderramin/daybook/internal/testutil"
)

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (n *recordingNotifier) Notify(_ context.Context, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
	return n.err
}

func (n *recordingNotifier) sent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

type harness struct {
	db          *db.Database
	uow         db.UnitOfWork
	tasks       *repository.SQLTaskRepo
	events      *repository.SQLEventRepo
	goals       *repository.SQLGoalRepo
	summaries   *repository.SQLDayRecordRepo
	evaluations *repository.SQLDayRecordRepo
	reflections *repository.SQLDayRecordRepo
	settings    Settings
	notifier    *recordingNotifier
	observer    *recordingObserver
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	conn := database.Conn()
	settings := DefaultSettings()
	settings.Now = func() time.Time { return testutil.FixedNow }
	return &harness{
		db:          database,
		uow:         testutil.NewTestUoW(database),
		tasks:       repository.NewSQLTaskRepo(conn),
		events:      repository.NewSQLEventRepo(conn),
		goals:       repository.NewSQLGoalRepo(conn),
		summaries:   repository.NewSQLDayRecordRepo(conn, repository.KindSummary),
		evaluations: repository.NewSQLDayRecordRepo(conn, repository.KindEvaluation),
		reflections: repository.NewSQLDayRecordRepo(conn, repository.KindReflection),
		settings:    settings,
		notifier:    &recordingNotifier{},
		observer:    &recordingObserver{},
	}
}

func (h *harness) taskService() TaskService {
	return NewTaskService(h.tasks, h.uow, h.settings, h.notifier, h.observer)
}

func (h *harness) eventService() EventService {
	return NewEventService(h.events, h.uow, h.settings, h.observer)
}

func (h *harness) goalService() GoalService {
	return NewGoalService(h.goals, h.uow, h.settings)
}

func (h *harness) planningService() PlanningService {
	return NewPlanningService(h.tasks, h.events, h.summaries, h.evaluations, h.reflections, h.settings, h.notifier, h.observer)
}

func (h *harness) priorityService() PriorityService {
	return NewPriorityService(h.tasks, h.events, h.uow, h.settings, h.observer)
}

var errDeliveryDown = errors.New("delivery down")

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
