package agent

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/daybook/internal/llm"
	"github.com/alexanderramin/daybook/internal/repository"
	"github.com/alexanderramin/daybook/internal/service"
	"github.com/alexanderramin/daybook/internal/testutil"
)

// tickingClock advances one second per call so memory entries order
// deterministically.
type tickingClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *tickingClock { return &tickingClock{t: testutil.FixedNow} }

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// scriptedLLM answers Generate calls from a queue of replies. An empty
// queue or an error reply fails the call with ErrUnavailable.
type scriptedLLM struct {
	mu       sync.Mutex
	replies  []string
	requests []llm.GenerateRequest
}

var errScripted = errors.New("scripted failure")

func (s *scriptedLLM) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	if len(s.replies) == 0 {
		return nil, llm.ErrUnavailable
	}
	next := s.replies[0]
	s.replies = s.replies[1:]
	if next == "!" {
		return nil, errScripted
	}
	return &llm.GenerateResponse{Text: next, Model: "scripted"}, nil
}

func (s *scriptedLLM) Available(context.Context) bool { return true }

func (s *scriptedLLM) tasks() []llm.TaskType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]llm.TaskType, len(s.requests))
	for i, r := range s.requests {
		out[i] = r.Task
	}
	return out
}

type fixture struct {
	svc         Services
	memory      *Memory
	state       *State
	registry    *Registry
	reflections *repository.SQLDayRecordRepo
	clock       *tickingClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	conn := database.Conn()
	uow := testutil.NewTestUoW(database)
	settings := service.DefaultSettings()
	settings.Now = func() time.Time { return testutil.FixedNow }

	tasks := repository.NewSQLTaskRepo(conn)
	events := repository.NewSQLEventRepo(conn)
	reflections := repository.NewSQLDayRecordRepo(conn, repository.KindReflection)
	clock := newClock()
	memory := NewMemory(repository.NewSQLMemoryRepo(conn), clock.Now)

	svc := Services{
		Tasks:  service.NewTaskService(tasks, uow, settings, nil),
		Events: service.NewEventService(events, uow, settings),
		Goals:  service.NewGoalService(repository.NewSQLGoalRepo(conn), uow, settings),
		Planning: service.NewPlanningService(tasks, events,
			repository.NewSQLDayRecordRepo(conn, repository.KindSummary),
			repository.NewSQLDayRecordRepo(conn, repository.KindEvaluation),
			reflections, settings, nil),
		Priority: service.NewPriorityService(tasks, events, uow, settings),
		Memory:   memory,
		Location: time.UTC,
	}
	return &fixture{
		svc:         svc,
		memory:      memory,
		state:       NewState(clock.Now),
		registry:    NewDefaultRegistry(svc),
		reflections: reflections,
		clock:       clock,
	}
}

func (f *fixture) assistant(client llm.LLMClient) *Assistant {
	return NewAssistant(client, f.registry, f.state, f.memory, f.reflections, f.clock.Now)
}
