package agent

import (
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

const historyLimit = 20

type IntentStatus string

const (
	StatusPlanned IntentStatus = "planned"
	StatusRunning IntentStatus = "running"
	StatusDone    IntentStatus = "done"
	StatusError   IntentStatus = "error"
)

// Intent is one function call chosen by the planner.
type Intent struct {
	Action string          `json:"action"`
	Params json.RawMessage `json:"params,omitempty"`
}

type PlannedIntent struct {
	Action string          `json:"action"`
	Params json.RawMessage `json:"params,omitempty"`
	Status IntentStatus    `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Plan is the execution record of one user message.
type Plan struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Text      string          `json:"text"`
	Intents   []PlannedIntent `json:"intents"`
}

type IntentSummary struct {
	Action string       `json:"action"`
	Status IntentStatus `json:"status"`
}

type PlanSummary struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Text      string          `json:"text"`
	Intents   []IntentSummary `json:"intents"`
}

type Snapshot struct {
	Current *Plan         `json:"current"`
	History []PlanSummary `json:"history"`
}

// State tracks the plans being executed and a bounded history of finished
// ones, newest first. It is safe for concurrent use; each plan is addressed
// by its id so overlapping requests do not clobber each other.
type State struct {
	mu      sync.Mutex
	now     func() time.Time
	plans   map[string]*Plan
	current string
	// finished holds plans kept only because they are still current.
	finished map[string]bool
	history  []PlanSummary
}

func NewState(now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	return &State{now: now, plans: map[string]*Plan{}, finished: map[string]bool{}}
}

// StartPlan records a new plan with every intent planned and makes it the
// current one.
func (s *State) StartPlan(text string, intents []Intent) Plan {
	p := &Plan{
		ID:        uuid.New().String(),
		CreatedAt: s.now(),
		Text:      text,
		Intents:   make([]PlannedIntent, len(intents)),
	}
	for i, in := range intents {
		p.Intents[i] = PlannedIntent{Action: in.Action, Params: slices.Clone(in.Params), Status: StatusPlanned}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished[s.current] {
		delete(s.plans, s.current)
		delete(s.finished, s.current)
	}
	s.plans[p.ID] = p
	s.current = p.ID
	return copyPlan(p)
}

// UpdateIntentAt applies fn to intent i of plan planID.
func (s *State) UpdateIntentAt(planID string, i int, fn func(*PlannedIntent)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.plans[planID]
	if p == nil || i < 0 || i >= len(p.Intents) {
		return false
	}
	fn(&p.Intents[i])
	return true
}

// Finalize moves plan planID into history. The latest started plan stays
// visible as current until another one starts.
func (s *State) Finalize(planID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.plans[planID]
	if p == nil {
		return
	}
	summary := PlanSummary{ID: p.ID, CreatedAt: p.CreatedAt, Text: p.Text, Intents: make([]IntentSummary, len(p.Intents))}
	for i, in := range p.Intents {
		summary.Intents[i] = IntentSummary{Action: in.Action, Status: in.Status}
	}
	s.history = append([]PlanSummary{summary}, s.history...)
	if len(s.history) > historyLimit {
		s.history = s.history[:historyLimit]
	}
	if planID == s.current {
		s.finished[planID] = true
	} else {
		delete(s.plans, planID)
	}
}

// Snapshot returns deep copies of the current plan and the history.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{History: make([]PlanSummary, len(s.history))}
	for i, h := range s.history {
		h.Intents = slices.Clone(h.Intents)
		snap.History[i] = h
	}
	if p := s.plans[s.current]; p != nil {
		cp := copyPlan(p)
		snap.Current = &cp
	}
	return snap
}

func copyPlan(p *Plan) Plan {
	cp := *p
	cp.Intents = make([]PlannedIntent, len(p.Intents))
	for i, in := range p.Intents {
		in.Params = slices.Clone(in.Params)
		in.Result = slices.Clone(in.Result)
		cp.Intents[i] = in
	}
	return cp
}
