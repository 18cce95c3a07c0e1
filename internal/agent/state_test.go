package agent

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intents(actions ...string) []Intent {
	out := make([]Intent, len(actions))
	for i, a := range actions {
		out[i] = Intent{Action: a, Params: json.RawMessage(`{}`)}
	}
	return out
}

func TestState_StartPlanMarksIntentsPlanned(t *testing.T) {
	s := NewState(newClock().Now)
	p := s.StartPlan("hello", intents("add_task", "list_tasks"))

	require.Len(t, p.Intents, 2)
	for _, in := range p.Intents {
		assert.Equal(t, StatusPlanned, in.Status)
	}
	snap := s.Snapshot()
	require.NotNil(t, snap.Current)
	assert.Equal(t, p.ID, snap.Current.ID)
	assert.Empty(t, snap.History)
}

func TestState_UpdateIntentAtTargetsByIndex(t *testing.T) {
	s := NewState(newClock().Now)
	p := s.StartPlan("x", intents("add_task", "add_task"))

	assert.True(t, s.UpdateIntentAt(p.ID, 1, func(in *PlannedIntent) { in.Status = StatusError }))
	assert.True(t, s.UpdateIntentAt(p.ID, 0, func(in *PlannedIntent) { in.Status = StatusDone }))
	assert.False(t, s.UpdateIntentAt(p.ID, 2, func(*PlannedIntent) {}))
	assert.False(t, s.UpdateIntentAt(p.ID, -1, func(*PlannedIntent) {}))
	assert.False(t, s.UpdateIntentAt("missing", 0, func(*PlannedIntent) {}))

	cur := s.Snapshot().Current
	assert.Equal(t, StatusDone, cur.Intents[0].Status)
	assert.Equal(t, StatusError, cur.Intents[1].Status)
}

func TestState_FinalizeKeepsNewestFirstAndCaps(t *testing.T) {
	s := NewState(newClock().Now)
	for i := 0; i < historyLimit+5; i++ {
		p := s.StartPlan(fmt.Sprintf("msg %d", i), intents("list_tasks"))
		s.Finalize(p.ID)
	}

	snap := s.Snapshot()
	require.Len(t, snap.History, historyLimit)
	assert.Equal(t, fmt.Sprintf("msg %d", historyLimit+4), snap.History[0].Text)
	assert.Equal(t, "msg 5", snap.History[historyLimit-1].Text)
	require.NotNil(t, snap.Current)
	assert.Equal(t, snap.History[0].ID, snap.Current.ID)
	assert.Len(t, s.plans, 1)
}

func TestState_SnapshotIsDeepCopy(t *testing.T) {
	s := NewState(newClock().Now)
	p := s.StartPlan("x", intents("add_task"))
	s.UpdateIntentAt(p.ID, 0, func(in *PlannedIntent) { in.Result = json.RawMessage(`{"id":"1"}`) })
	s.Finalize(p.ID)

	snap := s.Snapshot()
	snap.Current.Intents[0].Status = StatusError
	snap.Current.Intents[0].Result[2] = 'X'
	snap.History[0].Intents[0].Action = "mutated"

	again := s.Snapshot()
	assert.Equal(t, StatusPlanned, again.Current.Intents[0].Status)
	assert.JSONEq(t, `{"id":"1"}`, string(again.Current.Intents[0].Result))
	assert.Equal(t, "add_task", again.History[0].Intents[0].Action)
}

func TestState_ConcurrentPlans(t *testing.T) {
	s := NewState(newClock().Now)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := s.StartPlan("x", intents("a", "b"))
			for j := range p.Intents {
				s.UpdateIntentAt(p.ID, j, func(in *PlannedIntent) { in.Status = StatusDone })
			}
			s.Finalize(p.ID)
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	require.Len(t, snap.History, 8)
	for _, h := range snap.History {
		for _, in := range h.Intents {
			assert.Equal(t, StatusDone, in.Status)
		}
	}
	assert.Len(t, s.plans, 1)
}

func TestState_UpdateIntentAtUnknownPlan(t *testing.T) {
	s := NewState(nil)
	assert.False(t, s.UpdateIntentAt("missing", 0, func(*PlannedIntent) {}))
	s.Finalize("missing")
	assert.Nil(t, s.Snapshot().Current)
}
