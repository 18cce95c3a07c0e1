package agent

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
)

// IntentResult is the outcome of one executed intent.
type IntentResult struct {
	Action string          `json:"action"`
	Params json.RawMessage `json:"params,omitempty"`
	Result any             `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Executor runs planned intents in order through a registry.
type Executor struct {
	registry *Registry
	state    *State
	memory   *Memory
}

func NewExecutor(registry *Registry, state *State, memory *Memory) *Executor {
	return &Executor{registry: registry, state: state, memory: memory}
}

// Execute runs every intent of plan sequentially. A failing intent is
// marked error and does not stop the rest.
func (e *Executor) Execute(ctx context.Context, plan Plan) []IntentResult {
	results := make([]IntentResult, 0, len(plan.Intents))
	for i, in := range plan.Intents {
		e.state.UpdateIntentAt(plan.ID, i, func(p *PlannedIntent) { p.Status = StatusRunning })

		res := e.run(ctx, Intent{Action: in.Action, Params: in.Params})
		results = append(results, res)

		encoded, _ := json.Marshal(res.Result)
		e.state.UpdateIntentAt(plan.ID, i, func(p *PlannedIntent) {
			p.Params = res.Params
			if res.Error != "" {
				p.Status, p.Error = StatusError, res.Error
				return
			}
			p.Status, p.Result = StatusDone, encoded
		})

		if e.memory != nil {
			var memResult any = res.Result
			if res.Error != "" {
				memResult = map[string]string{"error": res.Error}
			}
			e.memory.Note(ctx, domain.RoleAction, "", Intent{Action: res.Action, Params: res.Params}, memResult)
		}
	}
	return results
}

func (e *Executor) run(ctx context.Context, in Intent) IntentResult {
	res := IntentResult{Action: in.Action, Params: in.Params}
	out, err := e.registry.Call(ctx, in.Action, in.Params)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Result = out

	if retry, ok := rescheduleParams(in, out); ok {
		moved, err := e.registry.Call(ctx, in.Action, retry)
		if err == nil {
			res.Params, res.Result = retry, moved
		}
	}
	return res
}

// rescheduleParams moves a conflicting schedule_event to the suggested
// interval and forces it.
func rescheduleParams(in Intent, out any) (json.RawMessage, bool) {
	if in.Action != "schedule_event" {
		return nil, false
	}
	sched, ok := out.(*contract.ScheduleEventResult)
	if !ok || !sched.Conflict || sched.SuggestedInterval == nil {
		return nil, false
	}
	params := map[string]any{}
	if len(in.Params) > 0 {
		if err := json.Unmarshal(in.Params, &params); err != nil {
			return nil, false
		}
	}
	params["datetime_start"] = sched.SuggestedInterval.Start.Format(time.RFC3339)
	params["datetime_end"] = sched.SuggestedInterval.End.Format(time.RFC3339)
	params["force"] = true
	b, err := json.Marshal(params)
	if err != nil {
		return nil, false
	}
	return b, true
}
