package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/llm"
	"github.com/alexanderramin/daybook/internal/repository"
	"github.com/google/uuid"
)

const (
	reflectWindow = 30
	dateLayout    = "2006-01-02"
	noActionReply = "I could not map that to an action. Try rephrasing, for example \"add task write report tomorrow 17:00\"."
)

type ChatResult struct {
	Answer  string         `json:"answer"`
	PlanID  string         `json:"plan_id"`
	Results []IntentResult `json:"results"`
}

// Assistant plans, executes and answers one user message at a time. State
// is shared and may serve concurrent chats.
type Assistant struct {
	client      llm.LLMClient
	registry    *Registry
	planner     *Planner
	executor    *Executor
	state       *State
	memory      *Memory
	reflections repository.DayRecordRepo
	now         func() time.Time
}

// NewAssistant wires the planner and executor. client may be nil, in
// which case every message yields an empty plan.
func NewAssistant(
	client llm.LLMClient,
	registry *Registry,
	state *State,
	memory *Memory,
	reflections repository.DayRecordRepo,
	now func() time.Time,
) *Assistant {
	if now == nil {
		now = time.Now
	}
	return &Assistant{
		client:      client,
		registry:    registry,
		planner:     NewPlanner(client, registry),
		executor:    NewExecutor(registry, state, memory),
		state:       state,
		memory:      memory,
		reflections: reflections,
		now:         now,
	}
}

func (a *Assistant) State() *State       { return a.state }
func (a *Assistant) Registry() *Registry { return a.registry }
func (a *Assistant) Memory() *Memory     { return a.memory }

func (a *Assistant) Chat(ctx context.Context, text string) (*ChatResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if err := a.memory.Remember(ctx, domain.RoleUser, text, nil, nil); err != nil {
		return nil, err
	}
	history, err := a.memory.Context(ctx)
	if err != nil {
		return nil, err
	}

	intents := a.planner.Plan(ctx, text, history, a.now())
	plan := a.state.StartPlan(text, intents)
	defer a.state.Finalize(plan.ID)

	results := a.executor.Execute(ctx, plan)
	answer := a.answer(ctx, text, results)
	if err := a.memory.Remember(ctx, domain.RoleAssistant, answer, nil, nil); err != nil {
		return nil, err
	}
	return &ChatResult{Answer: answer, PlanID: plan.ID, Results: results}, nil
}

func (a *Assistant) answer(ctx context.Context, text string, results []IntentResult) string {
	if len(results) == 0 {
		return noActionReply
	}
	if a.client != nil {
		payload, err := json.Marshal(results)
		if err == nil {
			resp, err := a.client.Generate(ctx, llm.GenerateRequest{
				Task:         llm.TaskAnswer,
				SystemPrompt: answerSystemPrompt,
				UserPrompt:   fmt.Sprintf("Message: %s\n\nResults:\n%s", text, payload),
			})
			if err == nil && strings.TrimSpace(resp.Text) != "" {
				return strings.TrimSpace(resp.Text)
			}
		}
	}
	return fallbackAnswer(results)
}

// fallbackAnswer lists which calls succeeded and which failed.
func fallbackAnswer(results []IntentResult) string {
	var done, failed []string
	for _, r := range results {
		if r.Error != "" {
			failed = append(failed, fmt.Sprintf("%s (%s)", r.Action, r.Error))
			continue
		}
		done = append(done, r.Action)
	}
	var b strings.Builder
	if len(done) > 0 {
		fmt.Fprintf(&b, "Done: %s.", strings.Join(done, ", "))
	}
	if len(failed) > 0 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "Failed: %s.", strings.Join(failed, "; "))
	}
	return b.String()
}

// Reflect asks the model to review recent activity and stores the result
// as today's reflection.
func (a *Assistant) Reflect(ctx context.Context) (*contract.Reflection, error) {
	if a.client == nil {
		return nil, llm.ErrDisabled
	}
	entries, err := a.memory.Recent(ctx, reflectWindow)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := string(e.Role) + ": " + truncate(e.Content, contextSnippet)
		if e.Role == domain.RoleAction {
			var act Intent
			_ = json.Unmarshal(e.Action, &act)
			line = "action: " + act.Action
		}
		lines = append(lines, line)
	}

	resp, err := a.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskAnswer,
		SystemPrompt: reflectSystemPrompt,
		UserPrompt:   strings.Join(lines, "\n"),
	})
	if err != nil {
		return nil, fmt.Errorf("reflecting: %w", err)
	}
	refl, err := llm.ExtractJSON[contract.Reflection](resp.Text, nil)
	if err != nil {
		return nil, err
	}

	content, err := json.Marshal(refl)
	if err != nil {
		return nil, fmt.Errorf("encoding reflection: %w", err)
	}
	now := a.now()
	if err := a.reflections.Save(ctx, &domain.DayRecord{
		ID:        uuid.New().String(),
		Date:      now.Format(dateLayout),
		Content:   content,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}
	return &refl, nil
}
