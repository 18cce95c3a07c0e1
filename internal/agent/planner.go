package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/alexanderramin/daybook/internal/llm"
)

const (
	maxIntents      = 5
	derivedTitleLen = 5
	minEventTitle   = 3
)

// singletons are functions that run at most once per plan.
var singletons = map[string]bool{
	"generate_daily_summary": true,
	"evaluate_day":           true,
	"memory_summary":         true,
}

var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "to": true, "for": true, "of": true, "and": true,
	"please": true, "add": true, "create": true, "new": true, "task": true, "schedule": true,
	"event": true, "meeting": true, "me": true, "my": true, "i": true, "need": true,
	"at": true, "on": true, "in": true, "tomorrow": true, "today": true,
}

// Planner turns a user message into function calls using an LLM.
type Planner struct {
	client   llm.LLMClient
	registry *Registry
}

func NewPlanner(client llm.LLMClient, registry *Registry) *Planner {
	return &Planner{client: client, registry: registry}
}

// Plan asks the model for intents, retrying once at temperature 0 and
// repairing malformed output. Any failure yields an empty plan.
func (p *Planner) Plan(ctx context.Context, text, memory string, now time.Time) []Intent {
	if p.client == nil {
		return []Intent{}
	}
	system := buildPlanSystemPrompt(p.registry, now)
	user := buildPlanUserPrompt(text, memory)

	for _, temp := range []float64{0.2, 0} {
		if ctx.Err() != nil {
			break
		}
		resp, err := p.client.Generate(ctx, llm.GenerateRequest{
			Task:         llm.TaskPlan,
			SystemPrompt: system,
			UserPrompt:   user,
			Temperature:  &temp,
		})
		if err != nil {
			continue
		}
		intents, err := p.parse(ctx, resp.Text)
		if err != nil {
			continue
		}
		return refineIntents(p.registry, intents, text)
	}
	return []Intent{}
}

// parse extracts the array directly and falls back to one repair round trip.
func (p *Planner) parse(ctx context.Context, raw string) ([]Intent, error) {
	intents, err := llm.ExtractJSONArray[Intent](raw, validateIntents)
	if err == nil {
		return intents, nil
	}
	zero := 0.0
	resp, rerr := p.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskRepair,
		SystemPrompt: repairSystemPrompt,
		UserPrompt:   raw,
		Temperature:  &zero,
	})
	if rerr != nil {
		return nil, fmt.Errorf("repairing plan: %w", rerr)
	}
	return llm.ExtractJSONArray[Intent](resp.Text, validateIntents)
}

func validateIntents(in []Intent) error {
	for i, it := range in {
		if strings.TrimSpace(it.Action) == "" {
			return fmt.Errorf("item %d has no action", i)
		}
	}
	return nil
}

// refineIntents drops unknown functions and repeated singletons, caps the
// plan at five calls, and fills in titles the model left empty.
func refineIntents(r *Registry, in []Intent, text string) []Intent {
	out := make([]Intent, 0, len(in))
	seen := map[string]bool{}
	for _, it := range in {
		if len(out) == maxIntents {
			break
		}
		if _, ok := r.Lookup(it.Action); !ok {
			continue
		}
		if singletons[it.Action] {
			if seen[it.Action] {
				continue
			}
			seen[it.Action] = true
		}
		fixed, keep := sanitize(it, text)
		if keep {
			out = append(out, fixed)
		}
	}
	return out
}

func sanitize(it Intent, text string) (Intent, bool) {
	if it.Action != "add_task" && it.Action != "schedule_event" {
		return it, true
	}
	params := map[string]any{}
	if len(it.Params) > 0 {
		if err := json.Unmarshal(it.Params, &params); err != nil {
			return it, true
		}
	}
	title, _ := params["title"].(string)
	title = strings.TrimSpace(title)

	switch {
	case it.Action == "add_task" && title == "":
		derived := deriveTitle(text)
		if derived == "" {
			return it, false
		}
		params["title"] = derived
	case it.Action == "schedule_event" && len([]rune(title)) < minEventTitle:
		if derived := deriveTitle(text); derived != "" {
			params["title"] = derived
		}
	default:
		return it, true
	}
	b, err := json.Marshal(params)
	if err != nil {
		return it, true
	}
	it.Params = b
	return it, true
}

// deriveTitle keeps the first five non-stopword words of text.
func deriveTitle(text string) string {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '\''
	})
	var kept []string
	for _, w := range words {
		if stopwords[strings.ToLower(w)] {
			continue
		}
		kept = append(kept, w)
		if len(kept) == derivedTitleLen {
			break
		}
	}
	return strings.Join(kept, " ")
}
