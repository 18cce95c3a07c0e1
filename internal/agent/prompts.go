package agent

import (
	"fmt"
	"time"
)

const planSystemPrompt = `You are the planner of a personal day-planning assistant.
Map the user's message to function calls from the list below.

Functions:
%s
Output rules:
1. Output ONLY a JSON array of {"action": string, "params": object}.
2. At most 5 items. Avoid duplicates.
3. Return [] when no function applies.
4. Datetimes are ISO 8601 in the user's timezone. Now is %s (%s).
5. Never invent task, event or goal ids; call a list function first when one is needed.`

const repairSystemPrompt = `Rewrite the text below as a valid JSON array of {"action": string, "params": object}.
Output ONLY the JSON array. Return [] if nothing can be recovered.`

const answerSystemPrompt = `You are a concise personal planning assistant.
Answer the user in at most 4 short sentences using only the function results provided.
Mention conflicts, scheduled times and next steps when present. Do not invent data.`

const reflectSystemPrompt = `You review a user's recent activity with a planning assistant.
Output ONLY a JSON object {"improvements": [string], "issues": [string], "next_actions": [string]} with at most 3 short items each.`

func buildPlanSystemPrompt(r *Registry, now time.Time) string {
	return fmt.Sprintf(planSystemPrompt, r.describe(), now.Format(time.RFC3339), now.Weekday())
}

func buildPlanUserPrompt(text, memory string) string {
	if memory == "" {
		return text
	}
	return fmt.Sprintf("Recent activity:\n%s\n\nMessage: %s", memory, text)
}
