package scheduler

import (
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
)

// StagnantHint is attached to every stagnant task.
const StagnantHint = "Consider splitting it into subtasks or scheduling a focus block."

// DetectStagnant returns tasks that are not done and were created at least
// hours ago.
func DetectStagnant(tasks []domain.Task, now time.Time, hours int) contract.StagnantReport {
	stale := []contract.StagnantTask{}
	for _, t := range tasks {
		if t.Status == domain.TaskDone || t.CreatedAt.IsZero() {
			continue
		}
		if ageHours(t.CreatedAt, now) >= float64(hours) {
			stale = append(stale, contract.StagnantTask{ID: t.ID, Title: t.Title, Suggestion: StagnantHint})
		}
	}
	return contract.StagnantReport{Count: len(stale), Tasks: stale}
}

// Progress reports the done ratio over all tasks.
func Progress(tasks []domain.Task) contract.ProgressOverview {
	done := countDone(tasks)
	var ratio float64
	if len(tasks) > 0 {
		ratio = float64(done) / float64(len(tasks))
	}
	return contract.ProgressOverview{Total: len(tasks), Done: done, CompletionRatio: round2(ratio)}
}

// EvaluateDay grades the day from task completion.
func EvaluateDay(date string, tasks []domain.Task) contract.DayEvaluation {
	done := countDone(tasks)
	var ratio float64
	if len(tasks) > 0 {
		ratio = float64(done) / float64(len(tasks))
	}
	return contract.DayEvaluation{
		Date:            date,
		CompletedRatio:  ratio,
		Total:           len(tasks),
		Done:            done,
		Remaining:       len(tasks) - done,
		Notes:           "Automatic evaluation from task status.",
		Recommendations: recommendation(ratio),
	}
}

func recommendation(ratio float64) string {
	switch {
	case ratio < 0.3:
		return "Tomorrow, finish one or two priority tasks first thing in the morning."
	case ratio < 0.6:
		return "Push mid-sized tasks to completion before lunch."
	case ratio >= 0.9:
		return "Great work! Start on the backlog or quality improvements."
	default:
		return "Keep up the consistency."
	}
}

// Trend summarizes evaluations given newest first. The returned series is
// oldest first.
func Trend(evals []contract.DayEvaluation) contract.TrendOverview {
	series := make([]contract.TrendPoint, len(evals))
	var sum float64
	for i, e := range evals {
		series[len(evals)-1-i] = contract.TrendPoint{Date: e.Date, Ratio: e.CompletedRatio}
		sum += e.CompletedRatio
	}
	var avg, last, delta float64
	if len(evals) > 0 {
		avg = sum / float64(len(evals))
		last = evals[0].CompletedRatio
	}
	if len(evals) > 1 {
		delta = last - evals[len(evals)-1].CompletedRatio
	}
	return contract.TrendOverview{
		Series: series,
		Avg:    round2(avg),
		Last:   round2(last),
		Delta:  round2(delta),
	}
}

func countDone(tasks []domain.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Status == domain.TaskDone {
			n++
		}
	}
	return n
}

