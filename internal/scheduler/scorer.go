package scheduler

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/dustin/go-humanize"
)

// ScoringWeights holds the fixed constants of the priority formula.
type ScoringWeights struct {
	Priority       map[domain.Priority]float64
	DefaultWeight  float64
	Overdue        float64
	Within6h       float64
	Within24h      float64
	Within72h      float64
	Beyond72h      float64
	MaxAgePenalty  float64
	AgeDecayWindow time.Duration
	SubtaskPenalty float64
	DonePenalty    float64
}

func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		Priority: map[domain.Priority]float64{
			domain.PriorityUrgent:    4,
			domain.PriorityImportant: 3,
			domain.PriorityNormal:    2,
			domain.PriorityLow:       1,
		},
		DefaultWeight:  2,
		Overdue:        5,
		Within6h:       4,
		Within24h:      3,
		Within72h:      2,
		Beyond72h:      1,
		MaxAgePenalty:  2,
		AgeDecayWindow: 7 * 24 * time.Hour,
		SubtaskPenalty: 0.2,
		DonePenalty:    -10,
	}
}

var defaultWeights = DefaultWeights()

type scoringInput struct {
	Task     *domain.Task
	Now      time.Time
	AgeHours float64
	Weights  ScoringWeights
}

// ScoreTask scores a single task at now. Factors contribute in a fixed
// order, which is also the order of the returned reasons.
func ScoreTask(t domain.Task, now time.Time) contract.ScoredTask {
	in := scoringInput{
		Task:     &t,
		Now:      now,
		AgeHours: ageHours(t.CreatedAt, now),
		Weights:  defaultWeights,
	}

	var score float64
	var reasons []string
	factors := []func(scoringInput) (float64, string){
		scorePriority,
		scoreDeadline,
		scoreAgeDecay,
		scoreStatus,
		scoreDepth,
	}
	for _, f := range factors {
		delta, reason := f(in)
		score += delta
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}

	return contract.ScoredTask{
		Task:     t,
		Score:    round2(score),
		Reasons:  reasons,
		AgeHours: in.AgeHours,
	}
}

// ScoreTasks scores every task and sorts by score descending. Equal scores
// keep input order.
func ScoreTasks(tasks []domain.Task, now time.Time) []contract.ScoredTask {
	scored := make([]contract.ScoredTask, len(tasks))
	for i := range tasks {
		scored[i] = ScoreTask(tasks[i], now)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// SuggestNext returns the first non-done task of a sorted score list.
func SuggestNext(scored []contract.ScoredTask) *contract.ScoredTask {
	for i := range scored {
		if scored[i].Status != domain.TaskDone {
			next := scored[i]
			return &next
		}
	}
	return nil
}

// FocusSet returns up to n non-done tasks of a sorted score list.
func FocusSet(scored []contract.ScoredTask, n int) []contract.ScoredTask {
	top := []contract.ScoredTask{}
	for _, s := range scored {
		if len(top) >= n {
			break
		}
		if s.Status != domain.TaskDone {
			top = append(top, s)
		}
	}
	return top
}

// AutoScheduleCandidates returns up to n open tasks without a deadline that
// are not subtasks, in score order.
func AutoScheduleCandidates(scored []contract.ScoredTask, n int) []contract.ScoredTask {
	out := []contract.ScoredTask{}
	for _, s := range scored {
		if len(out) >= n {
			break
		}
		if !s.Status.IsOpen() || s.Deadline != nil || s.IsSubtask() {
			continue
		}
		out = append(out, s)
	}
	return out
}

func scorePriority(in scoringInput) (float64, string) {
	w, ok := in.Weights.Priority[in.Task.Priority]
	if !ok {
		w = in.Weights.DefaultWeight
	}
	return w, "priority:" + string(in.Task.Priority)
}

func scoreDeadline(in scoringInput) (float64, string) {
	if in.Task.Deadline == nil {
		return 0, ""
	}
	until := in.Task.Deadline.Sub(in.Now)
	var w float64
	switch {
	case until <= 0:
		w = in.Weights.Overdue
	case until <= 6*time.Hour:
		w = in.Weights.Within6h
	case until <= 24*time.Hour:
		w = in.Weights.Within24h
	case until <= 72*time.Hour:
		w = in.Weights.Within72h
	default:
		w = in.Weights.Beyond72h
	}
	return w, "deadline " + humanize.RelTime(*in.Task.Deadline, in.Now, "ago", "from now")
}

func scoreAgeDecay(in scoringInput) (float64, string) {
	window := in.Weights.AgeDecayWindow.Hours()
	penalty := math.Min(in.Weights.MaxAgePenalty, in.AgeHours/window*in.Weights.MaxAgePenalty)
	if penalty <= 0 {
		return 0, ""
	}
	return -penalty, fmt.Sprintf("age decay -%.2f", penalty)
}

func scoreStatus(in scoringInput) (float64, string) {
	if in.Task.Status == domain.TaskDone {
		return in.Weights.DonePenalty, "already done"
	}
	return 0, ""
}

func scoreDepth(in scoringInput) (float64, string) {
	if in.Task.IsSubtask() {
		return -in.Weights.SubtaskPenalty, "subtask"
	}
	return 0, ""
}

// ageHours counts whole hours since creation. A missing creation time counts as new.
func ageHours(createdAt, now time.Time) float64 {
	if createdAt.IsZero() {
		return 0
	}
	h := math.Floor(now.Sub(createdAt).Hours())
	return math.Max(0, h)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
