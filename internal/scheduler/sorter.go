package scheduler

import (
	"sort"

	"github.com/alexanderramin/daybook/internal/domain"
)

// AdmissionRank returns the slot-filling tier of a priority (lower first).
// Only urgent is promoted and only "optional" is demoted; every other value,
// including normal and low, shares the middle tier.
func AdmissionRank(p domain.Priority) int {
	switch p {
	case domain.PriorityUrgent:
		return 0
	case "optional":
		return 2
	default:
		return 1
	}
}

// AdmissionSort orders open tasks for slot filling:
// 1. Admission tier ascending
// 2. Deadline: earliest first (nil last)
// Remaining ties keep input order. The input slice is not modified.
func AdmissionSort(tasks []domain.Task) []domain.Task {
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		rankA, rankB := AdmissionRank(a.Priority), AdmissionRank(b.Priority)
		if rankA != rankB {
			return rankA < rankB
		}

		if (a.Deadline == nil) != (b.Deadline == nil) {
			return a.Deadline != nil
		}
		if a.Deadline != nil && !a.Deadline.Equal(*b.Deadline) {
			return a.Deadline.Before(*b.Deadline)
		}
		return false
	})
	return sorted
}
