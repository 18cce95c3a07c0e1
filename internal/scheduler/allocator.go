package scheduler

import (
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
)

// AllocateTasks packs tasks into free slots strictly in the given order.
// When the head of the queue does not fit in the remainder of the current
// slot, the allocator moves on to the next slot without looking further
// down the queue. Tasks left when slots run out are returned as unscheduled.
func AllocateTasks(ordered []domain.Task, free []domain.TimeInterval) contract.Allocation {
	plan := []contract.PlanEntry{}
	queue := ordered

	for _, slot := range free {
		cursor := slot.Start
		for len(queue) > 0 {
			head := queue[0]
			end := cursor.Add(time.Duration(head.EffectiveMinutes()) * time.Minute)
			if end.After(slot.End) {
				break
			}
			plan = append(plan, contract.PlanEntry{
				TaskID: head.ID,
				Title:  head.Title,
				Start:  cursor,
				End:    end,
			})
			cursor = end
			queue = queue[1:]
		}
		if len(queue) == 0 {
			break
		}
	}

	unscheduled := make([]domain.Task, len(queue))
	copy(unscheduled, queue)
	return contract.Allocation{Plan: plan, Unscheduled: unscheduled}
}
