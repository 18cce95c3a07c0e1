package scheduler

import (
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
)

// RescheduleHint is attached to every task that did not fit the day.
const RescheduleHint = "Consider scheduling tomorrow morning at 09:00"

// ComposeDailyPlan builds the day summary for date: open tasks are admitted
// in AdmissionSort order into the free time left by dayEvents inside hours.
// Tasks that are not pending or in progress are ignored.
func ComposeDailyPlan(date time.Time, openTasks []domain.Task, dayEvents []domain.Event, hours WorkHours) (contract.DailySummary, error) {
	var open []domain.Task
	for _, t := range openTasks {
		if t.Status.IsOpen() {
			open = append(open, t)
		}
	}
	ordered := AdmissionSort(open)

	window, err := hours.Window(date)
	if err != nil {
		return contract.DailySummary{}, err
	}
	slots, err := BuildFreeBusySlots(window, dayEvents)
	if err != nil {
		return contract.DailySummary{}, err
	}
	alloc := AllocateTasks(ordered, slots.Free)

	focus := contract.DefaultFocusRecommendation
	if len(alloc.Plan) > 0 {
		first := alloc.Plan[0]
		focus = domain.TimeInterval{Start: first.Start, End: first.End}.String()
	}

	unscheduled := make([]contract.TaskRef, 0, len(alloc.Unscheduled))
	suggestions := make([]contract.RescheduleSuggestion, 0, len(alloc.Unscheduled))
	for _, t := range alloc.Unscheduled {
		unscheduled = append(unscheduled, contract.TaskRef{ID: t.ID, Title: t.Title})
		suggestions = append(suggestions, contract.RescheduleSuggestion{TaskID: t.ID, Suggestion: RescheduleHint})
	}

	return contract.DailySummary{
		Date:                  date.Format("2006-01-02"),
		TasksCount:            len(ordered),
		EventsCount:           len(dayEvents),
		FirstDeadline:         firstDeadline(ordered),
		FocusRecommendation:   focus,
		Plan:                  alloc.Plan,
		Unscheduled:           unscheduled,
		RescheduleSuggestions: suggestions,
	}, nil
}

func firstDeadline(tasks []domain.Task) *time.Time {
	var first *time.Time
	for _, t := range tasks {
		if t.Deadline == nil {
			continue
		}
		if first == nil || t.Deadline.Before(*first) {
			d := *t.Deadline
			first = &d
		}
	}
	return first
}
