package scheduler

import (
	"sort"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
)

// BuildFreeBusySlots computes the free intervals inside window that no event
// occupies. Busy intervals are returned sorted by start; ties keep input order.
// Free intervals are clipped to the window and never overlap each other.
func BuildFreeBusySlots(window domain.TimeInterval, events []domain.Event) (contract.FreeBusy, error) {
	if _, err := domain.NewTimeInterval(window.Start, window.End); err != nil {
		return contract.FreeBusy{}, err
	}

	busy := make([]domain.TimeInterval, len(events))
	for i := range events {
		busy[i] = events[i].Interval()
	}
	sort.SliceStable(busy, func(i, j int) bool {
		return busy[i].Start.Before(busy[j].Start)
	})

	free := []domain.TimeInterval{}
	cursor := window.Start
	for _, b := range busy {
		if !cursor.Before(window.End) {
			break
		}
		gapEnd := b.Start
		if gapEnd.After(window.End) {
			gapEnd = window.End
		}
		if gapEnd.After(cursor) {
			free = append(free, domain.TimeInterval{Start: cursor, End: gapEnd})
		}
		// The cursor never retreats, so nested or overlapping busy
		// intervals cannot produce duplicate or negative gaps.
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(window.End) {
		free = append(free, domain.TimeInterval{Start: cursor, End: window.End})
	}

	return contract.FreeBusy{Free: free, Busy: busy}, nil
}
