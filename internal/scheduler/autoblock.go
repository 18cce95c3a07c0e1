package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
)

const (
	FocusBlockLength = time.Hour
	FocusBlockGap    = 5 * time.Minute
)

// BlockPlacement is a focus block reserved for a task.
type BlockPlacement struct {
	TaskID   string
	Title    string
	Interval domain.TimeInterval
}

// PlaceFocusBlocks reserves one FocusBlockLength block per candidate inside
// window, in candidate order. Events starting within window (or up to a
// minute before it) are busy. When a block collides, the cursor jumps past
// the earliest-ending collision plus FocusBlockGap. Placement stops at the
// first candidate that cannot be placed.
func PlaceFocusBlocks(candidates []contract.ScoredTask, window domain.TimeInterval, events []domain.Event) []BlockPlacement {
	var busy []domain.TimeInterval
	lowerBound := window.Start.Add(-time.Minute)
	for _, ev := range events {
		if ev.StartTime.After(lowerBound) && ev.StartTime.Before(window.End) {
			busy = append(busy, ev.Interval())
		}
	}

	placed := []BlockPlacement{}
	cursor := window.Start
	for _, c := range candidates {
		ok := false
		for cursor.Add(time.Minute).Before(window.End) {
			slot := domain.TimeInterval{Start: cursor, End: cursor.Add(FocusBlockLength)}
			if slot.End.After(window.End) {
				break
			}
			overlapping := overlappingByEnd(busy, slot)
			if len(overlapping) == 0 {
				placed = append(placed, BlockPlacement{TaskID: c.ID, Title: c.Title + " (block)", Interval: slot})
				busy = append(busy, slot)
				cursor = slot.End.Add(FocusBlockGap)
				ok = true
				break
			}
			cursor = overlapping[0].End.Add(FocusBlockGap)
		}
		if !ok {
			break
		}
	}
	return placed
}

func overlappingByEnd(busy []domain.TimeInterval, slot domain.TimeInterval) []domain.TimeInterval {
	var out []domain.TimeInterval
	for _, b := range busy {
		if b.Overlaps(slot) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].End.Before(out[j].End)
	})
	return out
}
