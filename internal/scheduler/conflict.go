package scheduler

import (
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
)

const (
	// ConflictGap is left between the last conflicting event and a suggestion.
	ConflictGap = 5 * time.Minute
	// SnapGranularity is the minute grid suggestions are rounded up to.
	SnapGranularity = 15
)

// DetectConflict checks candidate against existing events. Unless force is
// set, a conflict yields a suggestion that starts ConflictGap after the
// latest conflicting end, rounded up to the next SnapGranularity minute, and
// keeps the candidate's duration.
func DetectConflict(candidate domain.TimeInterval, events []domain.Event, force bool) (contract.ConflictResult, error) {
	if _, err := domain.NewTimeInterval(candidate.Start, candidate.End); err != nil {
		return contract.ConflictResult{}, err
	}

	var conflicts []domain.Event
	for _, ev := range events {
		if candidate.Overlaps(ev.Interval()) {
			conflicts = append(conflicts, ev)
		}
	}
	if len(conflicts) == 0 || force {
		return contract.ConflictResult{Conflict: false}, nil
	}

	latest := candidate.Start
	for _, ev := range conflicts {
		if ev.EndTime.After(latest) {
			latest = ev.EndTime
		}
	}
	start := SnapUp(latest.Add(ConflictGap), SnapGranularity)
	suggested := domain.TimeInterval{Start: start, End: start.Add(candidate.Duration())}

	return contract.ConflictResult{
		Conflict:          true,
		ConflictingEvents: conflicts,
		SuggestedInterval: &suggested,
	}, nil
}

// SnapUp drops seconds and rounds the minute component up to the next
// multiple of step. A minute already on the grid is kept.
func SnapUp(t time.Time, step int) time.Time {
	y, mo, d := t.Date()
	hourStart := time.Date(y, mo, d, t.Hour(), 0, 0, 0, t.Location())
	snapped := (t.Minute() + step - 1) / step * step
	return hourStart.Add(time.Duration(snapped) * time.Minute)
}
