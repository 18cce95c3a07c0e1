package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
)

// Clock is a wall-clock time of day in minutes since midnight.
type Clock int

// ParseClock parses "HH:MM" (24h). Single-digit hours are accepted;
// minutes need two digits and nothing may follow them.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: clock %q must be HH:MM", domain.ErrInvalidInterval, s)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// On returns the instant at this clock time on t's calendar day in t's location.
func (c Clock) On(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, int(c)/60, int(c)%60, 0, 0, t.Location())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// WorkHours is the daily working window used to build free slots.
type WorkHours struct {
	Start Clock
	End   Clock
}

// DefaultWorkHours is 08:00–17:00.
func DefaultWorkHours() WorkHours {
	return WorkHours{Start: 8 * 60, End: 17 * 60}
}

// ParseWorkHours parses a start/end pair of "HH:MM" strings.
func ParseWorkHours(start, end string) (WorkHours, error) {
	s, err := ParseClock(start)
	if err != nil {
		return WorkHours{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return WorkHours{}, err
	}
	if e <= s {
		return WorkHours{}, fmt.Errorf("%w: work hours %s-%s", domain.ErrInvalidInterval, start, end)
	}
	return WorkHours{Start: s, End: e}, nil
}

// Window returns the work window on the given day.
func (w WorkHours) Window(day time.Time) (domain.TimeInterval, error) {
	return domain.NewTimeInterval(w.Start.On(day), w.End.On(day))
}

// DayBounds returns [local midnight, next local midnight) for t.
func DayBounds(t time.Time) domain.TimeInterval {
	start := Clock(0).On(t)
	return domain.TimeInterval{Start: start, End: start.AddDate(0, 0, 1)}
}
