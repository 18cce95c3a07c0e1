package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval is returned when an interval's end is not after its
// start, or when an endpoint cannot be parsed.
var ErrInvalidInterval = errors.New("invalid interval")

// TimeInterval is a half-open interval [Start, End).
type TimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeInterval validates start < end.
func NewTimeInterval(start, end time.Time) (TimeInterval, error) {
	if start.IsZero() || end.IsZero() {
		return TimeInterval{}, fmt.Errorf("%w: missing endpoint", ErrInvalidInterval)
	}
	if !end.After(start) {
		return TimeInterval{}, fmt.Errorf("%w: end %s is not after start %s",
			ErrInvalidInterval, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return TimeInterval{Start: start, End: end}, nil
}

// ParseTimeInterval parses two RFC3339 timestamps into a validated interval.
func ParseTimeInterval(start, end string) (TimeInterval, error) {
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return TimeInterval{}, fmt.Errorf("%w: start %q: %v", ErrInvalidInterval, start, err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return TimeInterval{}, fmt.Errorf("%w: end %q: %v", ErrInvalidInterval, end, err)
	}
	return NewTimeInterval(s, e)
}

// Overlaps reports whether a and b share any instant. Touching intervals
// do not overlap.
func (a TimeInterval) Overlaps(b TimeInterval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Contains reports whether t lies in [Start, End).
func (a TimeInterval) Contains(t time.Time) bool {
	return !t.Before(a.Start) && t.Before(a.End)
}

// Duration returns End - Start.
func (a TimeInterval) Duration() time.Duration {
	return a.End.Sub(a.Start)
}

// DurationMinutes returns the interval length in (possibly fractional) minutes.
func (a TimeInterval) DurationMinutes() float64 {
	return a.Duration().Minutes()
}

// Shift translates both endpoints by the given number of minutes.
func (a TimeInterval) Shift(minutes int) TimeInterval {
	d := time.Duration(minutes) * time.Minute
	return TimeInterval{Start: a.Start.Add(d), End: a.End.Add(d)}
}

// LengthAtLeast reports whether the interval is at least the given minutes long.
func (a TimeInterval) LengthAtLeast(minutes int) bool {
	return a.Duration() >= time.Duration(minutes)*time.Minute
}

func (a TimeInterval) String() string {
	return a.Start.Format("15:04") + "–" + a.End.Format("15:04")
}
