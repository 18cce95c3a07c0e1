package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
)

// InvalidWindowPolicy decides what happens to a weekly occurrence whose end
// is not after its start.
type InvalidWindowPolicy string

const (
	// SkipInvalid omits the occurrence and reports its date in Skipped.
	SkipInvalid InvalidWindowPolicy = "skip"
	// RejectInvalid fails the whole expansion.
	RejectInvalid InvalidWindowPolicy = "error"
)

const defaultRecurringWeeks = 4

// WeeklyRule describes a weekly event at a fixed wall-clock window.
type WeeklyRule struct {
	DayOfWeek time.Weekday
	Start     Clock
	End       Clock
	Weeks     int
}

// ParseWeeklyRule validates a weekday (0=Sunday) and two "HH:MM" clocks.
// A non-positive weeks count falls back to 4.
func ParseWeeklyRule(dayOfWeek int, start, end string, weeks int) (WeeklyRule, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return WeeklyRule{}, fmt.Errorf("%w: day_of_week must be 0-6, got %d", domain.ErrInvalidInterval, dayOfWeek)
	}
	s, err := ParseClock(start)
	if err != nil {
		return WeeklyRule{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return WeeklyRule{}, err
	}
	if weeks <= 0 {
		weeks = defaultRecurringWeeks
	}
	return WeeklyRule{DayOfWeek: time.Weekday(dayOfWeek), Start: s, End: e, Weeks: weeks}, nil
}

// Occurrences is the expansion of a WeeklyRule.
type Occurrences struct {
	Intervals []domain.TimeInterval
	Skipped   []time.Time
}

// ExpandWeekly lists the rule's occurrences starting from the first matching
// day on or after now's date. Windows that would cross midnight are not
// wrapped to the next day; they are invalid and handled by policy.
func ExpandWeekly(rule WeeklyRule, now time.Time, policy InvalidWindowPolicy) (Occurrences, error) {
	first := Clock(0).On(now)
	for first.Weekday() != rule.DayOfWeek {
		first = first.AddDate(0, 0, 1)
	}

	var out Occurrences
	for w := 0; w < rule.Weeks; w++ {
		day := first.AddDate(0, 0, 7*w)
		iv, err := domain.NewTimeInterval(rule.Start.On(day), rule.End.On(day))
		if err != nil {
			if policy == RejectInvalid {
				return Occurrences{}, fmt.Errorf("occurrence on %s: %w", day.Format("2006-01-02"), err)
			}
			out.Skipped = append(out.Skipped, day)
			continue
		}
		out.Intervals = append(out.Intervals, iv)
	}
	return out, nil
}
