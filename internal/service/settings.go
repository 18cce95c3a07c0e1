package service

import (
	"context"
	"time"

	"github.com/alexanderramin/daybook/internal/scheduler"
)

// Settings carries the schedule configuration shared by the services.
type Settings struct {
	Location        *time.Location
	WorkHours       scheduler.WorkHours
	AutoBlock       scheduler.WorkHours
	RecurringPolicy scheduler.InvalidWindowPolicy
	// Now overrides the wall clock; nil means time.Now.
	Now func() time.Time
}

// DefaultSettings uses 08:00–17:00 work hours, a 13:00–18:00 auto-block
// window, UTC, and skips invalid recurring occurrences.
func DefaultSettings() Settings {
	return Settings{
		Location:        time.UTC,
		WorkHours:       scheduler.DefaultWorkHours(),
		AutoBlock:       scheduler.WorkHours{Start: 13 * 60, End: 18 * 60},
		RecurringPolicy: scheduler.SkipInvalid,
	}
}

func (s Settings) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s Settings) now() time.Time {
	if s.Now != nil {
		return s.Now().In(s.location())
	}
	return time.Now().In(s.location())
}

// Notifier delivers a short plain-text message to the user.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// deliver sends text through n when one is configured. Delivery failures
// never fail the calling use case; they are reported to obs as a failed
// "notify" use case.
func deliver(ctx context.Context, n Notifier, obs UseCaseObserver, text string) {
	if n == nil {
		return
	}
	startedAt := time.Now()
	if err := n.Notify(ctx, text); err != nil {
		obs.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "notify",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Err:       err,
			Fields:    map[string]any{"chars": len(text)},
		})
	}
}
