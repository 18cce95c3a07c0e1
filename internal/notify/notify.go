// Package notify delivers short plain-text messages to the user.
package notify

import "context"

// Notifier sends a message to the user's default chat.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Noop discards every message.
type Noop struct{}

func (Noop) Notify(context.Context, string) error { return nil }
