package agent

import "errors"

var (
	// ErrUnknownFunction is returned when a call names no registered function.
	ErrUnknownFunction = errors.New("unknown function")

	ErrEmptyMessage = errors.New("message text is required")
	ErrNoMemory     = errors.New("assistant memory is not configured")
)
