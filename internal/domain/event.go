package domain

import "time"

type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}

// Interval returns the event's busy window. It is not validated.
func (e *Event) Interval() TimeInterval {
	return TimeInterval{Start: e.StartTime, End: e.EndTime}
}
