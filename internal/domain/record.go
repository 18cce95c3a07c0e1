package domain

import (
	"encoding/json"
	"time"
)

// DayRecord is a dated JSON document: a daily summary, an evaluation or a
// reflection. The content shape is owned by the producer.
type DayRecord struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
}

type MemoryEntry struct {
	ID      string          `json:"id"`
	TS      time.Time       `json:"ts"`
	Role    MemoryRole      `json:"role"`
	Content string          `json:"content,omitempty"`
	Action  json.RawMessage `json:"action,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}
