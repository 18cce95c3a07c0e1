package db

import (
	"context"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent, so the
// whole list is replayed on each start. Column types are restricted to ones
// both SQLite and Postgres accept; timestamps are stored as UTC RFC3339 text
// so that lexical order matches time order.
func Migrate(d *Database) error {
	conn := d.Conn()
	ctx := context.Background()
	for i, stmt := range migrations {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id                TEXT PRIMARY KEY,
		title             TEXT NOT NULL,
		status            TEXT NOT NULL DEFAULT 'pending'
		                  CHECK(status IN ('pending','in_progress','done','blocked')),
		priority          TEXT NOT NULL DEFAULT 'normal',
		deadline          TEXT,
		parent_task_id    TEXT REFERENCES tasks(id) ON DELETE CASCADE,
		estimated_minutes INTEGER,
		ai_explanation    TEXT NOT NULL DEFAULT '',
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_task_id)`,

	`CREATE TABLE IF NOT EXISTS events (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time   TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_time)`,

	`CREATE TABLE IF NOT EXISTS goals (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		target_date TEXT,
		progress    DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS daily_summaries (
		id         TEXT PRIMARY KEY,
		date       TEXT NOT NULL,
		content    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_summaries_date ON daily_summaries(date)`,

	`CREATE TABLE IF NOT EXISTS daily_evaluations (
		id         TEXT PRIMARY KEY,
		date       TEXT NOT NULL,
		content    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_evaluations_date ON daily_evaluations(date)`,

	`CREATE TABLE IF NOT EXISTS reflections (
		id         TEXT PRIMARY KEY,
		date       TEXT NOT NULL,
		content    TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS agent_memory (
		id      TEXT PRIMARY KEY,
		ts      TEXT NOT NULL,
		role    TEXT NOT NULL CHECK(role IN ('user','assistant','system','action')),
		content TEXT NOT NULL DEFAULT '',
		action  TEXT,
		result  TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_agent_memory_ts ON agent_memory(ts)`,
}
