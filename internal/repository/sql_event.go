package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/domain"
)

const eventColumns = `id, title, start_time, end_time, created_at`

// SQLEventRepo implements EventRepo over any DBTX.
type SQLEventRepo struct {
	db db.DBTX
}

func NewSQLEventRepo(conn db.DBTX) *SQLEventRepo {
	return &SQLEventRepo{db: conn}
}

func (r *SQLEventRepo) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (` + eventColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Title, formatTime(e.StartTime), formatTime(e.EndTime), formatTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

func (r *SQLEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	return e, err
}

func (r *SQLEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	return r.query(ctx, "listing events", `SELECT `+eventColumns+` FROM events ORDER BY start_time, id`)
}

func (r *SQLEventRepo) ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error) {
	return r.query(ctx, "listing events in window",
		`SELECT `+eventColumns+` FROM events WHERE start_time >= ? AND start_time < ? ORDER BY start_time, id`,
		formatTime(from), formatTime(to))
}

func (r *SQLEventRepo) ListOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Event, error) {
	return r.query(ctx, "listing overlapping events",
		`SELECT `+eventColumns+` FROM events WHERE start_time < ? AND end_time > ? ORDER BY start_time, id`,
		formatTime(to), formatTime(from))
}

func (r *SQLEventRepo) NextAfter(ctx context.Context, t time.Time) (*domain.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE start_time > ? ORDER BY start_time, id LIMIT 1`, formatTime(t))
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("next event: %w", ErrNotFound)
	}
	return e, err
}

func (r *SQLEventRepo) Update(ctx context.Context, e *domain.Event) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE events SET title = ?, start_time = ?, end_time = ? WHERE id = ?`,
		e.Title, formatTime(e.StartTime), formatTime(e.EndTime), e.ID)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	return expectAffected(res, "event "+e.ID)
}

func (r *SQLEventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return expectAffected(res, "event "+id)
}

func (r *SQLEventRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events`)
	if err != nil {
		return 0, fmt.Errorf("deleting all events: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLEventRepo) query(ctx context.Context, what, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()

	events := []*domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

func scanEvent(s scanner) (*domain.Event, error) {
	var e domain.Event
	var start, end, created string
	if err := s.Scan(&e.ID, &e.Title, &start, &end, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning event: %w", err)
	}

	var err error
	if e.StartTime, err = parseTime(start); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if e.EndTime, err = parseTime(end); err != nil {
		return nil, fmt.Errorf("parsing end_time: %w", err)
	}
	if e.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &e, nil
}
