package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/domain"
)

// RecordKind selects the table a DayRecordRepo reads and writes.
type RecordKind string

const (
	KindSummary    RecordKind = "daily_summaries"
	KindEvaluation RecordKind = "daily_evaluations"
	KindReflection RecordKind = "reflections"
)

// SQLDayRecordRepo implements DayRecordRepo for one RecordKind.
type SQLDayRecordRepo struct {
	db    db.DBTX
	table string
}

// NewSQLDayRecordRepo panics on an unknown kind since the table name is
// interpolated into SQL.
func NewSQLDayRecordRepo(conn db.DBTX, kind RecordKind) *SQLDayRecordRepo {
	switch kind {
	case KindSummary, KindEvaluation, KindReflection:
	default:
		panic(fmt.Sprintf("repository: unknown record kind %q", kind))
	}
	return &SQLDayRecordRepo{db: conn, table: string(kind)}
}

func (r *SQLDayRecordRepo) Save(ctx context.Context, rec *domain.DayRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO `+r.table+` (id, date, content, created_at) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.Date, string(rec.Content), formatTime(rec.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting into %s: %w", r.table, err)
	}
	return nil
}

func (r *SQLDayRecordRepo) LatestForDate(ctx context.Context, date string) (*domain.DayRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, date, content, created_at FROM `+r.table+` WHERE date = ? ORDER BY created_at DESC, id DESC LIMIT 1`, date)
	rec, err := scanDayRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s for %s: %w", r.table, date, ErrNotFound)
	}
	return rec, err
}

func (r *SQLDayRecordRepo) ListRecent(ctx context.Context, limit int) ([]*domain.DayRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, content, created_at FROM `+r.table+` ORDER BY date DESC, created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.table, err)
	}
	defer rows.Close()

	out := []*domain.DayRecord{}
	for rows.Next() {
		rec, err := scanDayRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", r.table, err)
	}
	return out, nil
}

func scanDayRecord(s scanner) (*domain.DayRecord, error) {
	var rec domain.DayRecord
	var content, created string
	if err := s.Scan(&rec.ID, &rec.Date, &content, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning day record: %w", err)
	}
	rec.Content = []byte(content)

	var err error
	if rec.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &rec, nil
}
