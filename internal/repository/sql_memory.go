package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/domain"
)

// SQLMemoryRepo implements MemoryRepo over the agent_memory table.
type SQLMemoryRepo struct {
	db db.DBTX
}

func NewSQLMemoryRepo(conn db.DBTX) *SQLMemoryRepo {
	return &SQLMemoryRepo{db: conn}
}

func (r *SQLMemoryRepo) Append(ctx context.Context, m *domain.MemoryEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO agent_memory (id, ts, role, content, action, result) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, formatTime(m.TS), string(m.Role), m.Content, nullableJSON(m.Action), nullableJSON(m.Result))
	if err != nil {
		return fmt.Errorf("appending agent memory: %w", err)
	}
	return nil
}

func (r *SQLMemoryRepo) ListRecent(ctx context.Context, limit int) ([]*domain.MemoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, ts, role, content, action, result FROM agent_memory ORDER BY ts DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing agent memory: %w", err)
	}
	defer rows.Close()

	out := []*domain.MemoryEntry{}
	for rows.Next() {
		var m domain.MemoryEntry
		var ts, role string
		var action, result sql.NullString
		if err := rows.Scan(&m.ID, &ts, &role, &m.Content, &action, &result); err != nil {
			return nil, fmt.Errorf("scanning agent memory: %w", err)
		}
		if m.TS, err = parseTime(ts); err != nil {
			return nil, fmt.Errorf("parsing ts: %w", err)
		}
		m.Role = domain.MemoryRole(role)
		m.Action = jsonFromNull(action)
		m.Result = jsonFromNull(result)
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating agent memory: %w", err)
	}
	return out, nil
}
