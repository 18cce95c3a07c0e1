package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/domain"
)

const taskColumns = `id, title, status, priority, deadline, parent_task_id, estimated_minutes, ai_explanation, created_at, updated_at`

// SQLTaskRepo implements TaskRepo over any DBTX.
type SQLTaskRepo struct {
	db db.DBTX
}

func NewSQLTaskRepo(conn db.DBTX) *SQLTaskRepo {
	return &SQLTaskRepo{db: conn}
}

func (r *SQLTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		string(t.Status),
		string(t.Priority),
		nullableTimeToString(t.Deadline),
		nullableStringToValue(t.ParentTaskID),
		nullableIntToValue(t.EstimatedMinutes),
		t.AIExplanation,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return t, err
}

func (r *SQLTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	return r.query(ctx, "listing tasks",
		`SELECT `+taskColumns+` FROM tasks ORDER BY created_at, id`)
}

func (r *SQLTaskRepo) ListOpen(ctx context.Context) ([]*domain.Task, error) {
	return r.query(ctx, "listing open tasks",
		`SELECT `+taskColumns+` FROM tasks
		WHERE status IN ('pending', 'in_progress')
		ORDER BY deadline IS NULL, deadline, created_at, id`)
}

func (r *SQLTaskRepo) ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	return r.query(ctx, "listing tasks by status",
		`SELECT `+taskColumns+` FROM tasks WHERE status = ? ORDER BY updated_at DESC, id`, string(status))
}

func (r *SQLTaskRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.Task, error) {
	return r.query(ctx, "listing subtasks",
		`SELECT `+taskColumns+` FROM tasks WHERE parent_task_id = ? ORDER BY created_at, id`, parentID)
}

func (r *SQLTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, status = ?, priority = ?, deadline = ?, parent_task_id = ?,
		estimated_minutes = ?, ai_explanation = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		string(t.Status),
		string(t.Priority),
		nullableTimeToString(t.Deadline),
		nullableStringToValue(t.ParentTaskID),
		nullableIntToValue(t.EstimatedMinutes),
		t.AIExplanation,
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return expectAffected(res, "task "+t.ID)
}

func (r *SQLTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return expectAffected(res, "task "+id)
}

func (r *SQLTaskRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks`)
	if err != nil {
		return 0, fmt.Errorf("deleting all tasks: %w", err)
	}
	return res.RowsAffected()
}

func (r *SQLTaskRepo) query(ctx context.Context, what, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(s scanner) (*domain.Task, error) {
	var (
		t                    domain.Task
		status, priority     string
		deadline, parentID   sql.NullString
		estimated            sql.NullInt64
		createdAt, updatedAt string
	)
	err := s.Scan(&t.ID, &t.Title, &status, &priority, &deadline, &parentID, &estimated,
		&t.AIExplanation, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Status = domain.TaskStatus(status)
	t.Priority = domain.Priority(priority)
	t.Deadline = parseNullableTime(deadline)
	if parentID.Valid {
		p := parentID.String
		t.ParentTaskID = &p
	}
	if estimated.Valid {
		m := int(estimated.Int64)
		t.EstimatedMinutes = &m
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}
