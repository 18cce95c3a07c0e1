package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/domain"
)

const goalColumns = `id, title, target_date, progress, created_at, updated_at`

// SQLGoalRepo implements GoalRepo over any DBTX.
type SQLGoalRepo struct {
	db db.DBTX
}

func NewSQLGoalRepo(conn db.DBTX) *SQLGoalRepo {
	return &SQLGoalRepo{db: conn}
}

func (r *SQLGoalRepo) Create(ctx context.Context, g *domain.Goal) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (`+goalColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.Title, nullableTimeToString(g.TargetDate), g.Progress,
		formatTime(g.CreatedAt), formatTime(g.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	return nil
}

func (r *SQLGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	return g, err
}

func (r *SQLGoalRepo) List(ctx context.Context) ([]*domain.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+goalColumns+` FROM goals ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	goals := []*domain.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}
	return goals, nil
}

func (r *SQLGoalRepo) Update(ctx context.Context, g *domain.Goal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE goals SET title = ?, target_date = ?, progress = ?, updated_at = ? WHERE id = ?`,
		g.Title, nullableTimeToString(g.TargetDate), g.Progress, formatTime(g.UpdatedAt), g.ID)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}
	return expectAffected(res, "goal "+g.ID)
}

func (r *SQLGoalRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}
	return expectAffected(res, "goal "+id)
}

func scanGoal(s scanner) (*domain.Goal, error) {
	var g domain.Goal
	var target sql.NullString
	var created, updated string
	if err := s.Scan(&g.ID, &g.Title, &target, &g.Progress, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning goal: %w", err)
	}
	g.TargetDate = parseNullableTime(target)

	var err error
	if g.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if g.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &g, nil
}
