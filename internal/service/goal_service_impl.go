package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/repository"
	"github.com/google/uuid"
)

type goalService struct {
	goals    repository.GoalRepo
	uow      db.UnitOfWork
	settings Settings
}

func NewGoalService(goals repository.GoalRepo, uow db.UnitOfWork, settings Settings) GoalService {
	return &goalService{goals: goals, uow: uow, settings: settings}
}

func (s *goalService) Add(ctx context.Context, req contract.AddGoalRequest) (*domain.Goal, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: goal title is required", ErrValidation)
	}
	now := s.settings.now()
	g := &domain.Goal{
		ID:         uuid.New().String(),
		Title:      title,
		TargetDate: req.TargetDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.goals.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *goalService) Update(ctx context.Context, req contract.UpdateGoalRequest) (*domain.Goal, error) {
	if req.Title == nil && req.TargetDate == nil {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}
	return s.mutate(ctx, req.GoalID, func(g *domain.Goal) error {
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return fmt.Errorf("%w: goal title is required", ErrValidation)
			}
			g.Title = title
		}
		if req.TargetDate != nil {
			d := *req.TargetDate
			g.TargetDate = &d
		}
		g.UpdatedAt = s.settings.now()
		return nil
	})
}

func (s *goalService) UpdateProgress(ctx context.Context, id string, progress float64) (*domain.Goal, error) {
	return s.mutate(ctx, id, func(g *domain.Goal) error {
		if err := g.SetProgress(progress, s.settings.now()); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil
	})
}

func (s *goalService) mutate(ctx context.Context, id string, fn func(*domain.Goal) error) (*domain.Goal, error) {
	var out *domain.Goal
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLGoalRepo(tx)
		g, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(g); err != nil {
			return err
		}
		out = g
		return repo.Update(ctx, g)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *goalService) Delete(ctx context.Context, id string) error {
	return s.goals.Delete(ctx, id)
}

func (s *goalService) List(ctx context.Context) ([]*domain.Goal, error) {
	return s.goals.List(ctx)
}
