package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/db"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	settings Settings
	notifier Notifier
	observer UseCaseObserver
}

func NewTaskService(
	tasks repository.TaskRepo,
	uow db.UnitOfWork,
	settings Settings,
	notifier Notifier,
	observers ...UseCaseObserver,
) TaskService {
	return &taskService{
		tasks:    tasks,
		uow:      uow,
		settings: settings,
		notifier: notifier,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) Add(ctx context.Context, req contract.AddTaskRequest) (task *domain.Task, err error) {
	done := track(ctx, s.observer, "add-task", map[string]any{"subtask": req.ParentTaskID != nil})
	defer func() { done(err) }()

	task, err = s.newTask(req)
	if err != nil {
		return nil, err
	}
	if task.ParentTaskID != nil {
		if _, err = s.tasks.GetByID(ctx, *task.ParentTaskID); err != nil {
			return nil, fmt.Errorf("parent task: %w", err)
		}
	}
	if err = s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	s.notify(ctx, "Task added: "+task.Title)
	return task, nil
}

// newTask validates req and builds an unsaved task. Top-level tasks default
// to important, subtasks to normal.
func (s *taskService) newTask(req contract.AddTaskRequest) (*domain.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: task title is required", ErrValidation)
	}
	if req.EstimatedMinutes != nil && *req.EstimatedMinutes < 0 {
		return nil, fmt.Errorf("%w: estimated_minutes must not be negative", ErrValidation)
	}

	now := s.settings.now()
	task := &domain.Task{
		ID:               uuid.New().String(),
		Title:            title,
		Status:           domain.TaskPending,
		Priority:         domain.PriorityImportant,
		Deadline:         req.Deadline,
		EstimatedMinutes: req.EstimatedMinutes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if req.ParentTaskID != nil && *req.ParentTaskID != "" {
		parent := *req.ParentTaskID
		task.ParentTaskID = &parent
		task.Priority = domain.PriorityNormal
	}
	if req.Priority != nil {
		p, err := normalizePriority(*req.Priority)
		if err != nil {
			return nil, err
		}
		task.Priority = p
	}
	return task, nil
}

// normalizePriority lowercases p. Values outside the four known priorities
// are kept; the planner treats "optional" as the lowest admission tier.
func normalizePriority(p domain.Priority) (domain.Priority, error) {
	v := domain.Priority(strings.ToLower(strings.TrimSpace(string(p))))
	if v == "" {
		return "", fmt.Errorf("%w: priority must not be empty", ErrValidation)
	}
	return v, nil
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) Update(ctx context.Context, req contract.UpdateTaskRequest) (task *domain.Task, err error) {
	done := track(ctx, s.observer, "update-task", map[string]any{"task_id": req.TaskID})
	defer func() { done(err) }()

	if req.Title == nil && req.Deadline == nil && req.Priority == nil &&
		req.EstimatedMinutes == nil && req.AIExplanation == nil {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLTaskRepo(tx)
		t, err := repo.GetByID(ctx, req.TaskID)
		if err != nil {
			return err
		}
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return fmt.Errorf("%w: task title is required", ErrValidation)
			}
			t.Title = title
		}
		if req.Deadline != nil {
			d := *req.Deadline
			t.Deadline = &d
		}
		if req.Priority != nil {
			p, err := normalizePriority(*req.Priority)
			if err != nil {
				return err
			}
			t.Priority = p
		}
		if req.EstimatedMinutes != nil {
			if *req.EstimatedMinutes < 0 {
				return fmt.Errorf("%w: estimated_minutes must not be negative", ErrValidation)
			}
			m := *req.EstimatedMinutes
			t.EstimatedMinutes = &m
		}
		if req.AIExplanation != nil {
			t.AIExplanation = *req.AIExplanation
		}
		t.UpdatedAt = s.settings.now()
		task = t
		return repo.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (task *domain.Task, err error) {
	done := track(ctx, s.observer, "update-task-status", map[string]any{"task_id": id, "status": string(status)})
	defer func() { done(err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLTaskRepo(tx)
		t, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := t.SetStatus(status, s.settings.now()); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		task = t
		return repo.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

func (s *taskService) DeleteAll(ctx context.Context) (int64, error) {
	return s.tasks.DeleteAll(ctx)
}

func (s *taskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.tasks.List(ctx)
}

func (s *taskService) ListOpen(ctx context.Context) ([]*domain.Task, error) {
	return s.tasks.ListOpen(ctx)
}

func (s *taskService) ListDone(ctx context.Context) ([]*domain.Task, error) {
	return s.tasks.ListByStatus(ctx, domain.TaskDone)
}

func (s *taskService) GenerateSubtasks(ctx context.Context, parentTitle string, count int) (res *contract.SubtaskResult, err error) {
	if count <= 0 {
		count = defaultSubtaskCount
	}
	fields := map[string]any{"count": count}
	done := track(ctx, s.observer, "generate-subtasks", fields)
	defer func() { done(err) }()

	parent, err := s.newTask(contract.AddTaskRequest{Title: parentTitle})
	if err != nil {
		return nil, err
	}

	res = &contract.SubtaskResult{Parent: parent}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLTaskRepo(tx)
		if err := repo.Create(ctx, parent); err != nil {
			return err
		}
		for i, title := range breakdownTitles(parent.Title, count) {
			child, err := s.newTask(contract.AddTaskRequest{Title: title, ParentTaskID: &parent.ID})
			if err != nil {
				return err
			}
			// Keep generation order stable under ORDER BY created_at.
			child.CreatedAt = parent.CreatedAt.Add(time.Duration(i+1) * time.Microsecond)
			child.UpdatedAt = child.CreatedAt
			if err := repo.Create(ctx, child); err != nil {
				return err
			}
			res.Subtasks = append(res.Subtasks, child)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["parent_id"] = parent.ID
	return res, nil
}

func (s *taskService) notify(ctx context.Context, text string) {
	deliver(ctx, s.notifier, s.observer, text)
}
