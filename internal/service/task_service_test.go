package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/daybook/internal/contract"
	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/alexanderramin/daybook/internal/repository"
	"github.com/alexanderramin/daybook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_AddDefaults(t *testing.T) {
	h := newHarness(t)
	svc := h.taskService()
	ctx := context.Background()

	parent, err := svc.Add(ctx, contract.AddTaskRequest{Title: "  Write report  "})
	require.NoError(t, err)
	assert.Equal(t, "Write report", parent.Title)
	assert.Equal(t, domain.TaskPending, parent.Status)
	assert.Equal(t, domain.PriorityImportant, parent.Priority)
	assert.Equal(t, testutil.FixedNow, parent.CreatedAt)

	child, err := svc.Add(ctx, contract.AddTaskRequest{Title: "Outline", ParentTaskID: &parent.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityNormal, child.Priority)
	assert.True(t, child.IsSubtask())

	assert.Equal(t, []string{"Task added: Write report", "Task added: Outline"}, h.notifier.sent())
}

func TestTaskService_AddNormalizesPriority(t *testing.T) {
	h := newHarness(t)
	p := domain.Priority(" Optional ")

	task, err := h.taskService().Add(context.Background(), contract.AddTaskRequest{Title: "Read", Priority: &p})
	require.NoError(t, err)
	assert.Equal(t, domain.Priority("optional"), task.Priority)
}

func TestTaskService_AddValidation(t *testing.T) {
	h := newHarness(t)
	svc := h.taskService()
	ctx := context.Background()

	_, err := svc.Add(ctx, contract.AddTaskRequest{Title: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Add(ctx, contract.AddTaskRequest{Title: "x", EstimatedMinutes: intPtr(-5)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Add(ctx, contract.AddTaskRequest{Title: "x", ParentTaskID: strPtr("missing")})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.Empty(t, h.notifier.sent())
}

func TestTaskService_NotifierFailureDoesNotFailAdd(t *testing.T) {
	h := newHarness(t)
	h.notifier.err = errDeliveryDown

	task, err := h.taskService().Add(context.Background(), contract.AddTaskRequest{Title: "Call bank"})
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)

	require.Len(t, h.observer.events, 2)
	assert.Equal(t, "notify", h.observer.events[0].Name)
	assert.False(t, h.observer.events[0].Success)
	assert.ErrorIs(t, h.observer.events[0].Err, errDeliveryDown)
	assert.Equal(t, "add-task", h.observer.events[1].Name)
	assert.True(t, h.observer.events[1].Success)
}

func TestTaskService_UpdateStatus(t *testing.T) {
	h := newHarness(t)
	svc := h.taskService()
	ctx := context.Background()

	task, err := svc.Add(ctx, contract.AddTaskRequest{Title: "Ship"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, task.ID, "finished")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, task.ID, domain.TaskDone)
	require.NoError(t, err)

	done, err := svc.ListDone(ctx)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, task.ID, done[0].ID)

	open, err := svc.ListOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)

	_, err = svc.UpdateStatus(ctx, "missing", domain.TaskDone)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskService_Update(t *testing.T) {
	h := newHarness(t)
	svc := h.taskService()
	ctx := context.Background()

	task, err := svc.Add(ctx, contract.AddTaskRequest{Title: "Draft"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, contract.UpdateTaskRequest{TaskID: task.ID})
	assert.ErrorIs(t, err, ErrValidation)

	deadline := testutil.At(17, 0)
	low := domain.PriorityLow
	updated, err := svc.Update(ctx, contract.UpdateTaskRequest{
		TaskID:           task.ID,
		Title:            strPtr("Final draft"),
		Deadline:         &deadline,
		Priority:         &low,
		EstimatedMinutes: intPtr(45),
	})
	require.NoError(t, err)
	assert.Equal(t, "Final draft", updated.Title)

	got, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final draft", got.Title)
	assert.Equal(t, domain.PriorityLow, got.Priority)
	require.NotNil(t, got.Deadline)
	assert.True(t, deadline.Equal(*got.Deadline))
	assert.Equal(t, 45, got.EffectiveMinutes())
}

func TestTaskService_DeleteAndDeleteAll(t *testing.T) {
	h := newHarness(t)
	svc := h.taskService()
	ctx := context.Background()

	a, err := svc.Add(ctx, contract.AddTaskRequest{Title: "A"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, contract.AddTaskRequest{Title: "B"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), repository.ErrNotFound)

	n, err := svc.DeleteAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestTaskService_GenerateSubtasks(t *testing.T) {
	h := newHarness(t)
	svc := h.taskService()
	ctx := context.Background()

	res, err := svc.GenerateSubtasks(ctx, "Plan trip", 0)
	require.NoError(t, err)
	assert.Equal(t, "Plan trip", res.Parent.Title)
	require.Len(t, res.Subtasks, 3)

	children, err := h.tasks.ListChildren(ctx, res.Parent.ID)
	require.NoError(t, err)
	var titles []string
	for _, c := range children {
		titles = append(titles, c.Title)
		assert.Equal(t, domain.PriorityNormal, c.Priority)
	}
	assert.Equal(t, []string{"Plan trip - step 1", "Plan trip - step 2", "Plan trip - step 3"}, titles)

	_, err = svc.GenerateSubtasks(ctx, "", 2)
	assert.ErrorIs(t, err, ErrValidation)
}
