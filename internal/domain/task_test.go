package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestTask_EffectiveMinutes(t *testing.T) {
	cases := []struct {
		name string
		est  *int
		want int
	}{
		{"missing", nil, DefaultEstimatedMinutes},
		{"zero", intPtr(0), DefaultEstimatedMinutes},
		{"negative", intPtr(-5), DefaultEstimatedMinutes},
		{"set", intPtr(45), 45},
	}
	for _, tc := range cases {
		task := &Task{EstimatedMinutes: tc.est}
		assert.Equal(t, tc.want, task.EffectiveMinutes(), tc.name)
	}
}

func TestTask_IsSubtask(t *testing.T) {
	empty := ""
	parent := "p-1"
	assert.False(t, (&Task{}).IsSubtask())
	assert.False(t, (&Task{ParentTaskID: &empty}).IsSubtask())
	assert.True(t, (&Task{ParentTaskID: &parent}).IsSubtask())
}

func TestTask_SetStatus(t *testing.T) {
	task := &Task{Status: TaskPending}

	assert.NoError(t, task.SetStatus(TaskDone, refTime))
	assert.Equal(t, TaskDone, task.Status)
	assert.Equal(t, refTime, task.UpdatedAt)

	assert.Error(t, task.SetStatus("finished", refTime))
	assert.Equal(t, TaskDone, task.Status)
}

func TestTaskStatus_IsOpen(t *testing.T) {
	assert.True(t, TaskPending.IsOpen())
	assert.True(t, TaskInProgress.IsOpen())
	assert.False(t, TaskDone.IsOpen())
	assert.False(t, TaskBlocked.IsOpen())
}

func TestGoal_SetProgress(t *testing.T) {
	g := &Goal{}
	assert.NoError(t, g.SetProgress(40, refTime))
	assert.Equal(t, 40.0, g.Progress)
	assert.Error(t, g.SetProgress(101, refTime))
	assert.Error(t, g.SetProgress(-1, refTime))
	assert.Equal(t, 40.0, g.Progress)
}

func TestCoalesce(t *testing.T) {
	s := "x"
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Equal(t, "x", StrFromPtrWithDefault("d", nil, &s))
	assert.Equal(t, "d", StrFromPtrWithDefault("d"))
}
