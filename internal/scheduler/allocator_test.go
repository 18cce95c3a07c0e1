package scheduler

import (
	"testing"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateTasks_StrictFIFO(t *testing.T) {
	a := newTask("A", withMinutes(60))
	b := newTask("B", withMinutes(30))

	alloc := AllocateTasks([]domain.Task{a, b}, []domain.TimeInterval{span(at(9, 0), at(9, 45))})

	assert.Empty(t, alloc.Plan, "B must not jump ahead of A")
	require.Len(t, alloc.Unscheduled, 2)
	assert.Equal(t, "A", alloc.Unscheduled[0].ID)
	assert.Equal(t, "B", alloc.Unscheduled[1].ID)
}

func TestAllocateTasks_MovesToNextSlot(t *testing.T) {
	a := newTask("A", withMinutes(60))
	b := newTask("B", withMinutes(30))
	free := []domain.TimeInterval{
		span(at(8, 0), at(8, 45)),
		span(at(10, 0), at(12, 0)),
	}

	alloc := AllocateTasks([]domain.Task{a, b}, free)

	require.Len(t, alloc.Plan, 2)
	assert.Equal(t, at(10, 0), alloc.Plan[0].Start)
	assert.Equal(t, at(11, 0), alloc.Plan[0].End)
	assert.Equal(t, at(11, 0), alloc.Plan[1].Start)
	assert.Equal(t, at(11, 30), alloc.Plan[1].End)
	assert.Empty(t, alloc.Unscheduled)
	assert.NotNil(t, alloc.Unscheduled)
}

func TestAllocateTasks_DefaultEstimate(t *testing.T) {
	alloc := AllocateTasks(
		[]domain.Task{newTask("none"), newTask("zero", withMinutes(0))},
		[]domain.TimeInterval{span(at(9, 0), at(10, 0))},
	)

	require.Len(t, alloc.Plan, 2)
	assert.Equal(t, at(9, 30), alloc.Plan[0].End)
	assert.Equal(t, at(10, 0), alloc.Plan[1].End)
}

func TestAllocateTasks_ExactFit(t *testing.T) {
	alloc := AllocateTasks(
		[]domain.Task{newTask("x", withMinutes(45))},
		[]domain.TimeInterval{span(at(9, 0), at(9, 45))},
	)
	require.Len(t, alloc.Plan, 1)
	assert.Equal(t, "Task x", alloc.Plan[0].Title)
}

func TestAllocateTasks_NoSlots(t *testing.T) {
	alloc := AllocateTasks([]domain.Task{newTask("x")}, nil)
	assert.Empty(t, alloc.Plan)
	assert.NotNil(t, alloc.Plan)
	assert.Len(t, alloc.Unscheduled, 1)
}
