package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/daybook/internal/domain"
	"github.com/stretchr/testify/assert"
)

func ids(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestAdmissionRank(t *testing.T) {
	assert.Equal(t, 0, AdmissionRank(domain.PriorityUrgent))
	assert.Equal(t, 1, AdmissionRank(domain.PriorityImportant))
	assert.Equal(t, 1, AdmissionRank(domain.PriorityNormal))
	assert.Equal(t, 1, AdmissionRank(domain.PriorityLow))
	assert.Equal(t, 2, AdmissionRank("optional"))
}

func TestAdmissionSort(t *testing.T) {
	tasks := []domain.Task{
		newTask("opt", withPriority("optional")),
		newTask("low-nodl", withPriority(domain.PriorityLow)),
		newTask("normal-late", withDeadline(refNow.Add(48*time.Hour))),
		newTask("urgent-nodl", withPriority(domain.PriorityUrgent)),
		newTask("low-soon", withPriority(domain.PriorityLow), withDeadline(refNow.Add(2*time.Hour))),
		newTask("urgent-soon", withPriority(domain.PriorityUrgent), withDeadline(refNow.Add(time.Hour))),
		newTask("normal-nodl"),
	}

	sorted := AdmissionSort(tasks)

	assert.Equal(t, []string{
		"urgent-soon", "urgent-nodl",
		"low-soon", "normal-late", "low-nodl", "normal-nodl",
		"opt",
	}, ids(sorted))
	assert.Equal(t, "opt", tasks[0].ID, "input must not be reordered")
}

func TestAdmissionSort_Empty(t *testing.T) {
	assert.Empty(t, AdmissionSort(nil))
}
