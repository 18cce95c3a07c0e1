package domain

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
	TaskBlocked    TaskStatus = "blocked"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[TaskStatus]bool{
	TaskPending: true, TaskInProgress: true, TaskDone: true, TaskBlocked: true,
}

// IsOpen reports whether the status counts as open work for planning.
func (s TaskStatus) IsOpen() bool {
	return s == TaskPending || s == TaskInProgress
}

type Priority string

const (
	PriorityUrgent    Priority = "urgent"
	PriorityImportant Priority = "important"
	PriorityNormal    Priority = "normal"
	PriorityLow       Priority = "low"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[Priority]bool{
	PriorityUrgent: true, PriorityImportant: true, PriorityNormal: true, PriorityLow: true,
}

type MemoryRole string

const (
	RoleUser      MemoryRole = "user"
	RoleAssistant MemoryRole = "assistant"
	RoleSystem    MemoryRole = "system"
	RoleAction    MemoryRole = "action"
)
