package entity

import "time"

// Estados de Task.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

// Prioridades de Task.
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

// Categorías de Task.
const (
	TaskCategoryStock   = "stock"
	TaskCategoryFinance = "finance"
	TaskCategoryHR      = "hr"
	TaskCategoryGeneral = "general"
)

// Task tarea asignada a un usuario de la empresa.
type Task struct {
	ID          string
	CompanyID   string
	Title       string
	Description string
	Status      string
	Priority    string
	Category    string
	Tags        []string
	AssignedTo  string
	CreatedBy   string
	DueDate     *time.Time
	CompletedAt *time.Time // se fija una sola vez, al pasar a completed
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SetStatus aplica el nuevo estado. CompletedAt se fija solo en la primera transición a completed.
func (t *Task) SetStatus(status string, now time.Time) {
	if status == TaskStatusCompleted && t.Status != TaskStatusCompleted && t.CompletedAt == nil {
		ts := now
		t.CompletedAt = &ts
	}
	t.Status = status
}

// IsOverdue vencida y aún abierta.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status == TaskStatusCompleted || t.Status == TaskStatusCancelled {
		return false
	}
	return now.After(*t.DueDate)
}

// IsValidTaskStatus informa si el estado es conocido.
func IsValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// IsValidTaskPriority informa si la prioridad es conocida.
func IsValidTaskPriority(p string) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// IsValidTaskCategory informa si la categoría es conocida.
func IsValidTaskCategory(c string) bool {
	switch c {
	case TaskCategoryStock, TaskCategoryFinance, TaskCategoryHR, TaskCategoryGeneral:
		return true
	}
	return false
}
