package repository

import (
	"context"

	"github.com/jhoicas/eventos-erp/internal/domain/entity"
)

// TaskFilter criterios de listado de tareas.
type TaskFilter struct {
	Status     string
	Priority   string
	AssignedTo string
}

// TaskRepository define el puerto de persistencia para Task (DIP).
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, companyID string, filter TaskFilter) ([]*entity.Task, error)
}
