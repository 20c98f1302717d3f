package repository

import (
	"context"

	"github.com/jhoicas/eventos-erp/internal/domain/entity"
)

// EmployeeFilter criterios de listado de empleados.
type EmployeeFilter struct {
	Department string
	Status     string
	Search     string
}

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	List(ctx context.Context, companyID string, filter EmployeeFilter) ([]*entity.Employee, error)
}
