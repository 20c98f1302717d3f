package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
	"github.com/jhoicas/eventos-erp/pkg/textnorm"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo empleados en memoria. Email y documento son únicos por empresa.
type EmployeeRepo struct{ view }

// NewEmployeeRepository construye el repo sobre el almacén.
func NewEmployeeRepository(s *Store) *EmployeeRepo { return &EmployeeRepo{view{s: s}} }

func (r *EmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	defer r.write()()
	if r.duplicated(e) {
		return domain.ErrDuplicate
	}
	r.s.employees[e.ID] = *e
	return nil
}

func (r *EmployeeRepo) GetByID(_ context.Context, companyID, id string) (*entity.Employee, error) {
	defer r.read()()
	e, ok := r.s.employees[id]
	if !ok || e.CompanyID != companyID {
		return nil, nil
	}
	return &e, nil
}

func (r *EmployeeRepo) Update(_ context.Context, e *entity.Employee) error {
	defer r.write()()
	cur, ok := r.s.employees[e.ID]
	if !ok || cur.CompanyID != e.CompanyID {
		return domain.ErrNotFound
	}
	if r.duplicated(e) {
		return domain.ErrDuplicate
	}
	r.s.employees[e.ID] = *e
	return nil
}

func (r *EmployeeRepo) List(_ context.Context, companyID string, f repository.EmployeeFilter) ([]*entity.Employee, error) {
	defer r.read()()
	out := make([]*entity.Employee, 0)
	for _, e := range r.s.employees {
		if e.CompanyID != companyID {
			continue
		}
		if (f.Department != "" && e.Department != f.Department) || (f.Status != "" && e.Status != f.Status) {
			continue
		}
		if f.Search != "" && !textnorm.Contains(e.Name, f.Search) && !textnorm.Contains(e.Email, f.Search) &&
			!textnorm.Contains(e.Position, f.Search) {
			continue
		}
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *EmployeeRepo) duplicated(e *entity.Employee) bool {
	for id, x := range r.s.employees {
		if id == e.ID || x.CompanyID != e.CompanyID {
			continue
		}
		if x.Email == e.Email || x.Document == e.Document {
			return true
		}
	}
	return false
}
