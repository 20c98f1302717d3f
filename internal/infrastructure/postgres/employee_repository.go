package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

const employeeColumns = `id, company_id, name, email, phone, position, department, salary, hire_date, status,
	address, document, emergency_contact, created_at, updated_at`

func scanEmployee(s rowScanner) (*entity.Employee, error) {
	var e entity.Employee
	var contact []byte
	if err := s.Scan(&e.ID, &e.CompanyID, &e.Name, &e.Email, &e.Phone, &e.Position, &e.Department,
		&e.Salary, &e.HireDate, &e.Status, &e.Address, &e.Document, &contact, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	c, err := decodeEmergencyContact(contact)
	if err != nil {
		return nil, err
	}
	e.EmergencyContact = c
	return &e, nil
}

// Create persiste un empleado. Email o documento repetido en la empresa → domain.ErrDuplicate.
func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	contact, err := encodeEmergencyContact(e.EmergencyContact)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		e.ID, e.CompanyID, e.Name, e.Email, e.Phone, e.Position, e.Department, e.Salary, e.HireDate,
		e.Status, e.Address, e.Document, contact, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado de la empresa.
func (r *EmployeeRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Employee, error) {
	if !validID(id) {
		return nil, nil
	}
	e, err := scanEmployee(r.q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// Update reemplaza los datos del empleado.
func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	contact, err := encodeEmergencyContact(e.EmergencyContact)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE employees SET name = $3, email = $4, phone = $5, position = $6, department = $7, salary = $8,
			hire_date = $9, status = $10, address = $11, document = $12, emergency_contact = $13, updated_at = $14
		WHERE company_id = $1 AND id = $2`,
		e.CompanyID, e.ID, e.Name, e.Email, e.Phone, e.Position, e.Department, e.Salary, e.HireDate,
		e.Status, e.Address, e.Document, contact, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update employee: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List empleados con filtros, ordenados por nombre.
func (r *EmployeeRepo) List(ctx context.Context, companyID string, f repository.EmployeeFilter) ([]*entity.Employee, error) {
	w := newWhere(companyID)
	if f.Department != "" {
		w.add("department = ?", f.Department)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.Search != "" {
		pat := likePattern(f.Search)
		w.add("(name ILIKE ? OR email ILIKE ? OR position ILIKE ?)", pat, pat, pat)
	}
	rows, err := r.q.Query(ctx, `SELECT `+employeeColumns+` FROM employees`+w.sql()+` ORDER BY name, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
