package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

// EmployeeUseCase casos de uso de RRHH: ficha de empleados, nómina y aniversarios.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// Create registra un empleado. Email y documento son únicos por empresa (domain.ErrDuplicate).
func (uc *EmployeeUseCase) Create(ctx context.Context, companyID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	now := time.Now()
	e := &entity.Employee{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:      in.Phone,
		Position:   strings.TrimSpace(in.Position),
		Department: in.Department,
		Salary:     in.Salary,
		Status:     in.Status,
		Address:    in.Address,
		Document:   strings.TrimSpace(in.Document),
		EmergencyContact: entity.EmergencyContact{
			Name:         in.EmergencyContact.Name,
			Phone:        in.EmergencyContact.Phone,
			Relationship: in.EmergencyContact.Relationship,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.HireDate != nil {
		e.HireDate = *in.HireDate
	} else {
		e.HireDate = now
	}
	if e.Status == "" {
		e.Status = entity.EmployeeStatusActive
	}
	if err := validateEmployee(e); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e, now), nil
}

// Update aplica el parche sobre un empleado de la empresa.
func (uc *EmployeeUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		e.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		e.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Phone != nil {
		e.Phone = *in.Phone
	}
	if in.Position != nil {
		e.Position = strings.TrimSpace(*in.Position)
	}
	if in.Department != nil {
		e.Department = *in.Department
	}
	if in.Salary != nil {
		e.Salary = *in.Salary
	}
	if in.HireDate != nil {
		e.HireDate = *in.HireDate
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
	if in.Address != nil {
		e.Address = *in.Address
	}
	if in.Document != nil {
		e.Document = strings.TrimSpace(*in.Document)
	}
	if in.EmergencyContact != nil {
		e.EmergencyContact = entity.EmergencyContact{
			Name:         in.EmergencyContact.Name,
			Phone:        in.EmergencyContact.Phone,
			Relationship: in.EmergencyContact.Relationship,
		}
	}
	if err := validateEmployee(e); err != nil {
		return nil, err
	}
	now := time.Now()
	e.UpdatedAt = now
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e, now), nil
}

// Deactivate marca al empleado como inactivo.
func (uc *EmployeeUseCase) Deactivate(ctx context.Context, companyID, id string) (*dto.EmployeeResponse, error) {
	status := entity.EmployeeStatusInactive
	return uc.Update(ctx, companyID, id, dto.UpdateEmployeeRequest{Status: &status})
}

// List empleados de la empresa con filtros por departamento, estado y texto (nombre, email, cargo).
func (uc *EmployeeUseCase) List(ctx context.Context, companyID string, filter repository.EmployeeFilter) ([]dto.EmployeeResponse, error) {
	if filter.Department != "" && !entity.IsValidEmployeeDepartment(filter.Department) {
		return nil, domain.Invalid("department", "departamento inválido")
	}
	if filter.Status != "" && !entity.IsValidEmployeeStatus(filter.Status) {
		return nil, domain.Invalid("status", "estado inválido")
	}
	list, err := uc.repo.List(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEmployeeResponse(e, now))
	}
	return out, nil
}

// Payroll nómina de los empleados activos agrupada por departamento, mayor total primero.
func (uc *EmployeeUseCase) Payroll(ctx context.Context, companyID string) (*dto.PayrollReportDTO, error) {
	list, err := uc.repo.List(ctx, companyID, repository.EmployeeFilter{Status: entity.EmployeeStatusActive})
	if err != nil {
		return nil, err
	}
	byDept := make(map[string]*dto.DepartmentPayrollDTO)
	total := decimal.Zero
	for _, e := range list {
		d, ok := byDept[e.Department]
		if !ok {
			d = &dto.DepartmentPayrollDTO{Department: e.Department, TotalSalary: decimal.Zero}
			byDept[e.Department] = d
		}
		d.Count++
		d.TotalSalary = d.TotalSalary.Add(e.Salary)
		total = total.Add(e.Salary)
	}

	report := &dto.PayrollReportDTO{
		Departments:      make([]dto.DepartmentPayrollDTO, 0, len(byDept)),
		TotalEmployees:   len(list),
		TotalPayroll:     total,
		AvgSalaryCompany: decimal.Zero,
	}
	for _, d := range byDept {
		d.AvgSalary = d.TotalSalary.Div(decimal.NewFromInt(int64(d.Count))).Round(2)
		report.Departments = append(report.Departments, *d)
	}
	sort.Slice(report.Departments, func(i, j int) bool {
		a, b := report.Departments[i], report.Departments[j]
		if !a.TotalSalary.Equal(b.TotalSalary) {
			return a.TotalSalary.GreaterThan(b.TotalSalary)
		}
		return a.Department < b.Department
	})
	if len(list) > 0 {
		report.AvgSalaryCompany = total.Div(decimal.NewFromInt(int64(len(list)))).Round(2)
	}
	return report, nil
}

// Birthdays empleados activos cuyo mes de contratación es el mes en curso.
func (uc *EmployeeUseCase) Birthdays(ctx context.Context, companyID string) (*dto.BirthdayReportDTO, error) {
	list, err := uc.repo.List(ctx, companyID, repository.EmployeeFilter{Status: entity.EmployeeStatusActive})
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := &dto.BirthdayReportDTO{
		Month:             int(now.Month()),
		HireAnniversaries: make([]dto.HireAnniversaryDTO, 0),
	}
	for _, e := range list {
		if e.HireDate.Month() != now.Month() {
			continue
		}
		out.HireAnniversaries = append(out.HireAnniversaries, dto.HireAnniversaryDTO{
			ID:             e.ID,
			Name:           e.Name,
			Position:       e.Position,
			Department:     e.Department,
			HireDate:       e.HireDate,
			YearsOfService: e.YearsOfService(now),
		})
	}
	return out, nil
}

func validateEmployee(e *entity.Employee) error {
	if e.Name == "" {
		return domain.Invalid("name", "es requerido")
	}
	if e.Email == "" || !strings.Contains(e.Email, "@") {
		return domain.Invalid("email", "email inválido")
	}
	if e.Position == "" {
		return domain.Invalid("position", "es requerido")
	}
	if !entity.IsValidEmployeeDepartment(e.Department) {
		return domain.Invalid("department", "departamento inválido")
	}
	if e.Salary.IsNegative() {
		return domain.Invalid("salary", "no puede ser negativo")
	}
	if !entity.IsValidEmployeeStatus(e.Status) {
		return domain.Invalid("status", "estado inválido")
	}
	if e.Document == "" {
		return domain.Invalid("document", "es requerido")
	}
	return nil
}

func toEmployeeResponse(e *entity.Employee, now time.Time) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Position:   e.Position,
		Department: e.Department,
		Salary:     e.Salary,
		HireDate:   e.HireDate,
		Status:     e.Status,
		Address:    e.Address,
		Document:   e.Document,
		EmergencyContact: dto.EmergencyContactDTO{
			Name:         e.EmergencyContact.Name,
			Phone:        e.EmergencyContact.Phone,
			Relationship: e.EmergencyContact.Relationship,
		},
		YearsOfService: e.YearsOfService(now),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}
