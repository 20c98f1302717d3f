package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmergencyContactDTO contacto de emergencia.
type EmergencyContactDTO struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// CreateEmployeeRequest entrada para registrar un empleado.
type CreateEmployeeRequest struct {
	Name             string              `json:"name"`
	Email            string              `json:"email"`
	Phone            string              `json:"phone"`
	Position         string              `json:"position"`
	Department       string              `json:"department"`
	Salary           decimal.Decimal     `json:"salary"`
	HireDate         *time.Time          `json:"hire_date"`
	Status           string              `json:"status"`
	Address          string              `json:"address"`
	Document         string              `json:"document"`
	EmergencyContact EmergencyContactDTO `json:"emergency_contact"`
}

// UpdateEmployeeRequest entrada para actualizar un empleado (campos opcionales).
type UpdateEmployeeRequest struct {
	Name             *string              `json:"name"`
	Email            *string              `json:"email"`
	Phone            *string              `json:"phone"`
	Position         *string              `json:"position"`
	Department       *string              `json:"department"`
	Salary           *decimal.Decimal     `json:"salary"`
	HireDate         *time.Time           `json:"hire_date"`
	Status           *string              `json:"status"`
	Address          *string              `json:"address"`
	Document         *string              `json:"document"`
	EmergencyContact *EmergencyContactDTO `json:"emergency_contact"`
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Email            string              `json:"email"`
	Phone            string              `json:"phone"`
	Position         string              `json:"position"`
	Department       string              `json:"department"`
	Salary           decimal.Decimal     `json:"salary"`
	HireDate         time.Time           `json:"hire_date"`
	Status           string              `json:"status"`
	Address          string              `json:"address"`
	Document         string              `json:"document"`
	EmergencyContact EmergencyContactDTO `json:"emergency_contact"`
	YearsOfService   float64             `json:"years_of_service"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// DepartmentPayrollDTO nómina agregada de un departamento.
type DepartmentPayrollDTO struct {
	Department  string          `json:"department"`
	Count       int             `json:"count"`
	TotalSalary decimal.Decimal `json:"total_salary"`
	AvgSalary   decimal.Decimal `json:"avg_salary"`
}

// PayrollReportDTO respuesta de GET /api/hr/payroll.
type PayrollReportDTO struct {
	Departments      []DepartmentPayrollDTO `json:"departments"`
	TotalEmployees   int                    `json:"total_employees"`
	TotalPayroll     decimal.Decimal        `json:"total_payroll"`
	AvgSalaryCompany decimal.Decimal        `json:"avg_salary_company"`
}

// HireAnniversaryDTO empleado que cumple aniversario de contratación en el mes.
type HireAnniversaryDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Position       string    `json:"position"`
	Department     string    `json:"department"`
	HireDate       time.Time `json:"hire_date"`
	YearsOfService float64   `json:"years_of_service"`
}

// BirthdayReportDTO respuesta de GET /api/hr/birthdays.
type BirthdayReportDTO struct {
	Month             int                  `json:"month"`
	HireAnniversaries []HireAnniversaryDTO `json:"hire_anniversaries"`
}
