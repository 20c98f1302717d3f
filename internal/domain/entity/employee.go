package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Employee.
const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
	EmployeeStatusVacation = "vacation"
	EmployeeStatusLeave    = "leave"
)

// EmergencyContact contacto de emergencia del empleado.
type EmergencyContact struct {
	Name         string
	Phone        string
	Relationship string
}

// Employee registro de RRHH (independiente de la cuenta de usuario).
type Employee struct {
	ID               string
	CompanyID        string
	Name             string
	Email            string // único por empresa, en minúsculas
	Phone            string
	Position         string
	Department       string
	Salary           decimal.Decimal
	HireDate         time.Time
	Status           string
	Address          string
	Document         string // documento de identidad, único por empresa
	EmergencyContact EmergencyContact
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// YearsOfService años desde la contratación, truncado a un decimal.
func (e *Employee) YearsOfService(now time.Time) float64 {
	if e.HireDate.IsZero() || now.Before(e.HireDate) {
		return 0
	}
	years := now.Sub(e.HireDate).Hours() / (24 * 365.25)
	return math.Floor(years*10) / 10
}

// IsValidEmployeeDepartment departamentos de RRHH (subconjunto de los de usuario).
func IsValidEmployeeDepartment(d string) bool {
	switch d {
	case DepartmentFinance, DepartmentStock, DepartmentSales, DepartmentMarketing, DepartmentHR, DepartmentIT:
		return true
	}
	return false
}

// IsValidEmployeeStatus informa si el estado es conocido.
func IsValidEmployeeStatus(s string) bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusInactive, EmployeeStatusVacation, EmployeeStatusLeave:
		return true
	}
	return false
}
