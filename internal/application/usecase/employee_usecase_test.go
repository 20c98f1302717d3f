package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/usecase"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
	"github.com/jhoicas/eventos-erp/internal/infrastructure/memory"
)

func newEmployeeUseCase() *usecase.EmployeeUseCase {
	return usecase.NewEmployeeUseCase(memory.NewEmployeeRepository(memory.NewStore()))
}

func employeeInput(name, email, doc, dept string, salary int64) dto.CreateEmployeeRequest {
	return dto.CreateEmployeeRequest{
		Name: name, Email: email, Document: doc, Position: "Asistente",
		Department: dept, Salary: decimal.NewFromInt(salary),
	}
}

func TestEmployeeCreate_UnicidadPorEmpresa(t *testing.T) {
	uc := newEmployeeUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, companyID, employeeInput("Ana", "Ana@Mail.com", "123", entity.DepartmentSales, 1000))
	require.NoError(t, err)

	_, err = uc.Create(ctx, companyID, employeeInput("Otra", "ana@mail.com", "999", entity.DepartmentSales, 1000))
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el email se compara en minúsculas")

	_, err = uc.Create(ctx, companyID, employeeInput("Otra", "otra@mail.com", "123", entity.DepartmentSales, 1000))
	assert.ErrorIs(t, err, domain.ErrDuplicate, "documento repetido")

	_, err = uc.Create(ctx, "otra-empresa", employeeInput("Ana", "ana@mail.com", "123", entity.DepartmentSales, 1000))
	assert.NoError(t, err)
}

func TestEmployeeCreate_DepartamentoInvalido(t *testing.T) {
	_, err := newEmployeeUseCase().Create(context.Background(), companyID,
		employeeInput("Ana", "ana@mail.com", "1", entity.DepartmentGeneral, 1000))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "general no es un departamento de RRHH")
}

func TestEmployeePayroll_SoloActivos(t *testing.T) {
	uc := newEmployeeUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, companyID, employeeInput("A", "a@x.com", "1", entity.DepartmentSales, 1000))
	require.NoError(t, err)
	_, err = uc.Create(ctx, companyID, employeeInput("B", "b@x.com", "2", entity.DepartmentSales, 2000))
	require.NoError(t, err)
	_, err = uc.Create(ctx, companyID, employeeInput("C", "c@x.com", "3", entity.DepartmentIT, 5000))
	require.NoError(t, err)
	gone, err := uc.Create(ctx, companyID, employeeInput("D", "d@x.com", "4", entity.DepartmentIT, 9000))
	require.NoError(t, err)
	_, err = uc.Deactivate(ctx, companyID, gone.ID)
	require.NoError(t, err)

	r, err := uc.Payroll(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 3, r.TotalEmployees)
	assert.Equal(t, "8000", r.TotalPayroll.String())
	assert.Equal(t, "2666.67", r.AvgSalaryCompany.String())
	require.Len(t, r.Departments, 2)
	assert.Equal(t, entity.DepartmentIT, r.Departments[0].Department, "mayor total primero")
	assert.Equal(t, "1500", r.Departments[1].AvgSalary.String())
}

func TestEmployeeBirthdays_MesDeContratacion(t *testing.T) {
	uc := newEmployeeUseCase()
	ctx := context.Background()
	now := time.Now()
	hired := now.AddDate(-3, 0, 0)
	other := now.AddDate(-1, -2, 0)

	in := employeeInput("Aniversario", "a@x.com", "1", entity.DepartmentHR, 100)
	in.HireDate = &hired
	_, err := uc.Create(ctx, companyID, in)
	require.NoError(t, err)
	in = employeeInput("Otro mes", "b@x.com", "2", entity.DepartmentHR, 100)
	in.HireDate = &other
	_, err = uc.Create(ctx, companyID, in)
	require.NoError(t, err)

	r, err := uc.Birthdays(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, int(now.Month()), r.Month)
	require.Len(t, r.HireAnniversaries, 1)
	assert.Equal(t, "Aniversario", r.HireAnniversaries[0].Name)
	assert.InDelta(t, 3.0, r.HireAnniversaries[0].YearsOfService, 0.15)
}

func TestEmployeeList_Filtros(t *testing.T) {
	uc := newEmployeeUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, companyID, employeeInput("José Pérez", "jose@x.com", "1", entity.DepartmentHR, 100))
	require.NoError(t, err)

	list, err := uc.List(ctx, companyID, repository.EmployeeFilter{Search: "perez"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.List(ctx, companyID, repository.EmployeeFilter{Status: "despedido"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
