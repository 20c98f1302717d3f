package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/eventos-erp/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Permisos por módulo
// ──────────────────────────────────────────────────────────────────────────────

func TestDefaultPermissions_PorDepartamento(t *testing.T) {
	p := entity.DefaultPermissions(entity.RoleEmployee, entity.DepartmentSales)
	assert.True(t, p.Tasks)
	assert.True(t, p.Finance, "ventas accede a finanzas")
	assert.False(t, p.Stock)
	assert.False(t, p.HR)

	p = entity.DefaultPermissions(entity.RoleManager, entity.DepartmentStock)
	assert.True(t, p.Stock)
	assert.False(t, p.Finance)

	p = entity.DefaultPermissions(entity.RoleAdmin, entity.DepartmentGeneral)
	assert.Equal(t, entity.Permissions{Tasks: true, Stock: true, Finance: true, HR: true}, p)
}

func TestUser_CanAccess(t *testing.T) {
	u := &entity.User{Role: entity.RoleEmployee, Status: entity.UserStatusActive, Permissions: entity.Permissions{Tasks: true}}
	assert.True(t, u.CanAccess(entity.ModuleTasks))
	assert.False(t, u.CanAccess(entity.ModuleHR))

	owner := &entity.User{Role: entity.RoleOwner, Status: entity.UserStatusActive}
	assert.True(t, owner.CanAccess(entity.ModuleFinance), "owner omite las banderas")

	owner.Status = entity.UserStatusInactive
	assert.False(t, owner.CanAccess(entity.ModuleFinance), "una cuenta inactiva nunca accede")
}

func TestIsManagerOrAbove(t *testing.T) {
	assert.True(t, entity.IsManagerOrAbove(entity.RoleOwner))
	assert.True(t, entity.IsManagerOrAbove(entity.RoleManager))
	assert.False(t, entity.IsManagerOrAbove(entity.RoleEmployee))
	assert.False(t, entity.IsManagerOrAbove(""))
}

// ──────────────────────────────────────────────────────────────────────────────
// Producto
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_Derivados(t *testing.T) {
	p := &entity.Product{Cost: decimal.NewFromInt(80), Price: decimal.NewFromInt(100), Quantity: 5, MinStock: 5}
	assert.Equal(t, "25", p.ProfitMargin().String())
	assert.Equal(t, "400", p.StockValue().String())
	assert.True(t, p.IsLowStock(), "quantity == minStock cuenta como stock bajo")

	free := &entity.Product{Price: decimal.NewFromInt(10)}
	assert.True(t, free.ProfitMargin().IsZero(), "costo 0 → margen 0")
}

// ──────────────────────────────────────────────────────────────────────────────
// Evento
// ──────────────────────────────────────────────────────────────────────────────

func TestEvent_Overlaps(t *testing.T) {
	start := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	ev := &entity.Event{StartDate: start, EndDate: start.Add(48 * time.Hour)}

	assert.True(t, ev.Overlaps(start.Add(24*time.Hour), start.Add(24*time.Hour)))
	assert.True(t, ev.Overlaps(start.Add(-24*time.Hour), start), "los extremos se tocan")
	assert.False(t, ev.Overlaps(start.Add(72*time.Hour), start.Add(96*time.Hour)))
}

func TestEvent_ProfitMarginSinIngreso(t *testing.T) {
	ev := &entity.Event{Expenses: []entity.Expense{{Amount: decimal.NewFromInt(10)}}}
	assert.Equal(t, "0.00", ev.ProfitMargin())
	assert.Equal(t, "-10", ev.Profit().String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Transacción recurrente
// ──────────────────────────────────────────────────────────────────────────────

func TestTransaction_NextDueDate(t *testing.T) {
	tx := &entity.Transaction{IsRecurring: true, RecurringDay: 15, Status: entity.TransactionStatusPaid}

	from := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	due, ok := tx.NextDueDate(from)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), due)

	from = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	due, _ = tx.NextDueDate(from)
	assert.Equal(t, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), due, "estrictamente después de from")

	tx.RecurringDay = 31
	from = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	due, _ = tx.NextDueDate(from)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), due, "meses cortos usan el último día")

	tx.Status = entity.TransactionStatusCancelled
	_, ok = tx.NextDueDate(from)
	assert.False(t, ok)
}
