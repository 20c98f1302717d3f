package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un evento. cancelled es alcanzable desde cualquier estado no terminal.
const (
	EventStatusPlanned    = "planned"
	EventStatusConfirmed  = "confirmed"
	EventStatusInProgress = "in_progress"
	EventStatusCompleted  = "completed"
	EventStatusCancelled  = "cancelled"
)

// Categorías de gasto de evento.
const (
	ExpenseCategoryTransport  = "transport"
	ExpenseCategoryEquipment  = "equipment"
	ExpenseCategoryDecoration = "decoration"
	ExpenseCategoryOther      = "other"
)

// LineItem producto consumido por el evento.
type LineItem struct {
	ProductID string
	Quantity  int // >= 1
	UnitCost  decimal.Decimal
}

// Subtotal quantity * unitCost.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitCost.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// StaffAssignment persona asignada al evento.
type StaffAssignment struct {
	EmployeeID string
	Role       string
	Payment    decimal.Decimal
}

// Expense gasto adicional del evento.
type Expense struct {
	Description string
	Amount      decimal.Decimal
	Category    string
}

// Event unidad de actividad de negocio: consume stock y genera ingresos/gastos.
// Los totales se calculan siempre a partir de las líneas; nunca se persisten.
type Event struct {
	ID          string
	CompanyID   string
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Location    string
	Status      string
	Items       []LineItem
	Staff       []StaffAssignment
	Expenses    []Expense
	Revenue     decimal.Decimal
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TotalItemsCost Σ quantity*unitCost.
func (e *Event) TotalItemsCost() decimal.Decimal {
	total := decimal.Zero
	for _, it := range e.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// TotalStaffCost Σ payment.
func (e *Event) TotalStaffCost() decimal.Decimal {
	total := decimal.Zero
	for _, s := range e.Staff {
		total = total.Add(s.Payment)
	}
	return total
}

// TotalExpenses Σ expense.amount.
func (e *Event) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, x := range e.Expenses {
		total = total.Add(x.Amount)
	}
	return total
}

// TotalCost ítems + equipo + gastos.
func (e *Event) TotalCost() decimal.Decimal {
	return e.TotalItemsCost().Add(e.TotalStaffCost()).Add(e.TotalExpenses())
}

// Profit revenue - totalCost.
func (e *Event) Profit() decimal.Decimal {
	return e.Revenue.Sub(e.TotalCost())
}

// ProfitMargin profit/revenue*100 con dos decimales; "0.00" si no hay ingreso.
func (e *Event) ProfitMargin() string {
	if e.Revenue.IsZero() {
		return "0.00"
	}
	return e.Profit().Div(e.Revenue).Mul(decimal.NewFromInt(100)).StringFixed(2)
}

// Overlaps informa si el evento se cruza con el intervalo [start, end].
func (e *Event) Overlaps(start, end time.Time) bool {
	return !e.StartDate.After(end) && !e.EndDate.Before(start)
}

// IsValidEventStatus informa si el estado es conocido.
func IsValidEventStatus(s string) bool {
	switch s {
	case EventStatusPlanned, EventStatusConfirmed, EventStatusInProgress, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// IsValidExpenseCategory informa si la categoría de gasto es conocida.
func IsValidExpenseCategory(c string) bool {
	switch c {
	case ExpenseCategoryTransport, ExpenseCategoryEquipment, ExpenseCategoryDecoration, ExpenseCategoryOther:
		return true
	}
	return false
}
