package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest entrada para registrar una transacción.
type CreateTransactionRequest struct {
	Type          string          `json:"type" validate:"required,oneof=income expense"`
	Category      string          `json:"category" validate:"required"`
	Description   string          `json:"description" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Date          *time.Time      `json:"date"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	IsRecurring   bool            `json:"is_recurring"`
	RecurringDay  int             `json:"recurring_day"`
	Reference     string          `json:"reference"`
	Notes         string          `json:"notes"`
}

// UpdateTransactionRequest entrada para actualizar una transacción (campos opcionales).
type UpdateTransactionRequest struct {
	Type          *string          `json:"type"`
	Category      *string          `json:"category"`
	Description   *string          `json:"description"`
	Amount        *decimal.Decimal `json:"amount"`
	Date          *time.Time       `json:"date"`
	PaymentMethod *string          `json:"payment_method"`
	Status        *string          `json:"status"`
	IsRecurring   *bool            `json:"is_recurring"`
	RecurringDay  *int             `json:"recurring_day"`
	Notes         *string          `json:"notes"`
}

// TransactionListQuery filtros de GET /api/finance.
type TransactionListQuery struct {
	Type      string
	Category  string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionResponse salida de una transacción.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	IsRecurring   bool            `json:"is_recurring"`
	RecurringDay  int             `json:"recurring_day,omitempty"`
	NextDueDate   *time.Time      `json:"next_due_date,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BalanceDTO ingresos, gastos y saldo de las transacciones pagadas.
type BalanceDTO struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// ProjectionMonthDTO un mes de la proyección de flujo de caja.
type ProjectionMonthDTO struct {
	Month    string          `json:"month"` // YYYY-MM
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Balance  decimal.Decimal `json:"balance"`
}

// ProjectionDTO respuesta de GET /api/finance/projection.
type ProjectionDTO struct {
	CurrentBalance decimal.Decimal      `json:"current_balance"`
	Months         []ProjectionMonthDTO `json:"months"`
}

// CategoryBreakdownDTO total pagado por (tipo, categoría).
type CategoryBreakdownDTO struct {
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// PaymentMethodBreakdownDTO total pagado por medio de pago.
type PaymentMethodBreakdownDTO struct {
	PaymentMethod string          `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
	Count         int             `json:"count"`
}

// FinanceReportDTO respuesta de GET /api/finance/report.
type FinanceReportDTO struct {
	StartDate              time.Time                   `json:"start_date"`
	EndDate                time.Time                   `json:"end_date"`
	Balance                BalanceDTO                  `json:"balance"`
	CategoryBreakdown      []CategoryBreakdownDTO      `json:"category_breakdown"`
	PaymentMethodBreakdown []PaymentMethodBreakdownDTO `json:"payment_method_breakdown"`
}
