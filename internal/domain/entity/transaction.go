package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción.
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// Categorías de transacción.
const (
	TransactionCategorySales       = "sales"
	TransactionCategoryPurchases   = "purchases"
	TransactionCategorySalaries    = "salaries"
	TransactionCategoryRent        = "rent"
	TransactionCategoryMarketing   = "marketing"
	TransactionCategoryMaintenance = "maintenance"
	TransactionCategoryOther       = "other"
)

// Medios de pago.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodPix      = "pix"
	PaymentMethodTransfer = "transfer"
	PaymentMethodBankSlip = "bank_slip"
)

// Estados de transacción. Solo las pagadas cuentan en balances y reportes.
const (
	TransactionStatusPending   = "pending"
	TransactionStatusPaid      = "paid"
	TransactionStatusCancelled = "cancelled"
)

// Transaction movimiento financiero de una empresa. Reference enlaza con el evento
// que lo originó (postings automáticos).
type Transaction struct {
	ID            string
	CompanyID     string
	Type          string
	Category      string
	Description   string
	Amount        decimal.Decimal
	Date          time.Time
	PaymentMethod string
	Status        string
	IsRecurring   bool
	RecurringDay  int // 1..31
	Reference     string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsPaid informa si la transacción cuenta en las agregaciones.
func (t *Transaction) IsPaid() bool { return t.Status == TransactionStatusPaid }

// NextDueDate próxima ocurrencia de RecurringDay estrictamente después de from.
// Si el mes no tiene ese día se usa el último día del mes.
func (t *Transaction) NextDueDate(from time.Time) (time.Time, bool) {
	if !t.IsRecurring || t.Status == TransactionStatusCancelled {
		return time.Time{}, false
	}
	day := t.RecurringDay
	if day < 1 {
		day = 1
	}
	for i := 0; i < 2; i++ {
		first := time.Date(from.Year(), from.Month()+time.Month(i), 1, 0, 0, 0, 0, from.Location())
		d := day
		if last := daysIn(first); d > last {
			d = last
		}
		due := time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, from.Location())
		if due.After(from) {
			return due, true
		}
	}
	// inalcanzable: el mes siguiente siempre es posterior a from
	return time.Time{}, false
}

func daysIn(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}

// IsValidTransactionType informa si el tipo es conocido.
func IsValidTransactionType(t string) bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// IsValidTransactionCategory informa si la categoría es conocida.
func IsValidTransactionCategory(c string) bool {
	switch c {
	case TransactionCategorySales, TransactionCategoryPurchases, TransactionCategorySalaries,
		TransactionCategoryRent, TransactionCategoryMarketing, TransactionCategoryMaintenance,
		TransactionCategoryOther:
		return true
	}
	return false
}

// IsValidPaymentMethod informa si el medio de pago es conocido.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodPix, PaymentMethodTransfer, PaymentMethodBankSlip:
		return true
	}
	return false
}

// IsValidTransactionStatus informa si el estado es conocido.
func IsValidTransactionStatus(s string) bool {
	switch s {
	case TransactionStatusPending, TransactionStatusPaid, TransactionStatusCancelled:
		return true
	}
	return false
}
