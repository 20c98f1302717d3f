package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/eventos-erp/internal/domain/entity"
)

// TransactionFilter criterios de listado. Fechas nil = sin límite.
type TransactionFilter struct {
	Type     string
	Category string
	Status   string
	From     *time.Time
	To       *time.Time
	Limit    int
}

// CategoryTotal suma de transacciones pagadas por (tipo, categoría).
type CategoryTotal struct {
	Type     string
	Category string
	Total    decimal.Decimal
	Count    int
}

// PaymentMethodTotal suma de transacciones pagadas por medio de pago.
type PaymentMethodTotal struct {
	PaymentMethod string
	Total         decimal.Decimal
	Count         int
}

// TransactionRepository define el puerto de persistencia para Transaction (DIP).
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Transaction, error)
	Update(ctx context.Context, tx *entity.Transaction) error
	Delete(ctx context.Context, companyID, id string) error
	// DeleteByReference elimina todas las transacciones de la empresa con esa referencia.
	DeleteByReference(ctx context.Context, companyID, reference string) (int64, error)
	List(ctx context.Context, companyID string, filter TransactionFilter) ([]*entity.Transaction, error)
	// SumPaid suma los montos de transacciones pagadas por tipo en la ventana [from, to].
	SumPaid(ctx context.Context, companyID string, from, to *time.Time) (income, expense decimal.Decimal, err error)
	// ListRecurring recurrentes no canceladas, más recientes primero.
	ListRecurring(ctx context.Context, companyID string) ([]*entity.Transaction, error)
	SumByCategory(ctx context.Context, companyID string, from, to *time.Time) ([]CategoryTotal, error)
	SumByPaymentMethod(ctx context.Context, companyID string, from, to *time.Time) ([]PaymentMethodTotal, error)
}
