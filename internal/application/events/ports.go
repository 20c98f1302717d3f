package events

import (
	"context"

	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos de eventos, inventario y finanzas
// atados a la misma tx: el evento, sus postings y sus efectos de stock se confirman juntos.
type TxRunner interface {
	RunEvents(ctx context.Context, fn func(
		eventRepo repository.EventRepository,
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
