package memory

import (
	"context"

	"github.com/jhoicas/eventos-erp/internal/application/events"
	"github.com/jhoicas/eventos-erp/internal/application/inventory"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ events.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn con el almacén bloqueado en exclusiva. Si fn falla se restaura
// la copia tomada al inicio, igual que un Rollback.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn con repos de stock atados a la transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.within(ctx, func(v view) error {
		return fn(&ProductRepo{v}, &StockMovementRepo{v})
	})
}

// RunEvents ejecuta fn con repos de eventos, stock y finanzas atados a la transacción.
func (r *TxRunner) RunEvents(ctx context.Context, fn func(
	eventRepo repository.EventRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.within(ctx, func(v view) error {
		return fn(&EventRepo{v}, &ProductRepo{v}, &TransactionRepo{v}, &StockMovementRepo{v})
	})
}

func (r *TxRunner) within(ctx context.Context, fn func(v view) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := r.s.state.clone()
	if err := fn(view{s: r.s, held: true}); err != nil {
		r.s.state = snapshot
		return err
	}
	return nil
}
