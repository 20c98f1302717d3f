package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/eventos-erp/internal/application/events"
	"github.com/jhoicas/eventos-erp/internal/application/inventory"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and events.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ events.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos de stock atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx), NewStockMovementRepository(tx))
	})
}

// RunEvents inicia una transacción con repos de eventos, stock y finanzas: el cambio del evento,
// sus movimientos de stock y sus postings se confirman juntos.
func (r *TxRunner) RunEvents(ctx context.Context, fn func(
	eventRepo repository.EventRepository,
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.within(ctx, func(tx pgx.Tx) error {
		return fn(
			NewEventRepository(tx),
			NewProductRepository(tx),
			NewTransactionRepository(tx),
			NewStockMovementRepository(tx),
		)
	})
}

func (r *TxRunner) within(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
