package repository

import (
	"context"

	"github.com/jhoicas/eventos-erp/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para la bitácora de stock.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, companyID, productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByReference(ctx context.Context, companyID, reference string) ([]*entity.StockMovement, error)
}
