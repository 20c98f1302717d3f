package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/ports"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
	"github.com/jhoicas/eventos-erp/pkg/metrics"
)

// StockLedger es el dueño de Product.Quantity: ajustes manuales y deducciones/devoluciones
// originadas por eventos. Cada cambio efectivo queda en la bitácora de movimientos.
type StockLedger struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	cache       ports.CacheInvalidator
	log         zerolog.Logger
}

// NewStockLedger construye el caso de uso.
func NewStockLedger(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	cache ports.CacheInvalidator,
	log zerolog.Logger,
) *StockLedger {
	if cache == nil {
		cache = ports.NopCache{}
	}
	return &StockLedger{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		cache:       cache,
		log:         log.With().Str("component", "stock_ledger").Logger(),
	}
}

// AdjustInput entrada para un ajuste manual.
type AdjustInput struct {
	CompanyID string
	UserID    string
	ProductID string
	Operation string // add, subtract, set
	Quantity  int
}

// ItemsResult resultado de aplicar las líneas de un evento.
// Skipped contiene los IDs de producto que no existen en la empresa.
type ItemsResult struct {
	Applied []entity.StockAdjustment
	Skipped []string
}

// Adjust aplica add/subtract/set sobre el producto y devuelve la cantidad anterior y la nueva.
// subtract nunca deja la cantidad negativa y no falla si el déficit supera el stock.
func (l *StockLedger) Adjust(ctx context.Context, in AdjustInput) (*dto.AdjustStockResponse, error) {
	if in.ProductID == "" {
		return nil, domain.Invalid("product_id", "es requerido")
	}
	if !entity.IsValidStockOperation(in.Operation) {
		return nil, domain.Invalid("operation", "debe ser add, subtract o set")
	}
	if in.Quantity < 0 {
		return nil, domain.Invalid("quantity", "no puede ser negativa")
	}

	var adj *entity.StockAdjustment
	err := l.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		var err error
		adj, err = productRepo.AdjustQuantity(ctx, in.CompanyID, in.ProductID, in.Operation, in.Quantity)
		if err != nil {
			return err
		}
		if adj == nil {
			return domain.ErrNotFound
		}
		return movRepo.Create(ctx, newMovement(in.CompanyID, in.UserID, "", in.Operation, in.Quantity, adj))
	})
	if err != nil {
		return nil, err
	}
	metrics.ObserveStockAdjustment(in.Operation)
	if err := l.cache.Invalidate(ctx, in.CompanyID); err != nil {
		l.log.Warn().Err(err).Str("company_id", in.CompanyID).Msg("no se pudo invalidar la caché del dashboard")
	}
	l.log.Info().
		Str("company_id", in.CompanyID).
		Str("product_id", in.ProductID).
		Str("operation", in.Operation).
		Int("old_quantity", adj.OldQuantity).
		Int("new_quantity", adj.NewQuantity).
		Msg("ajuste de stock")
	return &dto.AdjustStockResponse{
		ProductID:   adj.ProductID,
		OldQuantity: adj.OldQuantity,
		NewQuantity: adj.NewQuantity,
		Operation:   adj.Operation,
	}, nil
}

// DeductInTx descuenta las líneas de un evento (cantidad recortada en 0) usando repos atados a la tx
// del llamador. Los productos inexistentes se omiten y se registran; un error de infraestructura
// aborta la operación completa.
func (l *StockLedger) DeductInTx(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	companyID, userID, eventID string,
	items []entity.LineItem,
) (*ItemsResult, error) {
	return l.applyItems(ctx, productRepo, movRepo, companyID, userID, eventID, items,
		entity.StockOperationSubtract, entity.MovementTypeEventDeduct)
}

// ReturnInTx devuelve al stock las líneas de un evento (suma sin techo).
func (l *StockLedger) ReturnInTx(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	companyID, userID, eventID string,
	items []entity.LineItem,
) (*ItemsResult, error) {
	return l.applyItems(ctx, productRepo, movRepo, companyID, userID, eventID, items,
		entity.StockOperationAdd, entity.MovementTypeEventReturn)
}

func (l *StockLedger) applyItems(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	companyID, userID, eventID string,
	items []entity.LineItem,
	op, movType string,
) (*ItemsResult, error) {
	res := &ItemsResult{}
	for _, item := range items {
		adj, err := productRepo.AdjustQuantity(ctx, companyID, item.ProductID, op, item.Quantity)
		if err != nil {
			return nil, err
		}
		if adj == nil {
			res.Skipped = append(res.Skipped, item.ProductID)
			metrics.ObserveSkippedItem(movType)
			l.log.Warn().
				Str("company_id", companyID).
				Str("event_id", eventID).
				Str("product_id", item.ProductID).
				Str("movement", movType).
				Int("quantity", item.Quantity).
				Msg("producto no encontrado, línea omitida")
			continue
		}
		if err := movRepo.Create(ctx, newMovement(companyID, userID, eventID, movType, item.Quantity, adj)); err != nil {
			return nil, err
		}
		res.Applied = append(res.Applied, *adj)
	}
	return res, nil
}

// ListMovements devuelve la bitácora de un producto, más recientes primero.
func (l *StockLedger) ListMovements(ctx context.Context, companyID, productID string, limit, offset int) ([]dto.StockMovementResponse, error) {
	product, err := l.productRepo.GetByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := l.movRepo.ListByProduct(ctx, companyID, productID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			OldQuantity: m.OldQuantity,
			NewQuantity: m.NewQuantity,
			Reference:   m.Reference,
			CreatedBy:   m.CreatedBy,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}

func newMovement(companyID, userID, reference, movType string, qty int, adj *entity.StockAdjustment) *entity.StockMovement {
	return &entity.StockMovement{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		ProductID:   adj.ProductID,
		Type:        movType,
		Quantity:    qty,
		OldQuantity: adj.OldQuantity,
		NewQuantity: adj.NewQuantity,
		Reference:   reference,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}
}
