package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

// replenishmentHorizon ventana de eventos planificados cuya demanda se considera.
const replenishmentHorizon = 30 * 24 * time.Hour

// ReplenishmentUseCase genera la lista de reposición: productos cuyo stock, descontando la
// demanda de eventos planificados aún no confirmados, queda en o bajo su mínimo.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
	eventRepo   repository.EventRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository, eventRepo repository.EventRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo, eventRepo: eventRepo}
}

// GenerateReplenishmentList devuelve las sugerencias ordenadas por déficit (prioridad 1 = más urgente).
// Stock ideal = 2 × minStock + demanda pendiente.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, companyID string) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.productRepo.List(ctx, companyID, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}

	// Los eventos planificados todavía no descontaron stock: su consumo es demanda futura.
	now := time.Now()
	planned, err := uc.eventRepo.ListUpcoming(ctx, companyID, now, now.Add(replenishmentHorizon),
		[]string{entity.EventStatusPlanned}, 0)
	if err != nil {
		return nil, err
	}
	demand := make(map[string]int)
	for _, ev := range planned {
		for _, it := range ev.Items {
			demand[it.ProductID] += it.Quantity
		}
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, p := range products {
		pending := demand[p.ID]
		available := p.Quantity - pending
		if available > p.MinStock {
			continue
		}
		ideal := 2*p.MinStock + pending
		qty := ideal - p.Quantity
		if qty < 0 {
			qty = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			SKU:                p.SKU,
			ProductName:        p.Name,
			CurrentStock:       p.Quantity,
			MinStock:           p.MinStock,
			PendingDemand:      pending,
			IdealStock:         ideal,
			SuggestedOrderQty:  qty,
			UnitCost:           p.Cost,
			EstimatedOrderCost: p.Cost.Mul(decimal.NewFromInt(int64(qty))),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		defA := a.MinStock + a.PendingDemand - a.CurrentStock
		defB := b.MinStock + b.PendingDemand - b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		return a.EstimatedOrderCost.GreaterThan(b.EstimatedOrderCost)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
