package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo bitácora de stock en memoria (solo inserción).
type StockMovementRepo struct{ view }

// NewStockMovementRepository construye el repo sobre el almacén.
func NewStockMovementRepository(s *Store) *StockMovementRepo {
	return &StockMovementRepo{view{s: s}}
}

func (r *StockMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	defer r.write()()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

// ListByProduct más recientes primero; a igual fecha, el último registrado primero.
func (r *StockMovementRepo) ListByProduct(_ context.Context, companyID, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	defer r.read()()
	out := make([]*entity.StockMovement, 0)
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if m.CompanyID == companyID && m.ProductID == productID {
			out = append(out, &m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset > 0 {
		if offset >= len(out) {
			return []*entity.StockMovement{}, nil
		}
		out = out[offset:]
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *StockMovementRepo) ListByReference(_ context.Context, companyID, reference string) ([]*entity.StockMovement, error) {
	defer r.read()()
	out := make([]*entity.StockMovement, 0)
	for _, m := range r.s.movements {
		if m.CompanyID == companyID && m.Reference == reference {
			out = append(out, &m)
		}
	}
	return out, nil
}
