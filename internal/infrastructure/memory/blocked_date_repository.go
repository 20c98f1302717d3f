package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

var _ repository.BlockedDateRepository = (*BlockedDateRepo)(nil)

// BlockedDateRepo bloqueos de agenda en memoria.
type BlockedDateRepo struct{ view }

// NewBlockedDateRepository construye el repo sobre el almacén.
func NewBlockedDateRepository(s *Store) *BlockedDateRepo { return &BlockedDateRepo{view{s: s}} }

func (r *BlockedDateRepo) Create(_ context.Context, b *entity.BlockedDate) error {
	defer r.write()()
	r.s.blocks[b.ID] = *b
	return nil
}

func (r *BlockedDateRepo) Delete(_ context.Context, companyID, id string) error {
	defer r.write()()
	b, ok := r.s.blocks[id]
	if !ok || b.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.blocks, id)
	return nil
}

func (r *BlockedDateRepo) List(_ context.Context, companyID string) ([]*entity.BlockedDate, error) {
	defer r.read()()
	return r.filter(companyID, func(entity.BlockedDate) bool { return true }), nil
}

func (r *BlockedDateRepo) ListOverlapping(_ context.Context, companyID string, start, end time.Time) ([]*entity.BlockedDate, error) {
	defer r.read()()
	return r.filter(companyID, func(b entity.BlockedDate) bool {
		return !b.StartDate.After(end) && !b.EndDate.Before(start)
	}), nil
}

func (r *BlockedDateRepo) filter(companyID string, keep func(entity.BlockedDate) bool) []*entity.BlockedDate {
	out := make([]*entity.BlockedDate, 0)
	for _, b := range r.s.blocks {
		if b.CompanyID == companyID && keep(b) {
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
