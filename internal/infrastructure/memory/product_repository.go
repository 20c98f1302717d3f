package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/inventory"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
	"github.com/jhoicas/eventos-erp/pkg/textnorm"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria. (company_id, sku) es único.
type ProductRepo struct{ view }

// NewProductRepository construye el repo sobre el almacén.
func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{view{s: s}} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.write()()
	if r.skuTaken(p.CompanyID, p.SKU, p.ID) {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, companyID, id string) (*entity.Product, error) {
	defer r.read()()
	p, ok := r.s.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return &p, nil
}

// Update no modifica la cantidad.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.write()()
	cur, ok := r.s.products[p.ID]
	if !ok || cur.CompanyID != p.CompanyID {
		return domain.ErrNotFound
	}
	if r.skuTaken(p.CompanyID, p.SKU, p.ID) {
		return domain.ErrDuplicate
	}
	next := *p
	next.Quantity = cur.Quantity
	next.CreatedAt = cur.CreatedAt
	r.s.products[p.ID] = next
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, companyID, id string) error {
	defer r.write()()
	p, ok := r.s.products[id]
	if !ok || p.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepo) List(_ context.Context, companyID string, f repository.ProductFilter) ([]*entity.Product, error) {
	defer r.read()()
	out := make([]*entity.Product, 0)
	for _, p := range r.s.products {
		if p.CompanyID != companyID {
			continue
		}
		if !f.IncludeInactive && !p.IsActive {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.LowStock && !p.IsLowStock() {
			continue
		}
		if f.Search != "" && !textnorm.Contains(p.Name, f.Search) && !textnorm.Contains(p.SKU, f.Search) {
			continue
		}
		out = append(out, &p)
	}
	sortProducts(out, f.SortBy, f.SortOrder == "desc")
	return out, nil
}

// Search sin distinguir tildes ni mayúsculas, por nombre ascendente.
func (r *ProductRepo) Search(_ context.Context, companyID, term string, limit int) ([]*entity.Product, error) {
	defer r.read()()
	out := make([]*entity.Product, 0)
	for _, p := range r.s.products {
		if p.CompanyID != companyID || !p.IsActive {
			continue
		}
		if textnorm.Contains(p.Name, term) || textnorm.Contains(p.SKU, term) {
			out = append(out, &p)
		}
	}
	sortProducts(out, "name", false)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// AdjustQuantity lee y escribe bajo el mismo lock exclusivo.
func (r *ProductRepo) AdjustQuantity(_ context.Context, companyID, id, op string, amount int) (*entity.StockAdjustment, error) {
	if !entity.IsValidStockOperation(op) {
		return nil, domain.Invalid("operation", "debe ser add, subtract o set")
	}
	defer r.write()()
	p, ok := r.s.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	adj := &entity.StockAdjustment{
		ProductID:   id,
		OldQuantity: p.Quantity,
		NewQuantity: inventory.ApplyOperation(p.Quantity, op, amount),
		Operation:   op,
	}
	p.Quantity = adj.NewQuantity
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return adj, nil
}

func (r *ProductRepo) skuTaken(companyID, sku, exceptID string) bool {
	for id, p := range r.s.products {
		if id != exceptID && p.CompanyID == companyID && p.SKU == sku {
			return true
		}
	}
	return false
}

func sortProducts(list []*entity.Product, by string, desc bool) {
	less := func(a, b *entity.Product) int {
		switch by {
		case "quantity":
			return a.Quantity - b.Quantity
		case "price":
			return a.Price.Cmp(b.Price)
		case "cost":
			return a.Cost.Cmp(b.Cost)
		case "created_at":
			return a.CreatedAt.Compare(b.CreatedAt)
		}
		return compareStrings(a.Name, b.Name)
	}
	sort.Slice(list, func(i, j int) bool {
		c := less(list[i], list[j])
		if c == 0 {
			return list[i].ID < list[j].ID
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
