package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, sku, name, description, category, price, cost, quantity, min_stock, supplier, is_active, created_at, updated_at`

var productSortColumns = map[string]string{
	"name":       "name",
	"quantity":   "quantity",
	"price":      "price",
	"cost":       "cost",
	"created_at": "created_at",
}

func scanProduct(s rowScanner) (*entity.Product, error) {
	var p entity.Product
	err := s.Scan(&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.Price, &p.Cost,
		&p.Quantity, &p.MinStock, &p.Supplier, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. SKU repetido en la empresa → domain.ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		p.ID, p.CompanyID, p.SKU, p.Name, p.Description, p.Category, p.Price, p.Cost,
		p.Quantity, p.MinStock, p.Supplier, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto de la empresa.
func (r *ProductRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente. No modifica quantity (se maneja vía AdjustQuantity).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	if !validID(p.ID) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET sku = $3, name = $4, description = $5, category = $6, price = $7, cost = $8,
			min_stock = $9, supplier = $10, is_active = $11, updated_at = $12
		WHERE company_id = $1 AND id = $2`,
		p.CompanyID, p.ID, p.SKU, p.Name, p.Description, p.Category, p.Price, p.Cost,
		p.MinStock, p.Supplier, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto de la empresa.
func (r *ProductRepo) Delete(ctx context.Context, companyID, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List productos con filtros. Orden por nombre ascendente salvo que se indique otro.
func (r *ProductRepo) List(ctx context.Context, companyID string, f repository.ProductFilter) ([]*entity.Product, error) {
	w := newWhere(companyID)
	if !f.IncludeInactive {
		w.add("is_active = TRUE")
	}
	if f.Category != "" {
		w.add("category = ?", f.Category)
	}
	if f.LowStock {
		w.add("quantity <= min_stock")
	}
	if f.Search != "" {
		pat := likePattern(f.Search)
		w.add("(name ILIKE ? OR sku ILIKE ?)", pat, pat)
	}
	col, ok := productSortColumns[f.SortBy]
	if !ok {
		col = "name"
	}
	dir := "ASC"
	if f.SortOrder == "desc" {
		dir = "DESC"
	}
	query := `SELECT ` + productColumns + ` FROM products` + w.sql() + ` ORDER BY ` + col + ` ` + dir + `, id`
	return r.queryProducts(ctx, query, w.args...)
}

// Search autocompletado por nombre o SKU entre productos activos.
func (r *ProductRepo) Search(ctx context.Context, companyID, term string, limit int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE company_id = $1 AND is_active = TRUE AND (name ILIKE $2 OR sku ILIKE $2)
		ORDER BY name LIMIT $3`
	return r.queryProducts(ctx, query, companyID, likePattern(term), limit)
}

// AdjustQuantity aplica add/subtract/set en una sola sentencia. La fila queda bloqueada
// (FOR UPDATE) para leer la cantidad previa; el resultado nunca es negativo.
func (r *ProductRepo) AdjustQuantity(ctx context.Context, companyID, id, op string, amount int) (*entity.StockAdjustment, error) {
	var expr string
	switch op {
	case entity.StockOperationAdd:
		expr = "old.quantity + $3"
	case entity.StockOperationSubtract:
		expr = "GREATEST(old.quantity - $3, 0)"
	case entity.StockOperationSet:
		expr = "GREATEST($3, 0)"
	default:
		return nil, domain.Invalid("operation", "debe ser add, subtract o set")
	}
	if !validID(id) {
		return nil, nil
	}
	query := `
		UPDATE products p SET quantity = ` + expr + `, updated_at = now()
		FROM (SELECT id, quantity FROM products WHERE company_id = $1 AND id = $2 FOR UPDATE) old
		WHERE p.id = old.id
		RETURNING old.quantity, p.quantity`
	adj := entity.StockAdjustment{ProductID: id, Operation: op}
	err := r.q.QueryRow(ctx, query, companyID, id, amount).Scan(&adj.OldQuantity, &adj.NewQuantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("adjust product quantity: %w", err)
	}
	return &adj, nil
}

func (r *ProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
