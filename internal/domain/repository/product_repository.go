package repository

import (
	"context"

	"github.com/jhoicas/eventos-erp/internal/domain/entity"
)

// ProductFilter criterios de listado de productos. Por defecto solo activos.
type ProductFilter struct {
	Category        string
	LowStock        bool
	Search          string // coincide con nombre o SKU, sin distinguir mayúsculas
	SortBy          string // name, quantity, price, cost, created_at
	SortOrder       string // asc, desc
	IncludeInactive bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Todas las operaciones están acotadas a la empresa.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, companyID string, filter ProductFilter) ([]*entity.Product, error)
	Search(ctx context.Context, companyID, term string, limit int) ([]*entity.Product, error)
	// AdjustQuantity aplica la operación de forma atómica en la capa de almacenamiento
	// (sin leer-modificar-escribir). Devuelve nil, nil si el producto no existe en la empresa.
	AdjustQuantity(ctx context.Context, companyID, id, op string, amount int) (*entity.StockAdjustment, error)
}
