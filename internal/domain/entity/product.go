package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto.
const (
	ProductCategoryElectronics = "electronics"
	ProductCategoryClothing    = "clothing"
	ProductCategoryHome        = "home"
	ProductCategorySports      = "sports"
	ProductCategoryBooks       = "books"
	ProductCategoryAutomotive  = "automotive"
	ProductCategoryOther       = "other"
)

// DefaultMinStock umbral de stock bajo cuando no se indica otro.
const DefaultMinStock = 5

// Product representa un producto del inventario de una empresa.
// Quantity nunca es negativa: las deducciones se recortan en 0.
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // único por empresa, en mayúsculas
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo unitario
	Quantity    int
	MinStock    int
	Supplier    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfitMargin (price-cost)/cost*100; 0 si el costo es 0.
func (p *Product) ProfitMargin() decimal.Decimal {
	if p.Cost.IsZero() {
		return decimal.Zero
	}
	return p.Price.Sub(p.Cost).Div(p.Cost).Mul(decimal.NewFromInt(100)).Round(2)
}

// IsLowStock quantity <= minStock.
func (p *Product) IsLowStock() bool { return p.Quantity <= p.MinStock }

// StockValue quantity * cost.
func (p *Product) StockValue() decimal.Decimal {
	return p.Cost.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// IsValidProductCategory informa si la categoría es conocida.
func IsValidProductCategory(c string) bool {
	switch c {
	case ProductCategoryElectronics, ProductCategoryClothing, ProductCategoryHome,
		ProductCategorySports, ProductCategoryBooks, ProductCategoryAutomotive, ProductCategoryOther:
		return true
	}
	return false
}
