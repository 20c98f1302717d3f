package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para PATCH /api/stock/:id/adjust.
type AdjustStockRequest struct {
	Quantity  int    `json:"quantity"`
	Operation string `json:"operation"` // add, subtract, set
}

// AdjustStockResponse resultado de un ajuste de stock.
type AdjustStockResponse struct {
	ProductID   string `json:"product_id"`
	OldQuantity int    `json:"old_quantity"`
	NewQuantity int    `json:"new_quantity"`
	Operation   string `json:"operation"`
}

// CategoryStockDTO resumen de stock por categoría.
type CategoryStockDTO struct {
	Category   string          `json:"category"`
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// TopProductDTO producto con mayor valor en stock.
type TopProductDTO struct {
	ID       string          `json:"id"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Value    decimal.Decimal `json:"value"`
}

// StockReportDTO respuesta de GET /api/stock/report.
type StockReportDTO struct {
	TotalProducts     int                `json:"total_products"`
	TotalValue        decimal.Decimal    `json:"total_value"`
	LowStockItems     []ProductSummary   `json:"low_stock_items"`
	CategoryBreakdown []CategoryStockDTO `json:"category_breakdown"`
	TopProducts       []TopProductDTO    `json:"top_products"`
	GeneratedAt       time.Time          `json:"generated_at"`
}

// StockMovementResponse entrada de la bitácora de stock.
type StockMovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	OldQuantity int       `json:"old_quantity"`
	NewQuantity int       `json:"new_quantity"`
	Reference   string    `json:"reference,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto en o bajo su mínimo,
// considerando la demanda de eventos planificados.
type ReplenishmentSuggestionDTO struct {
	Priority           int             `json:"priority"`
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	CurrentStock       int             `json:"current_stock"`
	MinStock           int             `json:"min_stock"`
	PendingDemand      int             `json:"pending_demand"`
	IdealStock         int             `json:"ideal_stock"`
	SuggestedOrderQty  int             `json:"suggested_order_qty"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
}
