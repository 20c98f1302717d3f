package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardMetricsDTO respuesta de GET /api/dashboard/metrics.
// Los ingresos provienen del libro financiero (transacciones de ingreso pagadas).
type DashboardMetricsDTO struct {
	TotalEvents      int             `json:"total_events"`
	EventsThisMonth  int             `json:"events_this_month"`
	UpcomingEvents   int             `json:"upcoming_events"`
	RevenueThisMonth decimal.Decimal `json:"revenue_this_month"`
	RevenueThisYear  decimal.Decimal `json:"revenue_this_year"`
	LowStockProducts int             `json:"low_stock_products"`
	DateLabel        string          `json:"date_label"` // ej: "Octubre 2026"
	LastUpdated      time.Time       `json:"last_updated"`
}

// RevenuePointDTO un mes del gráfico de ingresos.
type RevenuePointDTO struct {
	Month        string          `json:"month"` // M/YYYY
	Revenue      decimal.Decimal `json:"revenue"`
	Transactions int             `json:"transactions"`
}

// UpcomingEventDTO versión ligera de un evento próximo.
type UpcomingEventDTO struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date"`
	Location  string          `json:"location"`
	Status    string          `json:"status"`
	Revenue   decimal.Decimal `json:"revenue"`
}
