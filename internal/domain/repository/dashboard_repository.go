package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyAmount total de un mes calendario.
type MonthlyAmount struct {
	Year         int
	Month        int
	Amount       decimal.Decimal
	Transactions int
}

// DashboardRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only (no modifican datos).
type DashboardRepository interface {
	// CountEvents total de eventos; si since no es nil, solo los creados desde esa fecha.
	CountEvents(ctx context.Context, companyID string, since *time.Time) (int, error)

	// CountUpcomingEvents eventos con startDate >= from y estado en statuses.
	CountUpcomingEvents(ctx context.Context, companyID string, from time.Time, statuses []string) (int, error)

	// CountLowStock productos activos con quantity <= min_stock.
	CountLowStock(ctx context.Context, companyID string) (int, error)

	// MonthlyPaidIncome ingresos pagados agrupados por (año, mes) en [from, to], orden cronológico.
	// Los meses sin movimientos no aparecen.
	MonthlyPaidIncome(ctx context.Context, companyID string, from, to time.Time) ([]MonthlyAmount, error)
}
