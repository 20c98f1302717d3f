package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para las métricas del dashboard.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del dashboard.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CountEvents total de eventos; con since, solo los creados desde esa fecha.
func (r *DashboardRepo) CountEvents(ctx context.Context, companyID string, since *time.Time) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM events
	WHERE company_id = $1
	  AND ($2::timestamptz IS NULL OR created_at >= $2)`

	var n int
	if err := r.q.QueryRow(ctx, query, companyID, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard.CountEvents: %w", err)
	}
	return n, nil
}

// CountUpcomingEvents eventos con start_date >= from y estado en statuses.
func (r *DashboardRepo) CountUpcomingEvents(ctx context.Context, companyID string, from time.Time, statuses []string) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM events
	WHERE company_id = $1
	  AND start_date >= $2
	  AND status = ANY($3)`

	var n int
	if err := r.q.QueryRow(ctx, query, companyID, from, statuses).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard.CountUpcomingEvents: %w", err)
	}
	return n, nil
}

// CountLowStock productos activos con quantity <= min_stock.
func (r *DashboardRepo) CountLowStock(ctx context.Context, companyID string) (int, error) {
	const query = `
	SELECT COUNT(*)
	FROM products
	WHERE company_id = $1
	  AND is_active = TRUE
	  AND quantity <= min_stock`

	var n int
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("dashboard.CountLowStock: %w", err)
	}
	return n, nil
}

// MonthlyPaidIncome ingresos pagados agrupados por mes calendario en [from, to].
func (r *DashboardRepo) MonthlyPaidIncome(ctx context.Context, companyID string, from, to time.Time) ([]repository.MonthlyAmount, error) {
	const query = `
	SELECT
	    EXTRACT(YEAR  FROM date)::INT    AS year,
	    EXTRACT(MONTH FROM date)::INT    AS month,
	    COALESCE(SUM(amount), 0)         AS amount,
	    COUNT(*)                         AS transactions
	FROM transactions
	WHERE company_id = $1
	  AND type   = 'income'
	  AND status = 'paid'
	  AND date BETWEEN $2 AND $3
	GROUP BY year, month
	ORDER BY year, month`

	rows, err := r.q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("dashboard.MonthlyPaidIncome: %w", err)
	}
	defer rows.Close()

	results := make([]repository.MonthlyAmount, 0)
	for rows.Next() {
		var row repository.MonthlyAmount
		if err := rows.Scan(&row.Year, &row.Month, &row.Amount, &row.Transactions); err != nil {
			return nil, fmt.Errorf("dashboard.MonthlyPaidIncome scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
