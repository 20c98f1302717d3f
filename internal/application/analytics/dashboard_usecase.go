// Package analytics contiene los casos de uso del dashboard: métricas generales,
// gráfico de ingresos y próximos eventos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/finance"
	"github.com/jhoicas/eventos-erp/internal/application/ports"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
	"github.com/jhoicas/eventos-erp/pkg/metrics"
)

const (
	chartMonths     = 12
	upcomingHorizon = 30 * 24 * time.Hour
	upcomingLimit   = 10
)

// DashboardUseCase arma las métricas del dashboard.
//
// Fuentes: DashboardRepository (conteos read-only), EventRepository (próximos eventos)
// y el libro financiero para los ingresos, que es la única fuente de verdad de montos.
type DashboardUseCase struct {
	dashRepo  repository.DashboardRepository
	eventRepo repository.EventRepository
	ledger    *finance.Ledger
	cache     ports.MetricsCache
	log       zerolog.Logger
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(
	dashRepo repository.DashboardRepository,
	eventRepo repository.EventRepository,
	ledger *finance.Ledger,
	cache ports.MetricsCache,
	log zerolog.Logger,
) *DashboardUseCase {
	if cache == nil {
		cache = ports.NopCache{}
	}
	return &DashboardUseCase{
		dashRepo:  dashRepo,
		eventRepo: eventRepo,
		ledger:    ledger,
		cache:     cache,
		log:       log.With().Str("component", "dashboard").Logger(),
	}
}

// GetMetrics construye el DashboardMetricsDTO de la empresa.
//
// Seis consultas en paralelo:
//  1. CountEvents(todos)             → TotalEvents
//  2. CountEvents(desde día 1)       → EventsThisMonth
//  3. CountUpcomingEvents(desde hoy) → UpcomingEvents
//  4. CountLowStock                  → LowStockProducts
//  5. ingresos pagados del mes       → RevenueThisMonth
//  6. ingresos pagados del año       → RevenueThisYear
func (uc *DashboardUseCase) GetMetrics(ctx context.Context, companyID string) (*dto.DashboardMetricsDTO, error) {
	if cached, ok, err := uc.cache.Get(ctx, companyID); err != nil {
		uc.log.Warn().Err(err).Str("company_id", companyID).Msg("lectura de caché fallida")
	} else if ok {
		metrics.ObserveCache(true)
		return cached, nil
	}
	metrics.ObserveCache(false)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	// Los ingresos de eventos futuros se fechan en su inicio: sin tope caerían en el periodo actual.
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	yearEnd := yearStart.AddDate(1, 0, 0).Add(-time.Nanosecond)

	// ── Goroutines para paralelizar las consultas ─────────────────────────────
	type countResult struct {
		n   int
		err error
	}
	type revenueResult struct {
		amount decimal.Decimal
		err    error
	}

	totalCh := make(chan countResult, 1)
	monthCountCh := make(chan countResult, 1)
	upcomingCh := make(chan countResult, 1)
	lowStockCh := make(chan countResult, 1)
	monthRevCh := make(chan revenueResult, 1)
	yearRevCh := make(chan revenueResult, 1)

	go func() {
		n, err := uc.dashRepo.CountEvents(ctx, companyID, nil)
		totalCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashRepo.CountEvents(ctx, companyID, &monthStart)
		monthCountCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashRepo.CountUpcomingEvents(ctx, companyID, now,
			[]string{entity.EventStatusPlanned, entity.EventStatusConfirmed})
		upcomingCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashRepo.CountLowStock(ctx, companyID)
		lowStockCh <- countResult{n, err}
	}()
	go func() {
		b, err := uc.ledger.CalculateBalance(ctx, companyID, &monthStart, &monthEnd)
		if err != nil {
			monthRevCh <- revenueResult{err: err}
			return
		}
		monthRevCh <- revenueResult{amount: b.Income}
	}()
	go func() {
		b, err := uc.ledger.CalculateBalance(ctx, companyID, &yearStart, &yearEnd)
		if err != nil {
			yearRevCh <- revenueResult{err: err}
			return
		}
		yearRevCh <- revenueResult{amount: b.Income}
	}()

	total := <-totalCh
	monthCount := <-monthCountCh
	upcoming := <-upcomingCh
	lowStock := <-lowStockCh
	monthRev := <-monthRevCh
	yearRev := <-yearRevCh

	if total.err != nil {
		return nil, fmt.Errorf("dashboard: total de eventos: %w", total.err)
	}
	if monthCount.err != nil {
		return nil, fmt.Errorf("dashboard: eventos del mes: %w", monthCount.err)
	}
	if upcoming.err != nil {
		return nil, fmt.Errorf("dashboard: próximos eventos: %w", upcoming.err)
	}
	if lowStock.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", lowStock.err)
	}
	if monthRev.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos del mes: %w", monthRev.err)
	}
	if yearRev.err != nil {
		return nil, fmt.Errorf("dashboard: ingresos del año: %w", yearRev.err)
	}

	out := &dto.DashboardMetricsDTO{
		TotalEvents:      total.n,
		EventsThisMonth:  monthCount.n,
		UpcomingEvents:   upcoming.n,
		RevenueThisMonth: monthRev.amount.Round(2),
		RevenueThisYear:  yearRev.amount.Round(2),
		LowStockProducts: lowStock.n,
		DateLabel:        monthLabel(now),
		LastUpdated:      now,
	}
	if err := uc.cache.Set(ctx, companyID, out); err != nil {
		uc.log.Warn().Err(err).Str("company_id", companyID).Msg("escritura de caché fallida")
	}
	return out, nil
}

// GetRevenueChart ingresos pagados de los últimos 12 meses (incluido el actual),
// en orden cronológico y con los meses sin movimientos en cero.
func (uc *DashboardUseCase) GetRevenueChart(ctx context.Context, companyID string) ([]dto.RevenuePointDTO, error) {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(chartMonths - 1), 0)
	todayEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24*time.Hour - time.Nanosecond)

	rows, err := uc.dashRepo.MonthlyPaidIncome(ctx, companyID, first, todayEnd)
	if err != nil {
		return nil, fmt.Errorf("dashboard: gráfico de ingresos: %w", err)
	}
	byMonth := make(map[[2]int]repository.MonthlyAmount, len(rows))
	for _, r := range rows {
		byMonth[[2]int{r.Year, r.Month}] = r
	}

	out := make([]dto.RevenuePointDTO, 0, chartMonths)
	for i := 0; i < chartMonths; i++ {
		m := first.AddDate(0, i, 0)
		point := dto.RevenuePointDTO{
			Month:   fmt.Sprintf("%d/%d", int(m.Month()), m.Year()),
			Revenue: decimal.Zero,
		}
		if r, ok := byMonth[[2]int{m.Year(), int(m.Month())}]; ok {
			point.Revenue = r.Amount
			point.Transactions = r.Transactions
		}
		out = append(out, point)
	}
	return out, nil
}

// GetUpcomingEvents eventos de los próximos 30 días en curso o por realizarse, máximo 10.
func (uc *DashboardUseCase) GetUpcomingEvents(ctx context.Context, companyID string) ([]dto.UpcomingEventDTO, error) {
	now := time.Now()
	list, err := uc.eventRepo.ListUpcoming(ctx, companyID, now, now.Add(upcomingHorizon),
		[]string{entity.EventStatusPlanned, entity.EventStatusConfirmed, entity.EventStatusInProgress},
		upcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: próximos eventos: %w", err)
	}
	out := make([]dto.UpcomingEventDTO, 0, len(list))
	for _, ev := range list {
		out = append(out, dto.UpcomingEventDTO{
			ID:        ev.ID,
			Title:     ev.Title,
			StartDate: ev.StartDate,
			EndDate:   ev.EndDate,
			Location:  ev.Location,
			Status:    ev.Status,
			Revenue:   ev.Revenue,
		})
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
