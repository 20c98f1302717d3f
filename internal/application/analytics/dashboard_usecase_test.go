package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventos-erp/internal/application/analytics"
	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/finance"
	"github.com/jhoicas/eventos-erp/internal/application/ports"
	"github.com/jhoicas/eventos-erp/internal/application/usecase"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/infrastructure/cache"
	"github.com/jhoicas/eventos-erp/internal/infrastructure/memory"
)

const companyID = "company-1"

type dashFixture struct {
	uc     *analytics.DashboardUseCase
	store  *memory.Store
	events *memory.EventRepo
	txs    *memory.TransactionRepo
}

func newDashFixture(t *testing.T, c ports.MetricsCache) *dashFixture {
	t.Helper()
	s := memory.NewStore()
	txs := memory.NewTransactionRepository(s)
	events := memory.NewEventRepository(s)
	uc := analytics.NewDashboardUseCase(memory.NewDashboardRepository(s), events,
		finance.NewLedger(txs, c, zerolog.Nop()), c, zerolog.Nop())
	return &dashFixture{uc: uc, store: s, events: events, txs: txs}
}

func (f *dashFixture) addEvent(t *testing.T, id, status string, start time.Time) {
	t.Helper()
	require.NoError(t, f.events.Create(context.Background(), &entity.Event{
		ID: id, CompanyID: companyID, Title: "Evento " + id, Location: "Salón", Status: status,
		StartDate: start, EndDate: start.Add(2 * time.Hour), Revenue: decimal.NewFromInt(100),
		CreatedAt: time.Now(),
	}))
}

func (f *dashFixture) addIncome(t *testing.T, id, status string, amount int64, date time.Time) {
	t.Helper()
	require.NoError(t, f.txs.Create(context.Background(), &entity.Transaction{
		ID: id, CompanyID: companyID, Type: entity.TransactionTypeIncome, Category: entity.TransactionCategorySales,
		Description: "venta", Amount: decimal.NewFromInt(amount), Date: date, Status: status,
		PaymentMethod: entity.PaymentMethodCash, CreatedAt: time.Now(),
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// GetMetrics
// ──────────────────────────────────────────────────────────────────────────────

func TestGetMetrics(t *testing.T) {
	f := newDashFixture(t, nil)
	now := time.Now()
	f.addEvent(t, "futuro", entity.EventStatusPlanned, now.Add(48*time.Hour))
	f.addEvent(t, "pasado", entity.EventStatusCompleted, now.Add(-48*time.Hour))
	f.addEvent(t, "cancelado", entity.EventStatusCancelled, now.Add(72*time.Hour))
	f.addIncome(t, "t1", entity.TransactionStatusPaid, 300, now)
	f.addIncome(t, "t2", entity.TransactionStatusPending, 999, now)

	require.NoError(t, memory.NewProductRepository(f.store).Create(context.Background(), &entity.Product{
		ID: "p1", CompanyID: companyID, SKU: "A", Name: "Silla", Quantity: 1, MinStock: 5, IsActive: true,
	}))

	m, err := f.uc.GetMetrics(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, 3, m.TotalEvents)
	assert.Equal(t, 3, m.EventsThisMonth)
	assert.Equal(t, 1, m.UpcomingEvents, "solo planificados o confirmados por venir")
	assert.Equal(t, 1, m.LowStockProducts)
	assert.Equal(t, "300", m.RevenueThisMonth.String(), "las pendientes no cuentan")
	assert.Equal(t, "300", m.RevenueThisYear.String())
	assert.NotEmpty(t, m.DateLabel)
}

func TestGetMetrics_IngresosFuturosNoCuentan(t *testing.T) {
	f := newDashFixture(t, nil)
	now := time.Now()
	inThreeMonths := now.AddDate(0, 3, 0)
	f.addIncome(t, "hoy", entity.TransactionStatusPaid, 100, now)
	f.addIncome(t, "trimestre", entity.TransactionStatusPaid, 5000, inThreeMonths)
	f.addIncome(t, "otro-anio", entity.TransactionStatusPaid, 7000, now.AddDate(0, 13, 0))

	m, err := f.uc.GetMetrics(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, "100", m.RevenueThisMonth.String(), "solo el mes en curso")

	wantYear := "100"
	if inThreeMonths.Year() == now.Year() {
		wantYear = "5100"
	}
	assert.Equal(t, wantYear, m.RevenueThisYear.String(), "solo el año en curso")

	chart, err := f.uc.GetRevenueChart(context.Background(), companyID)
	require.NoError(t, err)
	require.Len(t, chart, 12)
	assert.True(t, chart[11].Revenue.Equal(m.RevenueThisMonth), "tarjeta y gráfico coinciden en el mes actual")
}

func TestGetMetrics_CambiosDeProductoInvalidanCache(t *testing.T) {
	c := cache.NewTTLCache(time.Minute)
	f := newDashFixture(t, c)
	products := usecase.NewProductUseCase(memory.NewProductRepository(f.store), memory.NewCompanyRepository(f.store),
		nil, c, zerolog.Nop())
	ctx := context.Background()

	m, err := f.uc.GetMetrics(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 0, m.LowStockProducts)

	p, err := products.Create(ctx, companyID, dto.CreateProductRequest{
		SKU: "mesa-1", Name: "Mesa", Category: entity.ProductCategoryOther, Quantity: 3,
	})
	require.NoError(t, err)
	m, err = f.uc.GetMetrics(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 1, m.LowStockProducts, "el alta bajo el mínimo debe verse de inmediato")

	low, high := 2, entity.DefaultMinStock
	_, err = products.Update(ctx, companyID, p.ID, dto.UpdateProductRequest{MinStock: &low})
	require.NoError(t, err)
	m, err = f.uc.GetMetrics(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 0, m.LowStockProducts, "bajar min_stock saca al producto del conteo")

	_, err = products.Update(ctx, companyID, p.ID, dto.UpdateProductRequest{MinStock: &high})
	require.NoError(t, err)
	m, err = f.uc.GetMetrics(ctx, companyID)
	require.NoError(t, err)
	require.Equal(t, 1, m.LowStockProducts)

	require.NoError(t, products.Delete(ctx, companyID, p.ID))
	m, err = f.uc.GetMetrics(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 0, m.LowStockProducts, "el borrado también invalida")
}

func TestGetMetrics_UsaCache(t *testing.T) {
	f := newDashFixture(t, cache.NewTTLCache(time.Minute))
	ctx := context.Background()

	first, err := f.uc.GetMetrics(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 0, first.TotalEvents)

	// Un evento creado directo en el repo no invalida la caché.
	f.addEvent(t, "nuevo", entity.EventStatusPlanned, time.Now().Add(time.Hour))
	cached, err := f.uc.GetMetrics(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 0, cached.TotalEvents, "debe devolverse el valor en caché")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetRevenueChart / GetUpcomingEvents
// ──────────────────────────────────────────────────────────────────────────────

func TestGetRevenueChart(t *testing.T) {
	f := newDashFixture(t, nil)
	now := time.Now()
	f.addIncome(t, "t1", entity.TransactionStatusPaid, 200, now)
	f.addIncome(t, "t2", entity.TransactionStatusPaid, 50, now)
	f.addIncome(t, "viejo", entity.TransactionStatusPaid, 700, now.AddDate(-2, 0, 0))

	chart, err := f.uc.GetRevenueChart(context.Background(), companyID)
	require.NoError(t, err)
	require.Len(t, chart, 12)

	last := chart[11]
	assert.Equal(t, "250", last.Revenue.String())
	assert.Equal(t, 2, last.Transactions)
	for _, p := range chart[:11] {
		assert.True(t, p.Revenue.IsZero(), "mes %s sin movimientos", p.Month)
	}
}

func TestGetUpcomingEvents(t *testing.T) {
	f := newDashFixture(t, nil)
	now := time.Now()
	f.addEvent(t, "b", entity.EventStatusConfirmed, now.Add(72*time.Hour))
	f.addEvent(t, "a", entity.EventStatusPlanned, now.Add(24*time.Hour))
	f.addEvent(t, "lejano", entity.EventStatusPlanned, now.Add(60*24*time.Hour))
	f.addEvent(t, "cancelado", entity.EventStatusCancelled, now.Add(24*time.Hour))

	list, err := f.uc.GetUpcomingEvents(context.Background(), companyID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID, "ordenados por fecha de inicio")
	assert.Equal(t, "b", list[1].ID)
}
