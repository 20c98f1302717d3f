package finance_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/finance"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/infrastructure/memory"
)

const (
	companyID = "company-1"
	userID    = "user-1"
)

// spyCache cuenta las invalidaciones por empresa; si err no es nil la invalidación falla.
type spyCache struct {
	invalidated map[string]int
	err         error
}

func (s *spyCache) Invalidate(_ context.Context, companyID string) error {
	s.invalidated[companyID]++
	return s.err
}

func newLedger() (*finance.Ledger, *spyCache) {
	cache := &spyCache{invalidated: map[string]int{}}
	return finance.NewLedger(memory.NewTransactionRepository(memory.NewStore()), cache, zerolog.Nop()), cache
}

func record(t *testing.T, l *finance.Ledger, typ, status string, amount int64, date time.Time) *dto.TransactionResponse {
	t.Helper()
	resp, err := l.Record(context.Background(), companyID, userID, dto.CreateTransactionRequest{
		Type:        typ,
		Category:    entity.TransactionCategoryOther,
		Description: "movimiento",
		Amount:      decimal.NewFromInt(amount),
		Date:        &date,
		Status:      status,
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Record
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_ValoresPorDefecto(t *testing.T) {
	l, cache := newLedger()
	resp, err := l.Record(context.Background(), companyID, userID, dto.CreateTransactionRequest{
		Type:        entity.TransactionTypeExpense,
		Description: "  Café  ",
		Amount:      decimal.RequireFromString("12.50"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionCategoryOther, resp.Category)
	assert.Equal(t, entity.PaymentMethodCash, resp.PaymentMethod)
	assert.Equal(t, entity.TransactionStatusPaid, resp.Status)
	assert.Equal(t, "Café", resp.Description)
	assert.False(t, resp.Date.IsZero(), "sin fecha se usa la actual")
	assert.Equal(t, 1, cache.invalidated[companyID])
}

func TestRecord_FalloDeCacheSeRegistraYNoRevierte(t *testing.T) {
	var buf bytes.Buffer
	cache := &spyCache{invalidated: map[string]int{}, err: errors.New("redis caído")}
	l := finance.NewLedger(memory.NewTransactionRepository(memory.NewStore()), cache, zerolog.New(&buf))

	resp := record(t, l, entity.TransactionTypeIncome, entity.TransactionStatusPaid, 100, time.Now())
	assert.Equal(t, 1, cache.invalidated[companyID])
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "no se pudo invalidar la caché del dashboard")
	assert.Contains(t, buf.String(), "redis caído")

	buf.Reset()
	require.NoError(t, l.Delete(context.Background(), companyID, resp.ID))
	assert.Contains(t, buf.String(), `"company_id":"company-1"`)

	list, err := l.List(context.Background(), companyID, dto.TransactionListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list, "el borrado se aplicó pese al fallo de la caché")
}

func TestRecord_Validaciones(t *testing.T) {
	l, _ := newLedger()
	cases := map[string]dto.CreateTransactionRequest{
		"tipo inválido":   {Type: "gift", Description: "x", Amount: decimal.NewFromInt(1)},
		"monto cero":      {Type: entity.TransactionTypeIncome, Description: "x", Amount: decimal.Zero},
		"sin descripción": {Type: entity.TransactionTypeIncome, Amount: decimal.NewFromInt(1)},
		"categoría rara":  {Type: entity.TransactionTypeIncome, Description: "x", Amount: decimal.NewFromInt(1), Category: "lottery"},
		"día recurrente":  {Type: entity.TransactionTypeIncome, Description: "x", Amount: decimal.NewFromInt(1), RecurringDay: 32},
		"medio de pago":   {Type: entity.TransactionTypeIncome, Description: "x", Amount: decimal.NewFromInt(1), PaymentMethod: "bitcoin"},
	}
	for name, in := range cases {
		_, err := l.Record(context.Background(), companyID, userID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Balance
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateBalance_SoloPagadasYVentanaInclusiva(t *testing.T) {
	l, _ := newLedger()
	day := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)
	record(t, l, entity.TransactionTypeIncome, entity.TransactionStatusPaid, 1000, day)
	record(t, l, entity.TransactionTypeExpense, entity.TransactionStatusPaid, 300, day.Add(8*time.Hour)) // 23:30 del mismo día
	record(t, l, entity.TransactionTypeIncome, entity.TransactionStatusPending, 500, day)
	record(t, l, entity.TransactionTypeExpense, entity.TransactionStatusPaid, 50, day.AddDate(0, 0, 1))

	// start y end con hora: se normalizan al día completo
	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC)
	b, err := l.CalculateBalance(context.Background(), companyID, &start, &end)
	require.NoError(t, err)
	assert.Equal(t, "1000", b.Income.String())
	assert.Equal(t, "300", b.Expense.String())
	assert.Equal(t, "700", b.Balance.String())

	all, err := l.CalculateBalance(context.Background(), companyID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "650", all.Balance.String(), "sin ventana cuenta todas las pagadas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Proyección
// ──────────────────────────────────────────────────────────────────────────────

func TestCalculateBalance_VentanasAdyacentesSuman(t *testing.T) {
	l, _ := newLedger()
	jan := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.Local)
	feb := time.Date(2025, time.February, 3, 18, 0, 0, 0, time.Local)
	record(t, l, entity.TransactionTypeIncome, entity.TransactionStatusPaid, 500, jan)
	record(t, l, entity.TransactionTypeExpense, entity.TransactionStatusPaid, 120, jan)
	record(t, l, entity.TransactionTypeIncome, entity.TransactionStatusPaid, 300, feb)

	at := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
		return &v
	}
	ctx := context.Background()
	b1, err := l.CalculateBalance(ctx, companyID, at(2025, 1, 1), at(2025, 1, 31))
	require.NoError(t, err)
	b2, err := l.CalculateBalance(ctx, companyID, at(2025, 2, 1), at(2025, 2, 28))
	require.NoError(t, err)
	both, err := l.CalculateBalance(ctx, companyID, at(2025, 1, 1), at(2025, 2, 28))
	require.NoError(t, err)

	assert.True(t, b1.Balance.Add(b2.Balance).Equal(both.Balance), "enero + febrero = enero..febrero")
	assert.Equal(t, "680", both.Balance.String())
}

func TestCalculateProjection_RecurrentesSinProrrateo(t *testing.T) {
	l, _ := newLedger()
	ctx := context.Background()
	record(t, l, entity.TransactionTypeIncome, entity.TransactionStatusPaid, 2000, time.Now().Add(-time.Hour))

	_, err := l.Record(ctx, companyID, userID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeExpense, Category: entity.TransactionCategoryRent, Description: "Alquiler",
		Amount: decimal.NewFromInt(800), IsRecurring: true, RecurringDay: 5, Status: entity.TransactionStatusPending,
	})
	require.NoError(t, err)
	_, err = l.Record(ctx, companyID, userID, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeIncome, Category: entity.TransactionCategorySales, Description: "Abono mensual",
		Amount: decimal.NewFromInt(300), IsRecurring: true, RecurringDay: 31, Status: entity.TransactionStatusCancelled,
	})
	require.NoError(t, err)

	p, err := l.CalculateProjection(ctx, companyID, 3)
	require.NoError(t, err)
	assert.Equal(t, "2000", p.CurrentBalance.String())
	require.Len(t, p.Months, 3)
	assert.Equal(t, "800", p.Months[0].Expenses.String())
	assert.True(t, p.Months[0].Income.IsZero(), "las recurrentes canceladas no se proyectan")
	assert.Equal(t, "1200", p.Months[0].Balance.String())
	assert.Equal(t, "-400", p.Months[2].Balance.String())

	next := time.Now().AddDate(0, 1, 0)
	assert.Equal(t, next.Format("2006-01"), p.Months[0].Month)
}

func TestCalculateProjection_LimitaMeses(t *testing.T) {
	l, _ := newLedger()
	p, err := l.CalculateProjection(context.Background(), companyID, 0)
	require.NoError(t, err)
	assert.Len(t, p.Months, 6)

	p, err = l.CalculateProjection(context.Background(), companyID, 500)
	require.NoError(t, err)
	assert.Len(t, p.Months, 36)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reporte, actualización y borrado
// ──────────────────────────────────────────────────────────────────────────────

func TestReport_Desgloses(t *testing.T) {
	l, _ := newLedger()
	now := time.Now()
	record(t, l, entity.TransactionTypeIncome, entity.TransactionStatusPaid, 100, now)
	record(t, l, entity.TransactionTypeIncome, entity.TransactionStatusPaid, 50, now)
	record(t, l, entity.TransactionTypeExpense, entity.TransactionStatusPaid, 30, now)
	record(t, l, entity.TransactionTypeIncome, entity.TransactionStatusPaid, 999, now.AddDate(0, -3, 0))

	r, err := l.Report(context.Background(), companyID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "120", r.Balance.Balance.String(), "por defecto solo los últimos 30 días")
	require.Len(t, r.PaymentMethodBreakdown, 1)
	assert.Equal(t, 3, r.PaymentMethodBreakdown[0].Count)

	var incomeOther *dto.CategoryBreakdownDTO
	for i := range r.CategoryBreakdown {
		if r.CategoryBreakdown[i].Type == entity.TransactionTypeIncome {
			incomeOther = &r.CategoryBreakdown[i]
		}
	}
	require.NotNil(t, incomeOther)
	assert.Equal(t, "150", incomeOther.Total.String())
	assert.Equal(t, 2, incomeOther.Count)
}

func TestUpdate_RevalidaYNotFound(t *testing.T) {
	l, _ := newLedger()
	tx := record(t, l, entity.TransactionTypeIncome, entity.TransactionStatusPaid, 100, time.Now())

	zero := decimal.Zero
	_, err := l.Update(context.Background(), companyID, tx.ID, dto.UpdateTransactionRequest{Amount: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	notes := "ajustado"
	resp, err := l.Update(context.Background(), companyID, tx.ID, dto.UpdateTransactionRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "ajustado", resp.Notes)

	_, err = l.Update(context.Background(), companyID, "no-existe", dto.UpdateTransactionRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_Y_OtraEmpresa(t *testing.T) {
	l, _ := newLedger()
	tx := record(t, l, entity.TransactionTypeIncome, entity.TransactionStatusPaid, 100, time.Now())

	_, err := l.Get(context.Background(), "otra-empresa", tx.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "las transacciones no se ven entre empresas")

	require.NoError(t, l.Delete(context.Background(), companyID, tx.ID))
	_, err = l.Get(context.Background(), companyID, tx.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
