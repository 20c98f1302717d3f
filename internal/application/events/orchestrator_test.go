package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/events"
	"github.com/jhoicas/eventos-erp/internal/application/finance"
	"github.com/jhoicas/eventos-erp/internal/application/inventory"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
	"github.com/jhoicas/eventos-erp/internal/infrastructure/memory"
)

const (
	companyID = "company-1"
	userID    = "user-1"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	orch      *events.Orchestrator
	products  *memory.ProductRepo
	txs       *memory.TransactionRepo
	movements *memory.StockMovementRepo
}

func newFixture(t *testing.T, opts events.Options) *fixture {
	t.Helper()
	s := memory.NewStore()
	products := memory.NewProductRepository(s)
	movements := memory.NewStockMovementRepository(s)
	txs := memory.NewTransactionRepository(s)
	runner := memory.NewTxRunner(s)
	log := zerolog.Nop()

	stock := inventory.NewStockLedger(runner, products, movements, nil, log)
	ledger := finance.NewLedger(txs, nil, zerolog.Nop())
	orch := events.NewOrchestrator(runner, memory.NewEventRepository(s), products, memory.NewUserRepository(s),
		stock, ledger, nil, opts, log)
	return &fixture{orch: orch, products: products, txs: txs, movements: movements}
}

func (f *fixture) addProduct(t *testing.T, id string, qty int) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.products.Create(context.Background(), &entity.Product{
		ID: id, CompanyID: companyID, SKU: "SKU-" + id, Name: "Producto " + id,
		Category: entity.ProductCategoryOther, Cost: decimal.NewFromInt(10), Price: decimal.NewFromInt(20),
		Quantity: qty, MinStock: 1, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}))
}

func (f *fixture) quantity(t *testing.T, id string) int {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), companyID, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func (f *fixture) transactions(t *testing.T) []*entity.Transaction {
	t.Helper()
	list, err := f.txs.List(context.Background(), companyID, repository.TransactionFilter{})
	require.NoError(t, err)
	return list
}

func baseEvent(status string, items ...dto.LineItemDTO) dto.CreateEventRequest {
	start := time.Now().Add(48 * time.Hour)
	return dto.CreateEventRequest{
		Title:     "Boda García",
		StartDate: start,
		EndDate:   start.Add(6 * time.Hour),
		Location:  "Salón Central",
		Status:    status,
		Items:     items,
		Expenses: []dto.ExpenseDTO{
			{Description: "Flete", Amount: decimal.NewFromInt(150), Category: entity.ExpenseCategoryTransport},
			{Description: "Flores", Amount: decimal.NewFromInt(80), Category: entity.ExpenseCategoryDecoration},
		},
		Revenue: decimal.NewFromInt(1000),
	}
}

func item(productID string, qty int) dto.LineItemDTO {
	return dto.LineItemDTO{ProductID: productID, Quantity: qty, UnitCost: decimal.NewFromInt(10)}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_PlaneadoGeneraPostingsSinTocarStock(t *testing.T) {
	f := newFixture(t, events.Options{})
	f.addProduct(t, "p1", 10)

	ev, err := f.orch.Create(context.Background(), companyID, userID, baseEvent("", item("p1", 3)))
	require.NoError(t, err)

	assert.Equal(t, entity.EventStatusPlanned, ev.Status, "el estado por defecto es planned")
	assert.Equal(t, 10, f.quantity(t, "p1"), "un evento planeado no descuenta stock")

	txs := f.transactions(t)
	require.Len(t, txs, 3, "dos gastos y un ingreso")
	var income, expense int
	for _, tx := range txs {
		assert.Equal(t, ev.ID, tx.Reference)
		assert.Equal(t, entity.TransactionStatusPaid, tx.Status)
		if tx.Type == entity.TransactionTypeIncome {
			income++
			assert.True(t, tx.Amount.Equal(decimal.NewFromInt(1000)))
			assert.Equal(t, entity.TransactionCategorySales, tx.Category)
		} else {
			expense++
		}
	}
	assert.Equal(t, 1, income)
	assert.Equal(t, 2, expense)
}

func TestCreate_ConfirmadoDescuentaYRecortaEnCero(t *testing.T) {
	f := newFixture(t, events.Options{})
	f.addProduct(t, "p1", 10)
	f.addProduct(t, "p2", 2)

	ev, err := f.orch.Create(context.Background(), companyID, userID,
		baseEvent(entity.EventStatusConfirmed, item("p1", 4), item("p2", 5), item("fantasma", 1)))
	require.NoError(t, err)

	assert.Equal(t, 6, f.quantity(t, "p1"))
	assert.Equal(t, 0, f.quantity(t, "p2"), "la deducción nunca deja stock negativo")
	assert.Equal(t, []string{"fantasma"}, ev.SkippedItems, "los productos inexistentes se omiten")

	movs, err := f.movements.ListByReference(context.Background(), companyID, ev.ID)
	require.NoError(t, err)
	assert.Len(t, movs, 2)
}

func TestCreate_SinIngresoNiGastosNoGeneraTransacciones(t *testing.T) {
	f := newFixture(t, events.Options{})
	in := baseEvent("")
	in.Revenue = decimal.Zero
	in.Expenses = []dto.ExpenseDTO{{Description: "Cortesía", Amount: decimal.Zero, Category: entity.ExpenseCategoryOther}}

	_, err := f.orch.Create(context.Background(), companyID, userID, in)
	require.NoError(t, err)
	assert.Empty(t, f.transactions(t))
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t, events.Options{})

	in := baseEvent("")
	in.EndDate = in.StartDate.Add(-time.Hour)
	_, err := f.orch.Create(context.Background(), companyID, userID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "end_date anterior a start_date")

	in = baseEvent("desconocido")
	_, err = f.orch.Create(context.Background(), companyID, userID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = baseEvent("", item("p1", 0))
	_, err = f.orch.Create(context.Background(), companyID, userID, in)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "items[0].quantity", verr.Field)

	assert.Empty(t, f.transactions(t), "una validación fallida no deja postings")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update: transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ConfirmarYCancelarDevuelveStock(t *testing.T) {
	f := newFixture(t, events.Options{})
	f.addProduct(t, "p1", 10)
	ctx := context.Background()

	ev, err := f.orch.Create(ctx, companyID, userID, baseEvent("", item("p1", 3)))
	require.NoError(t, err)

	confirmed := entity.EventStatusConfirmed
	_, err = f.orch.Update(ctx, companyID, userID, ev.ID, dto.UpdateEventRequest{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, 7, f.quantity(t, "p1"))

	// Reconfirmar no vuelve a descontar
	_, err = f.orch.Update(ctx, companyID, userID, ev.ID, dto.UpdateEventRequest{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, 7, f.quantity(t, "p1"))

	cancelled := entity.EventStatusCancelled
	_, err = f.orch.Update(ctx, companyID, userID, ev.ID, dto.UpdateEventRequest{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, 10, f.quantity(t, "p1"), "confirmed → cancelled devuelve las líneas")

	assert.Len(t, f.transactions(t), 3, "las transiciones no generan nuevos postings")
}

func TestUpdate_CancelarDesdePlaneadoNoDevuelve(t *testing.T) {
	f := newFixture(t, events.Options{})
	f.addProduct(t, "p1", 10)
	ctx := context.Background()

	ev, err := f.orch.Create(ctx, companyID, userID, baseEvent("", item("p1", 3)))
	require.NoError(t, err)
	cancelled := entity.EventStatusCancelled
	_, err = f.orch.Update(ctx, companyID, userID, ev.ID, dto.UpdateEventRequest{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, 10, f.quantity(t, "p1"))
}

func TestUpdate_UsaLineasParcheadas(t *testing.T) {
	f := newFixture(t, events.Options{})
	f.addProduct(t, "p1", 10)
	ctx := context.Background()

	ev, err := f.orch.Create(ctx, companyID, userID, baseEvent("", item("p1", 3)))
	require.NoError(t, err)

	confirmed := entity.EventStatusConfirmed
	_, err = f.orch.Update(ctx, companyID, userID, ev.ID, dto.UpdateEventRequest{
		Status: &confirmed,
		Items:  []dto.LineItemDTO{item("p1", 5)},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, f.quantity(t, "p1"))
}

func TestUpdate_Inexistente(t *testing.T) {
	f := newFixture(t, events.Options{})
	title := "x"
	_, err := f.orch.Update(context.Background(), companyID, userID, "no-existe", dto.UpdateEventRequest{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_EliminaTransaccionesSinDevolverStock(t *testing.T) {
	f := newFixture(t, events.Options{})
	f.addProduct(t, "p1", 10)
	ctx := context.Background()

	ev, err := f.orch.Create(ctx, companyID, userID, baseEvent(entity.EventStatusConfirmed, item("p1", 4)))
	require.NoError(t, err)
	require.Len(t, f.transactions(t), 3)

	require.NoError(t, f.orch.Delete(ctx, companyID, userID, ev.ID))

	assert.Empty(t, f.transactions(t), "todas las transacciones del evento se eliminan")
	assert.Equal(t, 6, f.quantity(t, "p1"), "por defecto el stock no se devuelve")

	_, err = f.orch.Get(ctx, companyID, ev.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_ConDevolucionHabilitada(t *testing.T) {
	f := newFixture(t, events.Options{ReturnStockOnDelete: true})
	f.addProduct(t, "p1", 10)
	ctx := context.Background()

	ev, err := f.orch.Create(ctx, companyID, userID, baseEvent(entity.EventStatusConfirmed, item("p1", 4)))
	require.NoError(t, err)
	require.NoError(t, f.orch.Delete(ctx, companyID, userID, ev.ID))
	assert.Equal(t, 10, f.quantity(t, "p1"))
}

func TestDelete_NoTocaTransaccionesAjenas(t *testing.T) {
	f := newFixture(t, events.Options{})
	ctx := context.Background()
	require.NoError(t, f.txs.Create(ctx, &entity.Transaction{
		ID: "manual", CompanyID: companyID, Type: entity.TransactionTypeExpense,
		Category: entity.TransactionCategoryRent, Description: "Alquiler", Amount: decimal.NewFromInt(500),
		Date: time.Now(), PaymentMethod: entity.PaymentMethodCash, Status: entity.TransactionStatusPaid, RecurringDay: 1,
	}))

	ev, err := f.orch.Create(ctx, companyID, userID, baseEvent(""))
	require.NoError(t, err)
	require.NoError(t, f.orch.Delete(ctx, companyID, userID, ev.ID))

	txs := f.transactions(t)
	require.Len(t, txs, 1)
	assert.Equal(t, "manual", txs[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lectura
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_CamposDerivados(t *testing.T) {
	f := newFixture(t, events.Options{})
	ctx := context.Background()
	in := baseEvent("", dto.LineItemDTO{ProductID: "p1", Quantity: 2, UnitCost: decimal.NewFromInt(25)})
	in.Staff = []dto.StaffAssignmentDTO{{EmployeeID: "e1", Role: "mesero", Payment: decimal.NewFromInt(120)}}

	created, err := f.orch.Create(ctx, companyID, userID, in)
	require.NoError(t, err)

	ev, err := f.orch.Get(ctx, companyID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "50", ev.TotalItemsCost.String())
	assert.Equal(t, "120", ev.TotalStaffCost.String())
	assert.Equal(t, "230", ev.TotalExpenses.String())
	assert.Equal(t, "400", ev.TotalCost.String())
	assert.Equal(t, "600", ev.Profit.String())
	assert.Equal(t, "60.00", ev.ProfitMargin)
}

func TestList_FiltroPorEstadoInvalido(t *testing.T) {
	f := newFixture(t, events.Options{})
	_, err := f.orch.List(context.Background(), companyID, repository.EventFilter{Status: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReport_Totales(t *testing.T) {
	f := newFixture(t, events.Options{})
	ctx := context.Background()
	_, err := f.orch.Create(ctx, companyID, userID, baseEvent(""))
	require.NoError(t, err)
	_, err = f.orch.Create(ctx, companyID, userID, baseEvent(entity.EventStatusCancelled))
	require.NoError(t, err)

	r, err := f.orch.Report(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 2, r.TotalEvents)
	assert.Equal(t, "2000", r.TotalRevenue.String())
	assert.Equal(t, 1, r.EventsByStatus[entity.EventStatusPlanned])
	assert.Equal(t, 1, r.UpcomingEvents, "los cancelados no cuentan como próximos")
}
