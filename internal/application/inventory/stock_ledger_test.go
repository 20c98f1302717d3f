package inventory_test

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

	"github.com/jhoicas/eventos-erp/internal/application/inventory"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/infrastructure/memory"
)

const companyID = "company-1"

type stockFixture struct {
	ledger        *inventory.StockLedger
	replenishment *inventory.ReplenishmentUseCase
	products      *memory.ProductRepo
	events        *memory.EventRepo
}

func newStockFixture(t *testing.T) *stockFixture {
	t.Helper()
	s := memory.NewStore()
	products := memory.NewProductRepository(s)
	events := memory.NewEventRepository(s)
	return &stockFixture{
		ledger: inventory.NewStockLedger(memory.NewTxRunner(s), products, memory.NewStockMovementRepository(s),
			nil, zerolog.Nop()),
		replenishment: inventory.NewReplenishmentUseCase(products, events),
		products:      products,
		events:        events,
	}
}

func (f *stockFixture) addProduct(t *testing.T, id string, qty, minStock int, cost int64) {
	t.Helper()
	require.NoError(t, f.products.Create(context.Background(), &entity.Product{
		ID: id, CompanyID: companyID, SKU: "SKU-" + id, Name: "Producto " + id,
		Category: entity.ProductCategoryOther, Cost: decimal.NewFromInt(cost), Quantity: qty,
		MinStock: minStock, IsActive: true,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_Operaciones(t *testing.T) {
	f := newStockFixture(t)
	f.addProduct(t, "p1", 10, 2, 5)
	ctx := context.Background()

	steps := []struct {
		op       string
		qty      int
		old, new int
	}{
		{entity.StockOperationAdd, 5, 10, 15},
		{entity.StockOperationSubtract, 20, 15, 0},
		{entity.StockOperationSet, 7, 0, 7},
	}
	for _, s := range steps {
		res, err := f.ledger.Adjust(ctx, inventory.AdjustInput{
			CompanyID: companyID, UserID: "u1", ProductID: "p1", Operation: s.op, Quantity: s.qty,
		})
		require.NoError(t, err, s.op)
		assert.Equal(t, s.old, res.OldQuantity, s.op)
		assert.Equal(t, s.new, res.NewQuantity, s.op)
	}

	movs, err := f.ledger.ListMovements(ctx, companyID, "p1", 50, 0)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	assert.Equal(t, entity.MovementTypeSet, movs[0].Type, "más recientes primero")
}

func TestAdjust_Errores(t *testing.T) {
	f := newStockFixture(t)
	f.addProduct(t, "p1", 10, 2, 5)
	ctx := context.Background()

	_, err := f.ledger.Adjust(ctx, inventory.AdjustInput{CompanyID: companyID, ProductID: "p1", Operation: "multiply", Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.ledger.Adjust(ctx, inventory.AdjustInput{CompanyID: companyID, ProductID: "p1", Operation: entity.StockOperationAdd, Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.ledger.Adjust(ctx, inventory.AdjustInput{CompanyID: companyID, ProductID: "nope", Operation: entity.StockOperationAdd, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.ledger.Adjust(ctx, inventory.AdjustInput{CompanyID: "otra", ProductID: "p1", Operation: entity.StockOperationAdd, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound, "no se ajustan productos de otra empresa")

	_, err = f.ledger.ListMovements(ctx, companyID, "nope", 10, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

type failingCache struct{ calls int }

func (c *failingCache) Invalidate(context.Context, string) error {
	c.calls++
	return errors.New("redis caído")
}

func TestAdjust_FalloDeCacheSoloAdvierte(t *testing.T) {
	var buf bytes.Buffer
	s := memory.NewStore()
	products := memory.NewProductRepository(s)
	c := &failingCache{}
	ledger := inventory.NewStockLedger(memory.NewTxRunner(s), products, memory.NewStockMovementRepository(s),
		c, zerolog.New(&buf))
	require.NoError(t, products.Create(context.Background(), &entity.Product{
		ID: "p1", CompanyID: companyID, SKU: "SKU-P1", Name: "Producto", Quantity: 3, MinStock: 1, IsActive: true,
	}))

	res, err := ledger.Adjust(context.Background(), inventory.AdjustInput{
		CompanyID: companyID, UserID: "u1", ProductID: "p1", Operation: entity.StockOperationAdd, Quantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, res.NewQuantity)
	assert.Equal(t, 1, c.calls)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "no se pudo invalidar la caché del dashboard")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reposición
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateReplenishmentList(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()
	f.addProduct(t, "sobrado", 100, 5, 1)
	f.addProduct(t, "bajo", 3, 5, 10)
	f.addProduct(t, "demandado", 12, 5, 2)

	start := time.Now().Add(72 * time.Hour)
	require.NoError(t, f.events.Create(ctx, &entity.Event{
		ID: "ev1", CompanyID: companyID, Title: "Congreso", Location: "x", Status: entity.EventStatusPlanned,
		StartDate: start, EndDate: start.Add(time.Hour),
		Items: []entity.LineItem{{ProductID: "demandado", Quantity: 10}},
	}))
	require.NoError(t, f.events.Create(ctx, &entity.Event{
		ID: "ev2", CompanyID: companyID, Title: "Ya confirmado", Location: "x", Status: entity.EventStatusConfirmed,
		StartDate: start, EndDate: start.Add(time.Hour),
		Items: []entity.LineItem{{ProductID: "sobrado", Quantity: 99}},
	}))

	list, err := f.replenishment.GenerateReplenishmentList(ctx, companyID)
	require.NoError(t, err)
	require.Len(t, list, 2, "los confirmados ya descontaron stock y no suman demanda")

	// demandado: déficit 5+10-12 = 3; bajo: 5+0-3 = 2
	assert.Equal(t, "demandado", list[0].ProductID)
	assert.Equal(t, 1, list[0].Priority)
	assert.Equal(t, 10, list[0].PendingDemand)
	assert.Equal(t, 20, list[0].IdealStock)
	assert.Equal(t, 8, list[0].SuggestedOrderQty)
	assert.Equal(t, "16", list[0].EstimatedOrderCost.String())

	assert.Equal(t, "bajo", list[1].ProductID)
	assert.Equal(t, 7, list[1].SuggestedOrderQty)
}
