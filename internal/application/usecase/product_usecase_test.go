package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/usecase"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/infrastructure/memory"
)

const (
	companyID = "company-1"
	userID    = "user-1"
)

func newProductUseCase() *usecase.ProductUseCase {
	s := memory.NewStore()
	return usecase.NewProductUseCase(memory.NewProductRepository(s), memory.NewCompanyRepository(s), nil, nil, zerolog.Nop())
}

func createProduct(t *testing.T, uc *usecase.ProductUseCase, sku, name string, cost, qty int) *dto.ProductResponse {
	t.Helper()
	p, err := uc.Create(context.Background(), companyID, dto.CreateProductRequest{
		SKU: sku, Name: name, Category: entity.ProductCategoryElectronics,
		Cost: decimal.NewFromInt(int64(cost)), Price: decimal.NewFromInt(int64(cost * 2)), Quantity: qty,
	})
	require.NoError(t, err)
	return p
}

func TestProductCreate_NormalizaSKUYDefaults(t *testing.T) {
	uc := newProductUseCase()
	p, err := uc.Create(context.Background(), companyID, dto.CreateProductRequest{
		SKU: "  mic-01 ", Name: " Micrófono ", Quantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "MIC-01", p.SKU)
	assert.Equal(t, "Micrófono", p.Name)
	assert.Equal(t, entity.ProductCategoryOther, p.Category)
	assert.Equal(t, entity.DefaultMinStock, p.MinStock)
	assert.True(t, p.IsLowStock)
}

func TestProductCreate_SKUDuplicadoSinDistinguirMayusculas(t *testing.T) {
	uc := newProductUseCase()
	createProduct(t, uc, "SPK-1", "Parlante", 100, 3)

	_, err := uc.Create(context.Background(), companyID, dto.CreateProductRequest{SKU: "spk-1", Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(context.Background(), "otra-empresa", dto.CreateProductRequest{SKU: "spk-1", Name: "Otro"})
	assert.NoError(t, err, "el SKU es único solo dentro de la empresa")
}

func TestProductCreate_Validaciones(t *testing.T) {
	uc := newProductUseCase()
	_, err := uc.Create(context.Background(), companyID, dto.CreateProductRequest{SKU: "X", Name: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), companyID, dto.CreateProductRequest{SKU: "X", Name: "x", Category: "food"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductSearch_SinTildesYMinimo(t *testing.T) {
	uc := newProductUseCase()
	createProduct(t, uc, "CAN-1", "Cañón de luz", 50, 4)
	createProduct(t, uc, "MES-1", "Mesa plegable", 20, 10)

	out, err := uc.Search(context.Background(), companyID, "canon")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "CAN-1", out[0].SKU)

	out, err = uc.Search(context.Background(), companyID, "c")
	require.NoError(t, err)
	assert.Empty(t, out, "menos de 2 caracteres no busca")
}

func TestProductList_FiltrosYOrden(t *testing.T) {
	uc := newProductUseCase()
	createProduct(t, uc, "A", "Alfa", 10, 1)
	createProduct(t, uc, "B", "Beta", 10, 50)

	res, err := uc.List(context.Background(), companyID, dto.ProductListQuery{LowStock: true})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "A", res.Items[0].SKU)

	res, err = uc.List(context.Background(), companyID, dto.ProductListQuery{SortBy: "quantity", SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "B", res.Items[0].SKU)

	_, err = uc.List(context.Background(), companyID, dto.ProductListQuery{SortBy: "color"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductReport_ValorYTop(t *testing.T) {
	uc := newProductUseCase()
	for i, sku := range []string{"P1", "P2", "P3", "P4", "P5", "P6"} {
		createProduct(t, uc, sku, "Producto "+sku, 10, (i+1)*10)
	}
	r, err := uc.Report(context.Background(), companyID)
	require.NoError(t, err)
	assert.Equal(t, 6, r.TotalProducts)
	assert.Equal(t, "2100", r.TotalValue.String())
	require.Len(t, r.TopProducts, 5)
	assert.Equal(t, "P6", r.TopProducts[0].SKU)
	require.Len(t, r.CategoryBreakdown, 1)
	assert.Equal(t, 6, r.CategoryBreakdown[0].Count)
}

func TestProductUpdateYDelete(t *testing.T) {
	uc := newProductUseCase()
	p := createProduct(t, uc, "A", "Alfa", 10, 1)

	name := "Alfa 2"
	upd, err := uc.Update(context.Background(), companyID, p.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alfa 2", upd.Name)
	assert.Equal(t, 1, upd.Quantity, "la cantidad no cambia por update")

	require.NoError(t, uc.Delete(context.Background(), companyID, p.ID))
	_, err = uc.GetByID(context.Background(), companyID, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductReportPDF_SinGenerador(t *testing.T) {
	_, _, err := newProductUseCase().ReportPDF(context.Background(), companyID)
	assert.Error(t, err)
}
