package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/ports"
	"github.com/jhoicas/eventos-erp/internal/domain"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
	"github.com/jhoicas/eventos-erp/pkg/textnorm"
)

const (
	searchMinLen  = 2
	searchLimit   = 10
	reportTopSize = 5
)

// ProductUseCase casos de uso CRUD y reporte de productos. La cantidad solo cambia vía el libro de stock.
type ProductUseCase struct {
	repo        repository.ProductRepository
	companyRepo repository.CompanyRepository
	pdf         ports.StockReportPDFGenerator
	cache       ports.CacheInvalidator
	log         zerolog.Logger
}

// NewProductUseCase construye el caso de uso. pdf puede ser nil si no se exporta el reporte;
// cache nil equivale a no invalidar nada.
func NewProductUseCase(
	repo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	pdf ports.StockReportPDFGenerator,
	cache ports.CacheInvalidator,
	log zerolog.Logger,
) *ProductUseCase {
	if cache == nil {
		cache = ports.NopCache{}
	}
	return &ProductUseCase{repo: repo, companyRepo: companyRepo, pdf: pdf, cache: cache, log: log}
}

// invalidate descarta las métricas en caché: alta, baja o cambio de min_stock alteran el conteo de stock bajo.
func (uc *ProductUseCase) invalidate(ctx context.Context, companyID string) {
	if err := uc.cache.Invalidate(ctx, companyID); err != nil {
		uc.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo invalidar la caché del dashboard")
	}
}

// Create crea un producto. El SKU se guarda en mayúsculas y es único por empresa (domain.ErrDuplicate).
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		SKU:         textnorm.SKU(in.SKU),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Cost:        in.Cost,
		Quantity:    in.Quantity,
		MinStock:    entity.DefaultMinStock,
		Supplier:    in.Supplier,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if product.Category == "" {
		product.Category = entity.ProductCategoryOther
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar la cantidad (se maneja vía ajustes).
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != nil {
		product.SKU = textnorm.SKU(*in.SKU)
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.Supplier != nil {
		product.Supplier = *in.Supplier
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, companyID)
	return toProductResponse(product), nil
}

// Delete elimina un producto de la empresa.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.invalidate(ctx, companyID)
	return nil
}

// List productos activos con filtros y orden.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, q dto.ProductListQuery) (*dto.ProductListResponse, error) {
	if q.Category != "" && !entity.IsValidProductCategory(q.Category) {
		return nil, domain.Invalid("category", "categoría inválida")
	}
	switch q.SortBy {
	case "", "name", "quantity", "price", "cost", "created_at":
	default:
		return nil, domain.Invalid("sort_by", "debe ser name, quantity, price, cost o created_at")
	}
	if q.SortOrder != "" && q.SortOrder != "asc" && q.SortOrder != "desc" {
		return nil, domain.Invalid("sort_order", "debe ser asc o desc")
	}
	list, err := uc.repo.List(ctx, companyID, repository.ProductFilter{
		Category:  q.Category,
		LowStock:  q.LowStock,
		Search:    strings.TrimSpace(q.Search),
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Search autocompletado por nombre o SKU. Con menos de 2 caracteres devuelve una lista vacía.
func (uc *ProductUseCase) Search(ctx context.Context, companyID, term string) ([]dto.ProductSummary, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < searchMinLen {
		return []dto.ProductSummary{}, nil
	}
	list, err := uc.repo.Search(ctx, companyID, term, searchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductSummary, 0, len(list))
	for _, p := range list {
		out = append(out, toProductSummary(p))
	}
	return out, nil
}

// Report valor del inventario activo, stock bajo, desglose por categoría y top 5 por valor.
func (uc *ProductUseCase) Report(ctx context.Context, companyID string) (*dto.StockReportDTO, error) {
	list, err := uc.repo.List(ctx, companyID, repository.ProductFilter{SortBy: "name"})
	if err != nil {
		return nil, err
	}
	report := &dto.StockReportDTO{
		TotalProducts:     len(list),
		TotalValue:        decimal.Zero,
		LowStockItems:     make([]dto.ProductSummary, 0),
		CategoryBreakdown: make([]dto.CategoryStockDTO, 0),
		TopProducts:       make([]dto.TopProductDTO, 0, reportTopSize),
		GeneratedAt:       time.Now(),
	}
	byCategory := make(map[string]*dto.CategoryStockDTO)
	top := make([]dto.TopProductDTO, 0, len(list))
	for _, p := range list {
		value := p.StockValue()
		report.TotalValue = report.TotalValue.Add(value)
		if p.IsLowStock() {
			report.LowStockItems = append(report.LowStockItems, toProductSummary(p))
		}
		c, ok := byCategory[p.Category]
		if !ok {
			c = &dto.CategoryStockDTO{Category: p.Category, TotalValue: decimal.Zero}
			byCategory[p.Category] = c
		}
		c.Count++
		c.TotalValue = c.TotalValue.Add(value)
		top = append(top, dto.TopProductDTO{ID: p.ID, SKU: p.SKU, Name: p.Name, Quantity: p.Quantity, Value: value})
	}
	for _, c := range byCategory {
		report.CategoryBreakdown = append(report.CategoryBreakdown, *c)
	}
	sort.Slice(report.CategoryBreakdown, func(i, j int) bool {
		return report.CategoryBreakdown[i].Category < report.CategoryBreakdown[j].Category
	})
	sort.SliceStable(top, func(i, j int) bool { return top[i].Value.GreaterThan(top[j].Value) })
	if len(top) > reportTopSize {
		top = top[:reportTopSize]
	}
	report.TopProducts = append(report.TopProducts, top...)
	return report, nil
}

// ReportPDF genera el reporte de inventario en PDF. Devuelve los bytes y el nombre de archivo.
func (uc *ProductUseCase) ReportPDF(ctx context.Context, companyID string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("reporte pdf: generador no configurado")
	}
	report, err := uc.Report(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("reporte pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	b, err := uc.pdf.GenerateStockReportPDF(ctx, company, report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte pdf: generación fallida: %w", err)
	}
	return b, fmt.Sprintf("inventario_%s.pdf", report.GeneratedAt.Format("20060102")), nil
}

func validateProduct(p *entity.Product) error {
	if p.SKU == "" {
		return domain.Invalid("sku", "es requerido")
	}
	if p.Name == "" {
		return domain.Invalid("name", "es requerido")
	}
	if !entity.IsValidProductCategory(p.Category) {
		return domain.Invalid("category", "categoría inválida")
	}
	if p.Price.IsNegative() {
		return domain.Invalid("price", "no puede ser negativo")
	}
	if p.Cost.IsNegative() {
		return domain.Invalid("cost", "no puede ser negativo")
	}
	if p.Quantity < 0 {
		return domain.Invalid("quantity", "no puede ser negativa")
	}
	if p.MinStock < 0 {
		return domain.Invalid("min_stock", "no puede ser negativo")
	}
	return nil
}

func toProductSummary(p *entity.Product) dto.ProductSummary {
	return dto.ProductSummary{ID: p.ID, SKU: p.SKU, Name: p.Name, Cost: p.Cost, Price: p.Price, Quantity: p.Quantity}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		CompanyID:    p.CompanyID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Price:        p.Price,
		Cost:         p.Cost,
		Quantity:     p.Quantity,
		MinStock:     p.MinStock,
		Supplier:     p.Supplier,
		IsActive:     p.IsActive,
		ProfitMargin: p.ProfitMargin(),
		IsLowStock:   p.IsLowStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
