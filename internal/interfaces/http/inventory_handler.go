package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/inventory"
)

// InventoryHandler ajustes de stock, bitácora de movimientos y reposición.
type InventoryHandler struct {
	ledger        *inventory.StockLedger
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.StockLedger, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, replenishment: replenishment}
}

// Adjust godoc
// @Summary      Ajustar stock
// @Description  add suma, subtract resta sin bajar de 0, set fija la cantidad. Cada ajuste queda en la bitácora.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "operation, quantity"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/adjust [patch]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ledger.Adjust(c.Context(), inventory.AdjustInput{
		CompanyID: companyID,
		UserID:    GetUserID(c),
		ProductID: c.Params("id"),
		Operation: in.Operation,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return productError(c, err)
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Bitácora de movimientos del producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var page dto.MovementPage
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limit y offset deben ser enteros"})
	}
	page.Normalize()
	out, err := h.ledger.ListMovements(c.Context(), companyID, c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return productError(c, err)
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo su mínimo considerando la demanda de eventos planificados de los próximos 30 días.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock/replenishment [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	list, err := h.replenishment.GenerateReplenishmentList(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
