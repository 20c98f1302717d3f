package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/finance"
)

// FinanceHandler libro de transacciones e informes financieros.
type FinanceHandler struct {
	ledger *finance.Ledger
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(ledger *finance.Ledger) *FinanceHandler {
	return &FinanceHandler{ledger: ledger}
}

// Create godoc
// @Summary      Registrar transacción
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "Datos de la transacción"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/finance [post]
func (h *FinanceHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ledger.Record(c.Context(), companyID, GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar transacciones
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "income, expense"
// @Param        category    query  string  false  "Categoría"
// @Param        status      query  string  false  "pending, paid, cancelled"
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance [get]
func (h *FinanceHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	start, end, err := period(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.ledger.List(c.Context(), companyID, dto.TransactionListQuery{
		Type:      c.Query("type"),
		Category:  c.Query("category"),
		Status:    c.Query("status"),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener transacción
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finance/{id} [get]
func (h *FinanceHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.ledger.Get(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar transacción
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la transacción"
// @Param        body  body  dto.UpdateTransactionRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/finance/{id} [put]
func (h *FinanceHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.UpdateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ledger.Update(c.Context(), companyID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar transacción
// @Tags         finance
// @Security     Bearer
// @Param        id   path  string  true  "ID de la transacción"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finance/{id} [delete]
func (h *FinanceHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	if err := h.ledger.Delete(c.Context(), companyID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Balance godoc
// @Summary      Balance del período
// @Description  Solo transacciones pagadas. Sin fechas considera todo el historial.
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.BalanceDTO
// @Router       /api/finance/balance [get]
func (h *FinanceHandler) Balance(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	start, end, err := period(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.ledger.CalculateBalance(c.Context(), companyID, start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte financiero
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.FinanceReportDTO
// @Router       /api/finance/report [get]
func (h *FinanceHandler) Report(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	start, end, err := period(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.ledger.Report(c.Context(), companyID, start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Projection godoc
// @Summary      Proyección de flujo de caja
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        months  query  int  false  "Meses a proyectar"  default(6)
// @Success      200  {object}  dto.ProjectionDTO
// @Router       /api/finance/projection [get]
func (h *FinanceHandler) Projection(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.ledger.CalculateProjection(c.Context(), companyID, c.QueryInt("months", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Recurring godoc
// @Summary      Transacciones recurrentes
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/finance/recurring [get]
func (h *FinanceHandler) Recurring(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.ledger.Recurring(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// period lee start_date y end_date; end_date sin hora cubre el día completo.
func period(c *fiber.Ctx) (start, end *time.Time, err error) {
	if start, err = queryDate(c, "start_date", false); err != nil {
		return nil, nil, err
	}
	if end, err = queryDate(c, "end_date", true); err != nil {
		return nil, nil, err
	}
	return start, end, nil
}
