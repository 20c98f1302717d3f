package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/usecase"
)

// CalendarHandler bloqueos de agenda y exportación mensual en PDF.
type CalendarHandler struct {
	uc *usecase.CalendarUseCase
}

// NewCalendarHandler construye el handler.
func NewCalendarHandler(uc *usecase.CalendarUseCase) *CalendarHandler {
	return &CalendarHandler{uc: uc}
}

// ListBlocks godoc
// @Summary      Bloqueos de agenda
// @Tags         calendar
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BlockedDateResponse
// @Router       /api/calendar/blocks [get]
func (h *CalendarHandler) ListBlocks(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.ListBlocks(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateBlock godoc
// @Summary      Bloquear período
// @Description  Falla con 409 EVENT_CONFLICT si hay eventos en el período.
// @Tags         calendar
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBlockedDateRequest  true  "title, start_date, end_date, type"
// @Success      201   {object}  dto.BlockedDateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ConflictResponse
// @Router       /api/calendar/blocks [post]
func (h *CalendarHandler) CreateBlock(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.CreateBlockedDateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateBlock(c.Context(), companyID, GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RemoveBlock godoc
// @Summary      Eliminar bloqueo
// @Tags         calendar
// @Security     Bearer
// @Param        id   path  string  true  "ID del bloqueo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/calendar/blocks/{id} [delete]
func (h *CalendarHandler) RemoveBlock(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	if err := h.uc.RemoveBlock(c.Context(), companyID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export godoc
// @Summary      Exportar agenda mensual en PDF
// @Tags         calendar
// @Security     Bearer
// @Produce      application/pdf
// @Param        year   query  int  false  "Año (default: actual)"
// @Param        month  query  int  false  "Mes 1-12 (default: actual)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/calendar/export [get]
func (h *CalendarHandler) Export(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	b, filename, err := h.uc.ExportMonth(c.Context(), companyID, c.QueryInt("year", 0), c.QueryInt("month", 0))
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, b, filename)
}
