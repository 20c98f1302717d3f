package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/application/events"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

// EventHandler maneja los eventos. Las escrituras pasan por el orquestador,
// que aplica los efectos de stock y las transacciones en la misma operación.
type EventHandler struct {
	orch *events.Orchestrator
}

// NewEventHandler construye el handler.
func NewEventHandler(orch *events.Orchestrator) *EventHandler {
	return &EventHandler{orch: orch}
}

// Create godoc
// @Summary      Crear evento
// @Description  Registra el ingreso y los gastos en finanzas; si nace confirmado descuenta el stock de sus líneas.
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEventRequest  true  "Datos del evento"
// @Success      201   {object}  dto.EventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.CreateEventRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orch.Create(c.Context(), companyID, GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener evento
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del evento"
// @Success      200  {object}  dto.EventResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id} [get]
func (h *EventHandler) Get(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.orch.Get(c.Context(), companyID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar eventos
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "planned, confirmed, in_progress, completed, cancelled"
// @Param        start_date  query  string  false  "Inicio desde (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Inicio hasta (YYYY-MM-DD)"
// @Success      200  {array}   dto.EventResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/events [get]
func (h *EventHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	from, to, err := period(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.orch.List(c.Context(), companyID, repository.EventFilter{
		Status: c.Query("status"),
		From:   from,
		To:     to,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar evento
// @Description  Pasar a confirmed descuenta stock; salir de confirmed hacia cancelled lo devuelve.
// @Tags         events
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del evento"
// @Param        body  body  dto.UpdateEventRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.EventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/events/{id} [put]
func (h *EventHandler) Update(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.UpdateEventRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orch.Update(c.Context(), companyID, GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar evento
// @Description  Elimina también las transacciones generadas por el evento.
// @Tags         events
// @Security     Bearer
// @Param        id   path  string  true  "ID del evento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/events/{id} [delete]
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	if err := h.orch.Delete(c.Context(), companyID, GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Report godoc
// @Summary      Reporte de eventos
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EventReportDTO
// @Router       /api/events/report [get]
func (h *EventHandler) Report(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.orch.Report(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// FormData godoc
// @Summary      Datos para el formulario de eventos
// @Tags         events
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EventFormDataDTO
// @Router       /api/events/form-data [get]
func (h *EventHandler) FormData(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.orch.FormData(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
