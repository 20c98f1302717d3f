package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/eventos-erp/internal/application/analytics"
	"github.com/jhoicas/eventos-erp/internal/application/dto"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetMetrics devuelve las métricas generales de la empresa.
// GET /api/dashboard/metrics
//
// Respuesta: DashboardMetricsDTO (total_events, events_this_month, upcoming_events,
// revenue_this_month, revenue_this_year, low_stock_products).
// Los ingresos salen del libro financiero (transacciones de ingreso pagadas).
func (h *DashboardHandler) GetMetrics(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token",
		})
	}

	metrics, err := h.uc.GetMetrics(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(metrics)
}

// GetRevenueChart ingresos pagados por mes de los últimos 12 meses.
// GET /api/dashboard/revenue-chart
func (h *DashboardHandler) GetRevenueChart(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	points, err := h.uc.GetRevenueChart(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(points)
}

// GetUpcomingEvents próximos eventos de los siguientes 30 días (máximo 10).
// GET /api/dashboard/upcoming-events
func (h *DashboardHandler) GetUpcomingEvents(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	list, err := h.uc.GetUpcomingEvents(c.Context(), companyID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
