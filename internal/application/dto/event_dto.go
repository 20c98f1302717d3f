package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemDTO producto consumido por el evento.
type LineItemDTO struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// StaffAssignmentDTO persona asignada al evento.
type StaffAssignmentDTO struct {
	EmployeeID string          `json:"employee_id"`
	Role       string          `json:"role"`
	Payment    decimal.Decimal `json:"payment"`
}

// ExpenseDTO gasto adicional del evento.
type ExpenseDTO struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
}

// CreateEventRequest entrada para crear un evento.
type CreateEventRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	StartDate   time.Time            `json:"start_date"`
	EndDate     time.Time            `json:"end_date"`
	Location    string               `json:"location"`
	Status      string               `json:"status"`
	Items       []LineItemDTO        `json:"items"`
	Staff       []StaffAssignmentDTO `json:"staff"`
	Expenses    []ExpenseDTO         `json:"expenses"`
	Revenue     decimal.Decimal      `json:"revenue"`
}

// UpdateEventRequest parche de un evento: los campos nil no cambian; las listas no nil
// reemplazan la lista completa.
type UpdateEventRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	StartDate   *time.Time           `json:"start_date"`
	EndDate     *time.Time           `json:"end_date"`
	Location    *string              `json:"location"`
	Status      *string              `json:"status"`
	Items       []LineItemDTO        `json:"items"`
	Staff       []StaffAssignmentDTO `json:"staff"`
	Expenses    []ExpenseDTO         `json:"expenses"`
	Revenue     *decimal.Decimal     `json:"revenue"`
}

// EventResponse evento con todos los campos derivados recalculados.
type EventResponse struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	Description    string               `json:"description"`
	StartDate      time.Time            `json:"start_date"`
	EndDate        time.Time            `json:"end_date"`
	Location       string               `json:"location"`
	Status         string               `json:"status"`
	Items          []LineItemDTO        `json:"items"`
	Staff          []StaffAssignmentDTO `json:"staff"`
	Expenses       []ExpenseDTO         `json:"expenses"`
	Revenue        decimal.Decimal      `json:"revenue"`
	TotalItemsCost decimal.Decimal      `json:"total_items_cost"`
	TotalStaffCost decimal.Decimal      `json:"total_staff_cost"`
	TotalExpenses  decimal.Decimal      `json:"total_expenses"`
	TotalCost      decimal.Decimal      `json:"total_cost"`
	Profit         decimal.Decimal      `json:"profit"`
	ProfitMargin   string               `json:"profit_margin"`
	CreatedBy      string               `json:"created_by"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
	// SkippedItems productos no encontrados al aplicar efectos de stock en esta operación.
	SkippedItems []string `json:"skipped_items,omitempty"`
}

// EventReportDTO respuesta de GET /api/events/report.
type EventReportDTO struct {
	TotalEvents         int             `json:"total_events"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalCost           decimal.Decimal `json:"total_cost"`
	TotalProfit         decimal.Decimal `json:"total_profit"`
	EventsByStatus      map[string]int  `json:"events_by_status"`
	UpcomingEvents      int             `json:"upcoming_events"`
	AverageProfitMargin string          `json:"average_profit_margin"`
}

// StaffOptionDTO usuario seleccionable como personal del evento.
type StaffOptionDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// EventFormDataDTO datos auxiliares para el formulario de eventos.
type EventFormDataDTO struct {
	Products []ProductSummary `json:"products"`
	Staff    []StaffOptionDTO `json:"staff"`
}
