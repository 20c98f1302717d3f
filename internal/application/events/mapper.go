package events

import (
	"github.com/jhoicas/eventos-erp/internal/application/dto"
	"github.com/jhoicas/eventos-erp/internal/domain/entity"
)

func toLineItems(in []dto.LineItemDTO) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(in))
	for _, it := range in {
		out = append(out, entity.LineItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitCost: it.UnitCost})
	}
	return out
}

func toStaff(in []dto.StaffAssignmentDTO) []entity.StaffAssignment {
	out := make([]entity.StaffAssignment, 0, len(in))
	for _, s := range in {
		out = append(out, entity.StaffAssignment{EmployeeID: s.EmployeeID, Role: s.Role, Payment: s.Payment})
	}
	return out
}

func toExpenses(in []dto.ExpenseDTO) []entity.Expense {
	out := make([]entity.Expense, 0, len(in))
	for _, x := range in {
		cat := x.Category
		if cat == "" {
			cat = entity.ExpenseCategoryOther
		}
		out = append(out, entity.Expense{Description: x.Description, Amount: x.Amount, Category: cat})
	}
	return out
}

// ToEventResponse convierte el evento en DTO recalculando todos los campos derivados.
func ToEventResponse(ev *entity.Event) *dto.EventResponse {
	resp := &dto.EventResponse{
		ID:             ev.ID,
		Title:          ev.Title,
		Description:    ev.Description,
		StartDate:      ev.StartDate,
		EndDate:        ev.EndDate,
		Location:       ev.Location,
		Status:         ev.Status,
		Items:          make([]dto.LineItemDTO, 0, len(ev.Items)),
		Staff:          make([]dto.StaffAssignmentDTO, 0, len(ev.Staff)),
		Expenses:       make([]dto.ExpenseDTO, 0, len(ev.Expenses)),
		Revenue:        ev.Revenue,
		TotalItemsCost: ev.TotalItemsCost(),
		TotalStaffCost: ev.TotalStaffCost(),
		TotalExpenses:  ev.TotalExpenses(),
		TotalCost:      ev.TotalCost(),
		Profit:         ev.Profit(),
		ProfitMargin:   ev.ProfitMargin(),
		CreatedBy:      ev.CreatedBy,
		CreatedAt:      ev.CreatedAt,
		UpdatedAt:      ev.UpdatedAt,
	}
	for _, it := range ev.Items {
		resp.Items = append(resp.Items, dto.LineItemDTO{
			ProductID: it.ProductID, Quantity: it.Quantity, UnitCost: it.UnitCost, Subtotal: it.Subtotal(),
		})
	}
	for _, s := range ev.Staff {
		resp.Staff = append(resp.Staff, dto.StaffAssignmentDTO{EmployeeID: s.EmployeeID, Role: s.Role, Payment: s.Payment})
	}
	for _, x := range ev.Expenses {
		resp.Expenses = append(resp.Expenses, dto.ExpenseDTO{Description: x.Description, Amount: x.Amount, Category: x.Category})
	}
	return resp
}
