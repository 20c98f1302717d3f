package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/eventos-erp/internal/domain/entity"
)

// Formas JSONB de las listas embebidas. Los montos viajan como string decimal.

type permissionsJSON struct {
	Tasks   bool `json:"tasks"`
	Stock   bool `json:"stock"`
	Finance bool `json:"finance"`
	HR      bool `json:"hr"`
}

type lineItemJSON struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

type staffJSON struct {
	EmployeeID string          `json:"employee_id"`
	Role       string          `json:"role"`
	Payment    decimal.Decimal `json:"payment"`
}

type expenseJSON struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
}

type emergencyContactJSON struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

func encodePermissions(p entity.Permissions) ([]byte, error) {
	return json.Marshal(permissionsJSON{Tasks: p.Tasks, Stock: p.Stock, Finance: p.Finance, HR: p.HR})
}

func decodePermissions(raw []byte) (entity.Permissions, error) {
	var p permissionsJSON
	if len(raw) == 0 {
		return entity.Permissions{}, nil
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return entity.Permissions{}, fmt.Errorf("decode permissions: %w", err)
	}
	return entity.Permissions{Tasks: p.Tasks, Stock: p.Stock, Finance: p.Finance, HR: p.HR}, nil
}

func encodeEventLists(ev *entity.Event) (items, staff, expenses []byte, err error) {
	it := make([]lineItemJSON, 0, len(ev.Items))
	for _, x := range ev.Items {
		it = append(it, lineItemJSON{ProductID: x.ProductID, Quantity: x.Quantity, UnitCost: x.UnitCost})
	}
	st := make([]staffJSON, 0, len(ev.Staff))
	for _, x := range ev.Staff {
		st = append(st, staffJSON{EmployeeID: x.EmployeeID, Role: x.Role, Payment: x.Payment})
	}
	ex := make([]expenseJSON, 0, len(ev.Expenses))
	for _, x := range ev.Expenses {
		ex = append(ex, expenseJSON{Description: x.Description, Amount: x.Amount, Category: x.Category})
	}
	if items, err = json.Marshal(it); err != nil {
		return nil, nil, nil, fmt.Errorf("encode items: %w", err)
	}
	if staff, err = json.Marshal(st); err != nil {
		return nil, nil, nil, fmt.Errorf("encode staff: %w", err)
	}
	if expenses, err = json.Marshal(ex); err != nil {
		return nil, nil, nil, fmt.Errorf("encode expenses: %w", err)
	}
	return items, staff, expenses, nil
}

func decodeEventLists(ev *entity.Event, items, staff, expenses []byte) error {
	var it []lineItemJSON
	var st []staffJSON
	var ex []expenseJSON
	if len(items) > 0 {
		if err := json.Unmarshal(items, &it); err != nil {
			return fmt.Errorf("decode items: %w", err)
		}
	}
	if len(staff) > 0 {
		if err := json.Unmarshal(staff, &st); err != nil {
			return fmt.Errorf("decode staff: %w", err)
		}
	}
	if len(expenses) > 0 {
		if err := json.Unmarshal(expenses, &ex); err != nil {
			return fmt.Errorf("decode expenses: %w", err)
		}
	}
	ev.Items = make([]entity.LineItem, 0, len(it))
	for _, x := range it {
		ev.Items = append(ev.Items, entity.LineItem{ProductID: x.ProductID, Quantity: x.Quantity, UnitCost: x.UnitCost})
	}
	ev.Staff = make([]entity.StaffAssignment, 0, len(st))
	for _, x := range st {
		ev.Staff = append(ev.Staff, entity.StaffAssignment{EmployeeID: x.EmployeeID, Role: x.Role, Payment: x.Payment})
	}
	ev.Expenses = make([]entity.Expense, 0, len(ex))
	for _, x := range ex {
		ev.Expenses = append(ev.Expenses, entity.Expense{Description: x.Description, Amount: x.Amount, Category: x.Category})
	}
	return nil
}

func encodeEmergencyContact(c entity.EmergencyContact) ([]byte, error) {
	return json.Marshal(emergencyContactJSON{Name: c.Name, Phone: c.Phone, Relationship: c.Relationship})
}

func decodeEmergencyContact(raw []byte) (entity.EmergencyContact, error) {
	var c emergencyContactJSON
	if len(raw) == 0 {
		return entity.EmergencyContact{}, nil
	}
	if err := json.Unmarshal(raw, &c); err != nil {
		return entity.EmergencyContact{}, fmt.Errorf("decode emergency contact: %w", err)
	}
	return entity.EmergencyContact{Name: c.Name, Phone: c.Phone, Relationship: c.Relationship}, nil
}
