package entity

import "time"

// Operaciones de ajuste manual de stock.
const (
	StockOperationAdd      = "add"
	StockOperationSubtract = "subtract"
	StockOperationSet      = "set"
)

// Tipos de movimiento registrados en la bitácora de stock.
const (
	MovementTypeAdd         = "add"
	MovementTypeSubtract    = "subtract"
	MovementTypeSet         = "set"
	MovementTypeEventDeduct = "event_deduct"
	MovementTypeEventReturn = "event_return"
)

// IsValidStockOperation informa si la operación de ajuste es conocida.
func IsValidStockOperation(op string) bool {
	switch op {
	case StockOperationAdd, StockOperationSubtract, StockOperationSet:
		return true
	}
	return false
}

// StockAdjustment resultado de aplicar una operación sobre la cantidad de un producto.
type StockAdjustment struct {
	ProductID   string
	OldQuantity int
	NewQuantity int
	Operation   string
}

// StockMovement registro de auditoría de un cambio de cantidad.
// Reference apunta al evento cuando el cambio lo originó un evento.
type StockMovement struct {
	ID          string
	CompanyID   string
	ProductID   string
	Type        string
	Quantity    int // cantidad solicitada
	OldQuantity int
	NewQuantity int
	Reference   string
	CreatedBy   string
	CreatedAt   time.Time
}
