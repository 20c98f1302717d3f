package inventory

import "github.com/jhoicas/eventos-erp/internal/domain/entity"

// ApplyOperation calcula la nueva cantidad de un producto (servicio de dominio).
//
//	add:      actual + cantidad
//	subtract: max(0, actual - cantidad); el déficit se descarta sin error
//	set:      cantidad (valor absoluto)
//
// Operaciones desconocidas dejan la cantidad sin cambios.
func ApplyOperation(current int, op string, amount int) int {
	var next int
	switch op {
	case entity.StockOperationAdd:
		next = current + amount
	case entity.StockOperationSubtract:
		next = current - amount
	case entity.StockOperationSet:
		next = amount
	default:
		return current
	}
	if next < 0 {
		return 0
	}
	return next
}
