package dto

// MovementPage paginación de la bitácora de stock (?limit=&offset=).
type MovementPage struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Límites de la bitácora.
const (
	DefaultMovementLimit = 50
	MaxMovementLimit     = 200
)

// Normalize aplica el límite por defecto, el tope y descarta offsets negativos.
func (p *MovementPage) Normalize() {
	if p.Limit <= 0 {
		p.Limit = DefaultMovementLimit
	}
	if p.Limit > MaxMovementLimit {
		p.Limit = MaxMovementLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
