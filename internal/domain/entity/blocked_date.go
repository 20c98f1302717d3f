package entity

import "time"

// Tipos de bloqueo de agenda.
const (
	BlockTypeVacation    = "vacation"
	BlockTypeMaintenance = "maintenance"
	BlockTypeHoliday     = "holiday"
	BlockTypeUnavailable = "unavailable"
)

// BlockedDate período en el que la empresa no acepta eventos.
type BlockedDate struct {
	ID          string
	CompanyID   string
	Title       string
	StartDate   time.Time
	EndDate     time.Time
	Type        string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsValidBlockType informa si el tipo es conocido.
func IsValidBlockType(t string) bool {
	switch t {
	case BlockTypeVacation, BlockTypeMaintenance, BlockTypeHoliday, BlockTypeUnavailable:
		return true
	}
	return false
}
