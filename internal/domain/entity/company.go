package entity

import "time"

// Company representa una organización/tenant del sistema. Todo registro de negocio
// pertenece a exactamente una Company.
type Company struct {
	ID        string
	Name      string
	Document  string // documento fiscal (CNPJ, NIT, RUT...)
	Email     string
	Phone     string
	Address   string
	Currency  string // ISO 4217, ej. BRL
	Timezone  string // IANA, ej. America/Sao_Paulo
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Estados de Company.
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
	CompanyStatusInactive  = "inactive"
)

// Módulos con permiso individual por usuario.
const (
	ModuleTasks   = "tasks"
	ModuleStock   = "stock"
	ModuleFinance = "finance"
	ModuleHR      = "hr"
)

// IsValidModule informa si el nombre corresponde a un módulo conocido.
func IsValidModule(m string) bool {
	switch m {
	case ModuleTasks, ModuleStock, ModuleFinance, ModuleHR:
		return true
	}
	return false
}
