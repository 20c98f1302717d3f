package entity

import "time"

// Roles válidos para User, de mayor a menor privilegio.
const (
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// Departamentos válidos para User.
const (
	DepartmentFinance   = "finance"
	DepartmentStock     = "stock"
	DepartmentHR        = "hr"
	DepartmentIT        = "it"
	DepartmentSales     = "sales"
	DepartmentMarketing = "marketing"
	DepartmentLegal     = "legal"
	DepartmentGeneral   = "general"
)

// Estados de User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// Permissions flags de acceso por módulo, independientes del rol.
type Permissions struct {
	Tasks   bool
	Stock   bool
	Finance bool
	HR      bool
}

// Allows informa si el flag del módulo indicado está activo.
func (p Permissions) Allows(module string) bool {
	switch module {
	case ModuleTasks:
		return p.Tasks
	case ModuleStock:
		return p.Stock
	case ModuleFinance:
		return p.Finance
	case ModuleHR:
		return p.HR
	}
	return false
}

// DefaultPermissions calcula los permisos iniciales de una cuenta a partir de rol y departamento.
// Se evalúa una sola vez (registro o invitación) y el resultado se persiste con el usuario.
func DefaultPermissions(role, department string) Permissions {
	privileged := role == RoleOwner || role == RoleAdmin
	return Permissions{
		Tasks:   true,
		Stock:   privileged || department == DepartmentStock,
		Finance: privileged || department == DepartmentFinance || department == DepartmentSales,
		HR:      privileged || department == DepartmentHR,
	}
}

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // owner, admin, manager, employee
	Department   string
	Permissions  Permissions
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive informa si la cuenta puede operar.
func (u *User) IsActive() bool { return u.Status == UserStatusActive }

// IsPrivileged owner y admin omiten las verificaciones de módulo.
func (u *User) IsPrivileged() bool { return u.Role == RoleOwner || u.Role == RoleAdmin }

// CanAccess aplica la regla de acceso por módulo: cuentas inactivas nunca pasan,
// owner/admin siempre pasan, el resto según su flag.
func (u *User) CanAccess(module string) bool {
	if !u.IsActive() {
		return false
	}
	if u.IsPrivileged() {
		return true
	}
	return u.Permissions.Allows(module)
}

// IsValidRole informa si el rol es conocido.
func IsValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// IsManagerOrAbove informa si el rol puede modificar eventos.
func IsManagerOrAbove(role string) bool {
	return role == RoleOwner || role == RoleAdmin || role == RoleManager
}

// IsValidDepartment informa si el departamento es conocido.
func IsValidDepartment(d string) bool {
	switch d {
	case DepartmentFinance, DepartmentStock, DepartmentHR, DepartmentIT,
		DepartmentSales, DepartmentMarketing, DepartmentLegal, DepartmentGeneral:
		return true
	}
	return false
}
