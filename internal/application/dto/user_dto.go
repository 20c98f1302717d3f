package dto

import "time"

// PermissionsDTO flags de acceso por módulo.
type PermissionsDTO struct {
	Tasks   bool `json:"tasks"`
	Stock   bool `json:"stock"`
	Finance bool `json:"finance"`
	HR      bool `json:"hr"`
}

// RegisterRequest entrada para registro. Si CompanyID está vacío y CompanyName no,
// se crea la empresa y el usuario queda como owner.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	Name        string `json:"name" validate:"required,max=200"`
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	Role        string `json:"role" validate:"omitempty,oneof=owner admin manager employee"`
	Department  string `json:"department"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string         `json:"id"`
	CompanyID   string         `json:"company_id"`
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Role        string         `json:"role"`
	Department  string         `json:"department"`
	Permissions PermissionsDTO `json:"permissions"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ProfileResponse usuario autenticado con los datos de su empresa.
type ProfileResponse struct {
	User    UserResponse     `json:"user"`
	Company *CompanyResponse `json:"company,omitempty"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// InviteRequest entrada para invitar a un usuario a la empresa.
type InviteRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	Role        string          `json:"role" validate:"omitempty,oneof=admin manager employee"`
	Department  string          `json:"department"`
	Permissions *PermissionsDTO `json:"permissions,omitempty"` // nil = permisos por defecto
}

// InvitationResponse salida de una invitación.
type InvitationResponse struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	Role        string         `json:"role"`
	Department  string         `json:"department"`
	Permissions PermissionsDTO `json:"permissions"`
	Token       string         `json:"token,omitempty"`
	Status      string         `json:"status"`
	InvitedBy   string         `json:"invited_by"`
	ExpiresAt   time.Time      `json:"expires_at"`
	CreatedAt   time.Time      `json:"created_at"`
}

// AcceptInviteRequest entrada para aceptar una invitación.
type AcceptInviteRequest struct {
	Token    string `json:"token" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}
