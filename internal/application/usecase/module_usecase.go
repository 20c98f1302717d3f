package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/eventos-erp/internal/domain/entity"
	"github.com/jhoicas/eventos-erp/internal/domain/repository"
)

// PermissionService verifica el acceso de un usuario a los módulos de negocio.
// Es el único punto de la aplicación que conoce la regla rol + permisos por módulo.
type PermissionService struct {
	userRepo repository.UserRepository
}

// NewPermissionService construye el servicio de permisos.
func NewPermissionService(userRepo repository.UserRepository) *PermissionService {
	return &PermissionService{userRepo: userRepo}
}

// HasModuleAccess informa si el usuario puede entrar al módulo.
// owner y admin acceden a todo; el resto según su bandera de permisos. Un usuario
// inactivo o inexistente no accede (false, sin error).
// Devuelve error solo ante fallos de infraestructura (DB caída, timeout, etc.).
func (s *PermissionService) HasModuleAccess(ctx context.Context, userID, module string) (bool, error) {
	if userID == "" || module == "" {
		return false, fmt.Errorf("permisos: userID y module son obligatorios")
	}
	if !entity.IsValidModule(module) {
		return false, fmt.Errorf("permisos: módulo desconocido %q", module)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	return user.CanAccess(module), nil
}
