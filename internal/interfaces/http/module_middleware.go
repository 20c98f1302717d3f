package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eventos-erp/internal/application/dto"
)

// moduleChecker es el contrato mínimo que necesita el middleware para verificar módulos.
// Lo implementa *usecase.PermissionService.
type moduleChecker interface {
	HasModuleAccess(ctx context.Context, userID, module string) (bool, error)
}

// RequireModule devuelve un middleware Fiber que verifica si el usuario del token JWT
// puede entrar al módulo (tasks, stock, finance, hr). Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 si no hay user_id en el contexto.
//   - 403 MODULE_ACCESS_DENIED si el rol y los permisos del usuario no lo habilitan.
//   - 503 MODULE_CHECK_FAILED ante un fallo de infraestructura.
func RequireModule(module string, checker moduleChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		allowed, err := checker.HasModuleAccess(c.Context(), userID, module)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "MODULE_CHECK_FAILED",
				Message: "no se pudo verificar el acceso al módulo, intente más tarde",
			})
		}

		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_ACCESS_DENIED",
				Message: "sin acceso al módulo '" + module + "'",
			})
		}

		return c.Next()
	}
}
