package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genxsop/genxsop/internal/application/dto"
	"github.com/genxsop/genxsop/pkg/rbac"
)

// RequireModule returns a Fiber middleware that checks whether the role from
// the JWT may enter the given module. Must be used AFTER AuthMiddleware
// (it needs LocalRole).
//
// Behavior:
//   - 401 Unauthorized → no role in the context (AuthMiddleware should have set it).
//   - 403 Forbidden    → role is not allowed into the module.
func RequireModule(module rbac.Module) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "role not found in token",
			})
		}
		if !rbac.CanAccessModule(rbac.Role(role), module) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "MODULE_FORBIDDEN",
				Message: "your role does not have access to the '" + string(module) + "' module",
			})
		}
		return c.Next()
	}
}

// RequirePermission returns a Fiber middleware that checks an action-level
// permission. Same ordering rules as RequireModule.
func RequirePermission(permission rbac.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "role not found in token",
			})
		}
		if !rbac.Can(rbac.Role(role), permission) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_DENIED",
				Message: "your role does not hold the '" + string(permission) + "' permission",
			})
		}
		return c.Next()
	}
}
