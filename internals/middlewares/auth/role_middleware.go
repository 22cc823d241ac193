package auth

import (
	"github.com/gofiber/fiber/v2"

	"schooldesk_backend/internals/constants"
	helper "schooldesk_backend/internals/helpers"
	helperAuth "schooldesk_backend/internals/helpers/auth"
)

// RoleMiddlewareWithCustomError validasi role + custom error message
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helperAuth.GetRoleFromLocals(c)
		if role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		if customForbiddenMessage == "" {
			customForbiddenMessage = "Forbidden: you are not authorized to access this resource"
		}
		return helper.JsonError(c, fiber.StatusForbidden, customForbiddenMessage)
	}
}

// Shortcut biar lebih clean pemakaian
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}

// AtLeast: lolos kalau role user mencakup required (ADMIN ⊇ TEACHER ⊇ STUDENT).
func AtLeast(required, customMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helperAuth.GetRoleFromLocals(c)
		if role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		if !constants.HasPermission(role, required) {
			return helper.JsonError(c, fiber.StatusForbidden, customMessage)
		}
		return c.Next()
	}
}
