package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"schoolerp_backend/internals/constants"
	helperAuth "schoolerp_backend/internals/helpers/auth"
)

// RequireRoles lets the request through when the token role is one of roles.
// Must run after AuthJWT.
func RequireRoles(feature string, roles ...string) fiber.Handler {
	msg := constants.RoleError(feature, roles)
	return func(c *fiber.Ctx) error {
		if len(roles) == 0 || helperAuth.HasRole(c, roles...) {
			return c.Next()
		}
		log.Printf("[ROLE][DENY] role=%q path=%s need=%v", helperAuth.GetRole(c), c.Path(), roles)
		return fiber.NewError(fiber.StatusForbidden, msg)
	}
}

func IsSchoolAdmin() fiber.Handler {
	return RequireRoles("this feature", constants.AdminOnly...)
}

func IsStaff() fiber.Handler {
	return RequireRoles("this feature", constants.StaffRoles...)
}
