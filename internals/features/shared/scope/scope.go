// Package scope narrows list and get results to what the caller may see.
package scope

import (
	"schoolerp_backend/internals/constants"
	helperAuth "schoolerp_backend/internals/helpers/auth"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

// OwnStudent restricts student accounts to documents whose column equals
// the student id carried by their token. Other roles are unaffected.
func OwnStudent(column string) func(c *fiber.Ctx, q *resource.Query) error {
	return func(c *fiber.Ctx, q *resource.Query) error {
		if helperAuth.GetRole(c) != constants.RoleStudent {
			return nil
		}
		sid, ok := helperAuth.GetStudentIDFromToken(c)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Student account is not linked to a student record")
		}
		if q.Where == nil {
			q.Where = map[string]any{}
		}
		q.Where[column] = sid
		return nil
	}
}
