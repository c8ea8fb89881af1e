// file: internals/helpers/auth/locals.go
package helper

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

/* ============================================
   Locals Keys (set by the AuthJWT middleware)
   ============================================ */

const (
	LocUserID    = "user_id"
	LocSchoolID  = "school_id"
	LocRole      = "role"
	LocUserName  = "user_name"
	LocStudentID = "student_id" // only for student accounts
	LocRawToken  = "raw_token"
	LocTokenExp  = "token_exp"
)

func uuidFromLocals(c *fiber.Ctx, key, missingMsg, invalidMsg string) (uuid.UUID, error) {
	switch t := c.Locals(key).(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, missingMsg)
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, missingMsg)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, invalidMsg)
		}
		return id, nil
	case nil:
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, missingMsg)
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, invalidMsg)
	}
}

// GetUserIDFromToken → 401 when the request is unauthenticated.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, LocUserID, "Not authenticated", "Invalid user id in token")
}

// GetSchoolIDFromToken returns the caller's tenant. The tenant never comes
// from the body or the query string.
func GetSchoolIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, LocSchoolID, "Not authenticated", "Invalid school id in token")
}

func GetStudentIDFromToken(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuidFromLocals(c, LocStudentID, "", "")
	return id, err == nil
}

func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocRole).(string)
	return strings.ToLower(strings.TrimSpace(s))
}

func GetUserName(c *fiber.Ctx) string {
	s, _ := c.Locals(LocUserName).(string)
	return s
}

func HasRole(c *fiber.Ctx, roles ...string) bool {
	r := GetRole(c)
	if r == "" {
		return false
	}
	for _, want := range roles {
		if strings.EqualFold(want, r) {
			return true
		}
	}
	return false
}

func GetRawAccessToken(c *fiber.Ctx) string {
	s, _ := c.Locals(LocRawToken).(string)
	return s
}

func GetTokenExpiry(c *fiber.Ctx) time.Time {
	t, _ := c.Locals(LocTokenExp).(time.Time)
	return t
}
