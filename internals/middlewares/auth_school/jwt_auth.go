package middleware

import (
	"context"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"schoolerp_backend/internals/helpers/dbtime"
	helperAuth "schoolerp_backend/internals/helpers/auth"
)

type AuthJWTOpts struct {
	Secret              string
	BlacklistChecker    func(ctx context.Context, rawToken string) (bool, error) // true = revoked
	AllowCookieFallback bool                                                     // access_token cookie when no Bearer
}

// AuthJWT verifies the bearer token and hydrates the locals read by helpers/auth.
func AuthJWT(o AuthJWTOpts) fiber.Handler {
	secret := strings.TrimSpace(o.Secret)
	if secret == "" {
		panic("AuthJWT: Secret is required")
	}

	return func(c *fiber.Ctx) error {
		raw := helperAuth.ExtractToken(c, o.AllowCookieFallback)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}

		claims, exp, err := helperAuth.ParseAccessToken(secret, raw)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		if o.BlacklistChecker != nil {
			black, err := o.BlacklistChecker(c.UserContext(), raw)
			if err != nil {
				log.Printf("[AUTH][BLACKLIST] check failed: %v", err)
			} else if black {
				return fiber.NewError(fiber.StatusUnauthorized, "Token revoked")
			}
		}

		c.Locals(helperAuth.LocUserID, claims.UserID)
		c.Locals(helperAuth.LocSchoolID, claims.SchoolID)
		c.Locals(helperAuth.LocRole, strings.ToLower(claims.Role))
		c.Locals(helperAuth.LocUserName, claims.Name)
		c.Locals(helperAuth.LocRawToken, raw)
		c.Locals(helperAuth.LocTokenExp, exp)
		if claims.StudentID != uuid.Nil {
			c.Locals(helperAuth.LocStudentID, claims.StudentID)
		}
		if claims.Timezone != "" {
			c.Locals(dbtime.LocSchoolTimezone, claims.Timezone)
		}
		return c.Next()
	}
}
