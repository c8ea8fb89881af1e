// internals/features/users/auth/service/token_service.go
package service

import (
	"context"
	"log"
	"time"

	schoolModel "schoolerp_backend/internals/features/schools/model"
	userModel "schoolerp_backend/internals/features/users/user/model"
	helpers "schoolerp_backend/internals/helpers"
	helpersAuth "schoolerp_backend/internals/helpers/auth"

	"github.com/gofiber/fiber/v2"
)

const accessCookieName = "access_token"

// issueTokens runs the shared tail of every login: account checks, last
// login stamp, then the token response.
func (s *AuthService) issueTokens(c *fiber.Ctx, user *userModel.UserModel) error {
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Account is inactive")
	}
	ctx := c.UserContext()
	school, err := s.Schools.Get(ctx, user.SchoolID, user.SchoolID)
	if err != nil {
		log.Printf("[AUTH][LOGIN] school %s: %v", user.SchoolID, err)
		return helpers.JsonError(c, fiber.StatusForbidden, "School is not available")
	}
	if school.Status != schoolModel.SchoolActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "School is inactive")
	}

	now := nowUTC()
	user.LastLoginAt = &now
	user.UpdatedAt = now
	if err := s.Users.Replace(ctx, user); err != nil {
		log.Printf("[AUTH][LOGIN] stamp last login: %v", err)
	}
	return s.respondWithToken(c, fiber.StatusOK, "Login successful", user, school)
}

func (s *AuthService) respondWithToken(c *fiber.Ctx, status int, msg string, user *userModel.UserModel, school *schoolModel.SchoolModel) error {
	claims := helpersAuth.Claims{
		UserID:   user.ID,
		SchoolID: user.SchoolID,
		Role:     user.Role,
		Name:     user.Name,
	}
	if user.StudentID != nil {
		claims.StudentID = *user.StudentID
	}
	if school != nil {
		claims.Timezone = school.Timezone
	}

	token, exp, err := helpersAuth.IssueAccessToken(s.Secret, s.TTL, claims)
	if err != nil {
		log.Printf("[AUTH][TOKEN] issue: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	setAuthCookie(c, token, exp)

	user.Password = ""
	data := fiber.Map{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   exp.UTC(),
		"user":         user,
		"school":       school,
	}
	if status == fiber.StatusCreated {
		return helpers.JsonCreated(c, msg, data)
	}
	return helpers.JsonOK(c, msg, data)
}

/* ==========================
   COOKIES
========================== */

func setAuthCookie(c *fiber.Ctx, token string, exp time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     accessCookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  exp,
	})
}

func clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     accessCookieName,
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  time.Unix(0, 0),
	})
}

/* ==========================
   BLACKLIST CHECK
========================== */

// IsBlacklisted plugs into the JWT middleware.
func (s *AuthService) IsBlacklisted(ctx context.Context, raw string) (bool, error) {
	if s.Blacklist == nil {
		return false, nil
	}
	return s.Blacklist.Contains(ctx, helpersAuth.HashToken(raw, s.Secret))
}
