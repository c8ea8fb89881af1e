// internals/features/users/auth/service/password_service.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"net/url"
	"strings"

	authHelper "schoolerp_backend/internals/features/users/auth/helper"
	authRepo "schoolerp_backend/internals/features/users/auth/repository"
	userModel "schoolerp_backend/internals/features/users/user/model"
	helpers "schoolerp_backend/internals/helpers"
	helpersAuth "schoolerp_backend/internals/helpers/auth"
	mailer "schoolerp_backend/internals/helpers/mail"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

const forgotPasswordMessage = "If the email is registered, a reset link has been sent"

func newResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

/* ==========================
   FORGOT PASSWORD
========================== */
// ForgotPassword always answers the same way so callers cannot tell which
// emails are registered.
func (s *AuthService) ForgotPassword(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	email := authHelper.NormalizeEmail(input.Email)
	if !authHelper.IsValidEmail(email) {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid email format")
	}

	ctx := c.UserContext()
	user, err := authRepo.FindUserByEmail(ctx, s.Users, email)
	if err != nil {
		if !errors.Is(err, resource.ErrNotFound) {
			log.Printf("[AUTH][FORGOT] find user: %v", err)
		}
		return helpers.JsonOK(c, forgotPasswordMessage, nil)
	}
	if !user.IsActive {
		return helpers.JsonOK(c, forgotPasswordMessage, nil)
	}

	raw, err := newResetToken()
	if err != nil {
		log.Printf("[AUTH][FORGOT] token: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if err := authRepo.CreatePasswordReset(ctx, s.Resets, user.SchoolID, user.ID, helpersAuth.HashToken(raw, s.Secret), s.ResetTTL); err != nil {
		log.Printf("[AUTH][FORGOT] save reset: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	link := strings.TrimRight(s.FrontendURL, "/") + "/reset-password?token=" + url.QueryEscape(raw)
	msg := mailer.Message{
		To:          []mail.Address{{Name: user.Name, Address: user.Email}},
		Subject:     "Reset your password",
		TextContent: fmt.Sprintf("Hello %s,\n\nOpen this link to reset your password:\n%s\n\nThe link expires in %s.", user.Name, link, s.ResetTTL),
		HTMLContent: fmt.Sprintf(`<p>Hello %s,</p><p><a href="%s">Reset your password</a></p><p>The link expires in %s.</p>`, user.Name, link, s.ResetTTL),
	}
	if s.Mailer != nil {
		if err := s.Mailer.Send(ctx, msg); err != nil {
			log.Printf("[AUTH][FORGOT] send mail to %s: %v", user.Email, err)
		}
	}
	return helpers.JsonOK(c, forgotPasswordMessage, nil)
}

/* ==========================
   RESET PASSWORD
========================== */

func (s *AuthService) ResetPassword(c *fiber.Ctx) error {
	var input struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(input.Token) == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Token is required")
	}
	if err := authHelper.ValidatePassword(input.NewPassword); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	ctx := c.UserContext()
	reset, err := authRepo.ConsumePasswordReset(ctx, s.Resets, helpersAuth.HashToken(strings.TrimSpace(input.Token), s.Secret), nowUTC())
	if err != nil {
		if errors.Is(err, authRepo.ErrResetInvalid) {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Reset token is invalid or expired")
		}
		log.Printf("[AUTH][RESET] consume: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	user, err := s.Users.Get(ctx, reset.SchoolID, reset.UserID)
	if err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			return helpers.JsonError(c, fiber.StatusBadRequest, "Reset token is invalid or expired")
		}
		log.Printf("[AUTH][RESET] load user: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if err := s.setPassword(ctx, user, input.NewPassword); err != nil {
		log.Printf("[AUTH][RESET] save: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return helpers.JsonOK(c, "Password has been reset", nil)
}

/* ==========================
   CHANGE PASSWORD
========================== */

func (s *AuthService) ChangePassword(c *fiber.Ctx) error {
	var input struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if input.OldPassword == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Old password is required")
	}
	if err := authHelper.ValidatePassword(input.NewPassword); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if input.OldPassword == input.NewPassword {
		return helpers.JsonError(c, fiber.StatusBadRequest, "New password must differ from the old one")
	}

	uid, err := helpersAuth.GetUserIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	schoolID, err := helpersAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return helpers.FromFiberError(c, err)
	}
	user, err := s.Users.Get(c.UserContext(), schoolID, uid)
	if err != nil {
		if errors.Is(err, resource.ErrNotFound) {
			return helpers.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		log.Printf("[AUTH][CHANGE-PW] load user: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if helpersAuth.CheckPasswordHash(user.PasswordHash, input.OldPassword) != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Old password is incorrect")
	}
	if err := s.setPassword(c.UserContext(), user, input.NewPassword); err != nil {
		log.Printf("[AUTH][CHANGE-PW] save: %v", err)
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}
	return helpers.JsonOK(c, "Password changed successfully", nil)
}

func (s *AuthService) setPassword(ctx context.Context, user *userModel.UserModel, pw string) error {
	hash, err := helpersAuth.HashPassword(pw)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = nowUTC()
	return s.Users.Replace(ctx, user)
}
