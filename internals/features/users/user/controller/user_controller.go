package controller

import (
	"context"
	"strings"

	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/shared/refs"
	authHelper "schoolerp_backend/internals/features/users/auth/helper"
	"schoolerp_backend/internals/features/users/user/model"
	helperAuth "schoolerp_backend/internals/helpers/auth"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UserConfig needs the users store itself to keep emails unique across
// schools.
func UserConfig(users resource.Store[model.UserModel]) resource.Config[model.UserModel] {
	return resource.Config[model.UserModel]{
		Tag:   "USER",
		Label: "User",

		Required: func(m *model.UserModel) bool {
			return strings.TrimSpace(m.Name) != "" &&
				strings.TrimSpace(m.Email) != "" &&
				m.Password != "" &&
				m.Role != ""
		},
		RequiredMessage: "Name, email, password, and role are required",

		Defaults: func(m *model.UserModel) {
			m.IsActive = true
		},
		Protect: func(dst, stored *model.UserModel) {
			dst.PasswordHash = stored.PasswordHash
			dst.GoogleID = stored.GoogleID
			dst.LastLoginAt = stored.LastLoginAt
		},
		BeforeWrite: func(m *model.UserModel) error {
			m.Email = authHelper.NormalizeEmail(m.Email)
			m.Role = strings.ToLower(strings.TrimSpace(m.Role))
			if m.Password == "" {
				return nil
			}
			if err := authHelper.ValidatePassword(m.Password); err != nil {
				return &resource.ValidationError{Fields: map[string][]string{"password": {err.Error()}}}
			}
			hash, err := helperAuth.HashPassword(m.Password)
			if err != nil {
				return err
			}
			m.PasswordHash, m.Password = hash, ""
			return nil
		},
		Check: func(ctx context.Context, m, stored *model.UserModel) error {
			if stored != nil && stored.Email == m.Email {
				return nil
			}
			return EnsureEmailFree(ctx, users, m.Email, m.ID)
		},

		References: []resource.Reference[model.UserModel]{
			{Table: refs.TableStudents, Message: "Student not found", ID: func(m *model.UserModel) uuid.UUID {
				if m.StudentID == nil {
					return uuid.Nil
				}
				return *m.StudentID
			}},
		},
		Filters: []resource.Filter{
			{Param: "role", Column: "role"},
			{Param: "email", Column: "email"},
			{Param: "is_active", Column: "is_active", Kind: resource.FilterBool},
		},
		Sort: resource.Sort{Column: "name"},
		Stats: &resource.StatsSpec{
			Fields: []resource.EnumField{
				{Name: "role", Column: "role", Values: constants.AllRoles},
			},
		},
	}
}

// EnsureEmailFree returns 409 when another account (any school) owns email.
func EnsureEmailFree(ctx context.Context, users resource.Store[model.UserModel], email string, self uuid.UUID) error {
	found, err := users.Find(ctx, resource.Query{
		AllTenants: true,
		Where:      map[string]any{"email": authHelper.NormalizeEmail(email)},
		Limit:      1,
	})
	if err != nil {
		return err
	}
	if len(found) > 0 && found[0].ID != self {
		return fiber.NewError(fiber.StatusConflict, "Email already registered")
	}
	return nil
}
