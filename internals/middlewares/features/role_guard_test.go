package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"schoolerp_backend/internals/constants"
	helperAuth "schoolerp_backend/internals/helpers/auth"
	"schoolerp_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guarded(role string, h fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocRole, role)
		return c.Next()
	}, h, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	return app
}

func TestRequireRoles(t *testing.T) {
	cases := []struct {
		role string
		h    fiber.Handler
		want int
	}{
		{constants.RoleAdmin, IsSchoolAdmin(), fiber.StatusNoContent},
		{constants.RoleTeacher, IsSchoolAdmin(), fiber.StatusForbidden},
		{constants.RoleLibrarian, IsStaff(), fiber.StatusNoContent},
		{constants.RoleParent, IsStaff(), fiber.StatusForbidden},
		{constants.RoleParent, RequireRoles("anything"), fiber.StatusNoContent},
	}
	for _, tc := range cases {
		resp, err := guarded(tc.role, tc.h).Test(httptest.NewRequest("GET", "/", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, tc.want, resp.StatusCode, tc.role)
	}
}

func TestRequireRoles_Message(t *testing.T) {
	app := guarded(constants.RoleStudent, RequireRoles("library", constants.AdminLibrarian...))
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Only admin or librarian can access library", body["message"])
	assert.Equal(t, "FORBIDDEN", body["error_code"])
}
