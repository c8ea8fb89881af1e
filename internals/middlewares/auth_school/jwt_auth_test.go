package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	helperAuth "schoolerp_backend/internals/helpers/auth"
	"schoolerp_backend/internals/helpers/dbtime"
	"schoolerp_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "mw-secret"

func newApp(o AuthJWTOpts) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	app.Get("/who", AuthJWT(o), func(c *fiber.Ctx) error {
		uid, err := helperAuth.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		sid, _ := helperAuth.GetStudentIDFromToken(c)
		tz, _ := c.Locals(dbtime.LocSchoolTimezone).(string)
		return c.JSON(fiber.Map{
			"user_id":    uid,
			"role":       helperAuth.GetRole(c),
			"student_id": sid,
			"tz":         tz,
		})
	})
	return app
}

func call(t *testing.T, app *fiber.App, mutate func(*http.Request)) int {
	t.Helper()
	req := httptest.NewRequest("GET", "/who", nil)
	if mutate != nil {
		mutate(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func bearer(tok string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+tok) }
}

func TestAuthJWT(t *testing.T) {
	cl := helperAuth.Claims{UserID: uuid.New(), SchoolID: uuid.New(), Role: "Teacher", Timezone: "Asia/Jakarta"}
	tok, _, err := helperAuth.IssueAccessToken(secret, time.Hour, cl)
	require.NoError(t, err)

	app := newApp(AuthJWTOpts{Secret: secret})

	assert.Equal(t, http.StatusUnauthorized, call(t, app, nil), "no token")
	assert.Equal(t, http.StatusUnauthorized, call(t, app, bearer("nope")), "garbage")

	other, _, _ := helperAuth.IssueAccessToken("another-secret", time.Hour, cl)
	assert.Equal(t, http.StatusUnauthorized, call(t, app, bearer(other)), "wrong key")

	expired, _, _ := helperAuth.IssueAccessToken(secret, -time.Minute, cl)
	assert.Equal(t, http.StatusUnauthorized, call(t, app, bearer(expired)), "expired")

	assert.Equal(t, http.StatusOK, call(t, app, bearer(tok)))
}

func TestAuthJWT_Blacklist(t *testing.T) {
	cl := helperAuth.Claims{UserID: uuid.New(), SchoolID: uuid.New(), Role: "admin"}
	tok, _, err := helperAuth.IssueAccessToken(secret, time.Hour, cl)
	require.NoError(t, err)

	revoked := newApp(AuthJWTOpts{Secret: secret, BlacklistChecker: func(_ context.Context, raw string) (bool, error) {
		return raw == tok, nil
	}})
	assert.Equal(t, http.StatusUnauthorized, call(t, revoked, bearer(tok)))

	// a failing blacklist store does not lock everyone out
	flaky := newApp(AuthJWTOpts{Secret: secret, BlacklistChecker: func(context.Context, string) (bool, error) {
		return false, errors.New("redis down")
	}})
	assert.Equal(t, http.StatusOK, call(t, flaky, bearer(tok)))
}

func TestAuthJWT_CookieFallback(t *testing.T) {
	cl := helperAuth.Claims{UserID: uuid.New(), SchoolID: uuid.New(), Role: "admin"}
	tok, _, err := helperAuth.IssueAccessToken(secret, time.Hour, cl)
	require.NoError(t, err)
	withCookie := func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: tok}) }

	assert.Equal(t, http.StatusUnauthorized, call(t, newApp(AuthJWTOpts{Secret: secret}), withCookie))
	assert.Equal(t, http.StatusOK, call(t, newApp(AuthJWTOpts{Secret: secret, AllowCookieFallback: true}), withCookie))
}

func TestAuthJWT_EmptySecretPanics(t *testing.T) {
	assert.Panics(t, func() { AuthJWT(AuthJWTOpts{}) })
}
