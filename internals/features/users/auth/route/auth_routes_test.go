package route

import (
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"schoolerp_backend/internals/features/users/auth/controller"
	authModel "schoolerp_backend/internals/features/users/auth/model"
	authRepo "schoolerp_backend/internals/features/users/auth/repository"
	"schoolerp_backend/internals/features/users/auth/service"
	mailer "schoolerp_backend/internals/helpers/mail"
	"schoolerp_backend/internals/middlewares"
	authMiddleware "schoolerp_backend/internals/middlewares/auth_school"
	"schoolerp_backend/internals/resource"
	"schoolerp_backend/internals/testkit"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const flowSecret = "flow-secret"

type flow struct {
	env  *testkit.Env
	svc  *service.AuthService
	mail *mailer.ConsoleMailer
}

func newFlow(t *testing.T) *flow {
	t.Helper()
	be := resource.NewMemoryBackend()
	mail := mailer.NewConsoleMailer("SchoolERP", "noreply@test.local")
	svc := service.NewAuthService(be, &authRepo.StoreBlacklist{Store: resource.StoreFor[authModel.TokenBlacklistModel](be)}, mail)
	svc.Secret = flowSecret
	svc.TTL = time.Hour
	svc.ResetTTL = time.Hour
	svc.FrontendURL = "https://app.test"
	svc.GoogleClientID = ""

	ac := controller.NewAuthController(svc)
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	AuthRoutes(app.Group("/api/auth"), ac)
	private := app.Group("/api", authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:           flowSecret,
		BlacklistChecker: svc.IsBlacklisted,
	}))
	AuthProtectedRoutes(private.Group("/auth"), ac)

	return &flow{env: &testkit.Env{App: app, Backend: be}, svc: svc, mail: mail}
}

func (f *flow) post(t *testing.T, path string, who *testkit.Caller, body any) testkit.Response {
	t.Helper()
	return f.env.Do(t, http.MethodPost, "/api/auth"+path, who, body)
}

func bearerOf(t *testing.T, res testkit.Response) *testkit.Caller {
	t.Helper()
	tok, _ := res.Data()["access_token"].(string)
	require.NotEmpty(t, tok, res.Body)
	return &testkit.Caller{Token: tok}
}

func (f *flow) register(t *testing.T) testkit.Response {
	t.Helper()
	res := f.post(t, "/register-school", nil, map[string]any{
		"school_name": "Greenfield Academy",
		"admin_name":  "Ada Admin",
		"email":       "Ada@Example.com",
		"password":    "secret123",
		"timezone":    "Asia/Jakarta",
	})
	require.Equal(t, http.StatusCreated, res.Status, res.Body)
	return res
}

func TestRegisterLoginLogout(t *testing.T) {
	f := newFlow(t)

	reg := f.register(t)
	data := reg.Data()
	assert.Equal(t, "Bearer", data["token_type"])
	school := data["school"].(map[string]any)
	user := data["user"].(map[string]any)
	assert.Equal(t, "greenfield-academy", school["slug"])
	assert.Equal(t, "Asia/Jakarta", school["timezone"])
	assert.Equal(t, school["id"], user["school_id"])
	assert.Equal(t, "admin", user["role"])
	assert.Equal(t, "ada@example.com", user["email"])
	assert.NotContains(t, user, "password")

	dup := f.post(t, "/register-school", nil, map[string]any{
		"school_name": "Other", "admin_name": "X", "email": "ada@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, dup.Status)
	assert.Equal(t, "Email already registered", dup.Message())

	badTZ := f.post(t, "/register-school", nil, map[string]any{
		"school_name": "Other", "admin_name": "X", "email": "x@example.com", "password": "secret123", "timezone": "Mars/Base",
	})
	assert.Equal(t, http.StatusBadRequest, badTZ.Status)
	assert.Equal(t, "Invalid timezone", badTZ.Message())

	wrong := f.post(t, "/login", nil, map[string]any{"email": "ada@example.com", "password": "nope12345"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Status)
	assert.Equal(t, "Invalid email or password", wrong.Message())

	unknown := f.post(t, "/login", nil, map[string]any{"email": "ghost@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, unknown.Status)
	assert.Equal(t, "Invalid email or password", unknown.Message())

	login := f.post(t, "/login", nil, map[string]any{"email": " ADA@example.com ", "password": "secret123"})
	require.Equal(t, http.StatusOK, login.Status, login.Body)
	assert.NotEmpty(t, login.Data()["user"].(map[string]any)["last_login_at"])
	who := bearerOf(t, login)

	me := f.env.Do(t, http.MethodGet, "/api/auth/me", who, nil)
	require.Equal(t, http.StatusOK, me.Status)
	assert.Equal(t, "Greenfield Academy", me.Data()["school"].(map[string]any)["name"])

	out := f.post(t, "/logout", who, nil)
	require.Equal(t, http.StatusOK, out.Status)
	assert.Equal(t, "Logout successful", out.Message())

	revoked := f.env.Do(t, http.MethodGet, "/api/auth/me", who, nil)
	assert.Equal(t, http.StatusUnauthorized, revoked.Status)
	assert.Equal(t, "Token revoked", revoked.Message())
}

var resetLink = regexp.MustCompile(`reset-password\?token=([0-9a-f]{64})`)

func TestForgotAndResetPassword(t *testing.T) {
	f := newFlow(t)
	f.register(t)

	ghost := f.post(t, "/forgot-password", nil, map[string]any{"email": "ghost@example.com"})
	assert.Equal(t, http.StatusOK, ghost.Status)
	_, sent := f.mail.Last()
	assert.False(t, sent, "no mail for unknown addresses")

	res := f.post(t, "/forgot-password", nil, map[string]any{"email": "ada@example.com"})
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, ghost.Message(), res.Message())

	msg, ok := f.mail.Last()
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", msg.To[0].Address)
	m := resetLink.FindStringSubmatch(msg.TextContent)
	require.Len(t, m, 2, msg.TextContent)
	token := m[1]

	weak := f.post(t, "/reset-password", nil, map[string]any{"token": token, "new_password": "short"})
	assert.Equal(t, http.StatusBadRequest, weak.Status)

	ok1 := f.post(t, "/reset-password", nil, map[string]any{"token": token, "new_password": "fresh4567"})
	require.Equal(t, http.StatusOK, ok1.Status, ok1.Body)

	reused := f.post(t, "/reset-password", nil, map[string]any{"token": token, "new_password": "again8910"})
	assert.Equal(t, http.StatusBadRequest, reused.Status)
	assert.Equal(t, "Reset token is invalid or expired", reused.Message())

	old := f.post(t, "/login", nil, map[string]any{"email": "ada@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, old.Status)
	fresh := f.post(t, "/login", nil, map[string]any{"email": "ada@example.com", "password": "fresh4567"})
	assert.Equal(t, http.StatusOK, fresh.Status)
}

func TestChangePassword(t *testing.T) {
	f := newFlow(t)
	who := bearerOf(t, f.register(t))

	wrong := f.post(t, "/change-password", who, map[string]any{"old_password": "nottheone1", "new_password": "newpass123"})
	assert.Equal(t, http.StatusUnauthorized, wrong.Status)
	assert.Equal(t, "Old password is incorrect", wrong.Message())

	same := f.post(t, "/change-password", who, map[string]any{"old_password": "secret123", "new_password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, same.Status)

	ok := f.post(t, "/change-password", who, map[string]any{"old_password": "secret123", "new_password": "newpass123"})
	require.Equal(t, http.StatusOK, ok.Status, ok.Body)
	assert.Equal(t, "Password changed successfully", ok.Message())

	login := f.post(t, "/login", nil, map[string]any{"email": "ada@example.com", "password": "newpass123"})
	assert.Equal(t, http.StatusOK, login.Status)

	anon := f.post(t, "/change-password", nil, map[string]any{"old_password": "a", "new_password": "b"})
	assert.Equal(t, http.StatusUnauthorized, anon.Status)
}

func TestLoginGoogle(t *testing.T) {
	f := newFlow(t)
	f.register(t)

	notConfigured := f.post(t, "/login-google", nil, map[string]any{"id_token": "tok"})
	assert.Equal(t, http.StatusServiceUnavailable, notConfigured.Status)

	f.svc.GoogleClientID = "client-id"
	f.svc.VerifyGoogle = func(idToken, clientID string) (service.GoogleIdentity, error) {
		switch idToken {
		case "ada":
			return service.GoogleIdentity{Sub: "g-1", Email: "ada@example.com", Name: "Ada"}, nil
		case "ada-renamed":
			return service.GoogleIdentity{Sub: "g-1", Email: "ada@elsewhere.com"}, nil
		case "stranger":
			return service.GoogleIdentity{Sub: "g-2", Email: "who@example.com"}, nil
		}
		return service.GoogleIdentity{}, errors.New("bad token")
	}

	invalid := f.post(t, "/login-google", nil, map[string]any{"id_token": "forged"})
	assert.Equal(t, http.StatusUnauthorized, invalid.Status)

	linked := f.post(t, "/login-google", nil, map[string]any{"id_token": "ada"})
	require.Equal(t, http.StatusOK, linked.Status, linked.Body)
	assert.Equal(t, "ada@example.com", linked.Data()["user"].(map[string]any)["email"])

	byGoogleID := f.post(t, "/login-google", nil, map[string]any{"id_token": "ada-renamed"})
	assert.Equal(t, http.StatusOK, byGoogleID.Status, "matched on the linked google id")

	stranger := f.post(t, "/login-google", nil, map[string]any{"id_token": "stranger"})
	assert.Equal(t, http.StatusNotFound, stranger.Status)
}
