// Package testkit builds an in-memory Fiber app behind the real JWT gate
// for handler tests.
package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	helperAuth "schoolerp_backend/internals/helpers/auth"
	"schoolerp_backend/internals/middlewares"
	authMiddleware "schoolerp_backend/internals/middlewares/auth_school"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const Secret = "testkit-secret"

type Env struct {
	App     *fiber.App
	Backend *resource.MemoryBackend
}

// New mounts routes under an authenticated /api group.
func New(t testing.TB, mount func(r fiber.Router, be resource.Backend)) *Env {
	t.Helper()
	be := resource.NewMemoryBackend()
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	api := app.Group("/api", authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{Secret: Secret}))
	mount(api, be)
	return &Env{App: app, Backend: be}
}

type Caller struct {
	UserID    uuid.UUID
	SchoolID  uuid.UUID
	StudentID uuid.UUID
	Role      string
	Token     string
}

// NewCaller signs a token for a fresh user in schoolID.
func NewCaller(t testing.TB, schoolID uuid.UUID, role string) Caller {
	return NewStudentCaller(t, schoolID, role, uuid.Nil)
}

func NewStudentCaller(t testing.TB, schoolID uuid.UUID, role string, studentID uuid.UUID) Caller {
	t.Helper()
	c := Caller{UserID: uuid.New(), SchoolID: schoolID, StudentID: studentID, Role: role}
	tok, _, err := helperAuth.IssueAccessToken(Secret, time.Hour, helperAuth.Claims{
		UserID:    c.UserID,
		SchoolID:  schoolID,
		Role:      role,
		Name:      "Test " + role,
		StudentID: studentID,
	})
	require.NoError(t, err)
	c.Token = tok
	return c
}

// Response is a decoded JSON envelope.
type Response struct {
	Status int
	Body   map[string]any
}

func (r Response) Message() string {
	s, _ := r.Body["message"].(string)
	return s
}

func (r Response) Data() map[string]any {
	m, _ := r.Body["data"].(map[string]any)
	return m
}

func (r Response) List() []any {
	l, _ := r.Body["data"].([]any)
	return l
}

func (r Response) Pagination() map[string]any {
	m, _ := r.Body["pagination"].(map[string]any)
	return m
}

// Do sends body (JSON-encoded unless nil) with the caller's bearer token.
func (e *Env) Do(t testing.TB, method, path string, who *Caller, body any) Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if who != nil {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+who.Token)
	}
	return e.Send(t, req)
}

func (e *Env) Send(t testing.TB, req *http.Request) Response {
	t.Helper()
	resp, err := e.App.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := Response{Status: resp.StatusCode, Body: map[string]any{}}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out.Body)
	}
	return out
}
