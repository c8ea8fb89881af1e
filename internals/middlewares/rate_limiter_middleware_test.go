package middlewares

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"schoolerp_backend/internals/configs"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loginApp mirrors the proxy settings main uses. Requests from app.Test
// arrive from 0.0.0.0.
func loginApp(trusted []string) *fiber.App {
	app := fiber.New(fiber.Config{
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          trusted,
	})
	app.Post("/login", LoginRateLimiter(), func(c *fiber.Ctx) error {
		return c.SendString(c.IP())
	})
	return app
}

func postLogin(t *testing.T, app *fiber.App, forwardedFor string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set(fiber.HeaderXForwardedFor, forwardedFor)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"127.0.0.1", "::1"}, configs.ParseList(configs.DefaultTrustedProxies))
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.4"}, configs.ParseList(" 10.0.0.0/8 ,, 192.168.1.4 "))
	assert.Nil(t, configs.ParseList(""))
}

func TestLoginLimiter_SpoofedForwardedForDoesNotResetBudget(t *testing.T) {
	app := loginApp(configs.ParseList(configs.DefaultTrustedProxies))

	for i := 0; i < 10; i++ {
		require.Equal(t, http.StatusOK, postLogin(t, app, fmt.Sprintf("203.0.113.%d", i)), "attempt %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, postLogin(t, app, "198.51.100.77"),
		"an untrusted peer is limited by its own address whatever header it sends")
}

func TestLoginLimiter_TrustedProxyForwardsClientIP(t *testing.T) {
	app := loginApp([]string{"0.0.0.0"})

	for i := 0; i < 10; i++ {
		require.Equal(t, http.StatusOK, postLogin(t, app, "203.0.113.9"))
	}
	assert.Equal(t, http.StatusTooManyRequests, postLogin(t, app, "203.0.113.9"))
	assert.Equal(t, http.StatusOK, postLogin(t, app, "203.0.113.10"), "another client behind the proxy has its own budget")
}
