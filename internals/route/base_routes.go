package routes

import (
	"context"
	"time"

	"schoolerp_backend/internals/configs"
	"schoolerp_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether the storage backend is reachable.
type Pinger func(ctx context.Context) error

func BaseRoutes(app *fiber.App, backend string, ping Pinger) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(configs.AppName + " API is running 🚀")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				dbStatus = "Database connection error"
				serverStatus = "DOWN"
				httpStatus = fiber.StatusServiceUnavailable
			}
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"backend":        backend,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    configs.AppEnv,
		})
	})

	app.Get("/metrics", middlewares.MetricsHandler())
}
