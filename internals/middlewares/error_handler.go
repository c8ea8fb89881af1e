package middlewares

import (
	"errors"
	"log"

	helper "schoolerp_backend/internals/helpers"
	report "schoolerp_backend/internals/helpers/report"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the app-wide fiber.Config.ErrorHandler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.JsonError(c, fe.Code, fe.Message)
	}
	log.Printf("[HTTP][ERROR] %s %s: %v", c.Method(), c.Path(), err)
	report.Error(c, "HTTP", err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}
