// file: internals/features/users/auth/route/auth_routes.go
package route

import (
	controller "schoolerp_backend/internals/features/users/auth/controller"
	rateLimiter "schoolerp_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
)

// AuthRoutes mounts the public endpoints under r (expected: /api/auth).
func AuthRoutes(r fiber.Router, ac *controller.AuthController) {
	r.Post("/login", rateLimiter.LoginRateLimiter(), ac.Login)
	r.Post("/login-google", rateLimiter.LoginRateLimiter(), ac.LoginGoogle)
	r.Post("/register-school", rateLimiter.RegisterRateLimiter(), ac.RegisterSchool)
	r.Post("/forgot-password", rateLimiter.ForgotPasswordRateLimiter(), ac.ForgotPassword)
	r.Post("/reset-password", rateLimiter.ForgotPasswordRateLimiter(), ac.ResetPassword)
}

// AuthProtectedRoutes needs the JWT middleware in front of r.
func AuthProtectedRoutes(r fiber.Router, ac *controller.AuthController) {
	r.Post("/logout", ac.Logout)
	r.Get("/me", ac.Me)
	r.Post("/change-password", ac.ChangePassword)
}
