package controller

import (
	"schoolerp_backend/internals/features/users/auth/service"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Svc *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Svc: svc}
}

func (ac *AuthController) Login(c *fiber.Ctx) error          { return ac.Svc.Login(c) }
func (ac *AuthController) LoginGoogle(c *fiber.Ctx) error    { return ac.Svc.LoginGoogle(c) }
func (ac *AuthController) RegisterSchool(c *fiber.Ctx) error { return ac.Svc.RegisterSchool(c) }
func (ac *AuthController) Logout(c *fiber.Ctx) error         { return ac.Svc.Logout(c) }
func (ac *AuthController) Me(c *fiber.Ctx) error             { return ac.Svc.Me(c) }
func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error { return ac.Svc.ForgotPassword(c) }
func (ac *AuthController) ResetPassword(c *fiber.Ctx) error  { return ac.Svc.ResetPassword(c) }
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error { return ac.Svc.ChangePassword(c) }
