package route

import (
	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/dashboard/controller"
	"schoolerp_backend/internals/features/dashboard/service"
	featuresMiddleware "schoolerp_backend/internals/middlewares/features"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

func DashboardRoutes(r fiber.Router, be resource.Backend) {
	ctl := controller.NewDashboardController(service.NewService(be))

	g := r.Group("/dashboard")
	g.Get("/admin", featuresMiddleware.IsStaff(), ctl.Admin)
	g.Get("/teacher", featuresMiddleware.RequireRoles("dashboard", constants.RoleTeacher), ctl.Teacher)
	g.Get("/student", featuresMiddleware.RequireRoles("dashboard", constants.RoleStudent), ctl.Student)
	g.Get("/parent", featuresMiddleware.RequireRoles("dashboard", constants.RoleParent), ctl.Parent)
}
