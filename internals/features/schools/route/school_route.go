package route

import (
	"schoolerp_backend/internals/features/schools/controller"
	"schoolerp_backend/internals/features/schools/model"
	featuresMiddleware "schoolerp_backend/internals/middlewares/features"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

func SchoolRoutes(r fiber.Router, be resource.Backend) {
	ctl := controller.NewSchoolController(resource.StoreFor[model.SchoolModel](be))

	g := r.Group("/schools")
	g.Get("/me", ctl.GetMe)
	g.Put("/me", featuresMiddleware.IsSchoolAdmin(), ctl.UpdateMe)
	g.Patch("/me", featuresMiddleware.IsSchoolAdmin(), ctl.UpdateMe)
}
