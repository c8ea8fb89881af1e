package route

import (
	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/discipline/controller"
	"schoolerp_backend/internals/features/discipline/model"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

// DisciplineRoutes mounts /incidents on an authenticated router.
func DisciplineRoutes(r fiber.Router, be resource.Backend) {
	store := resource.StoreFor[model.IncidentModel](be, model.IncidentRelations...)
	ctl := resource.NewController[model.IncidentModel](be, store, controller.IncidentConfig())

	resource.Mount(r, "/incidents", ctl, resource.MountOptions{
		Feature: "disciplinary incidents",
		Read:    constants.AdminTeacher,
		Write:   constants.AdminTeacher,
	})
}
