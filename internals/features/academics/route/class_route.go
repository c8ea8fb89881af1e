package route

import (
	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/academics/controller"
	"schoolerp_backend/internals/features/academics/model"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

func AcademicRoutes(r fiber.Router, be resource.Backend) {
	store := resource.StoreFor[model.ClassModel](be, model.ClassRelations...)
	ctl := resource.NewController[model.ClassModel](be, store, controller.ClassConfig())

	resource.Mount(r, "/classes", ctl, resource.MountOptions{
		Feature: "classes",
		Read:    constants.AllRoles,
		Write:   constants.AdminOnly,
	})
}
