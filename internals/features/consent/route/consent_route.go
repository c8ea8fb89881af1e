package route

import (
	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/consent/controller"
	"schoolerp_backend/internals/features/consent/model"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

func ConsentRoutes(r fiber.Router, be resource.Backend) {
	store := resource.StoreFor[model.ConsentLetterModel](be, model.ConsentLetterRelations...)
	ctl := resource.NewController[model.ConsentLetterModel](be, store, controller.ConsentLetterConfig())
	resource.Mount(r, "/consent-letters", ctl, resource.MountOptions{
		Feature: "consent letters",
		Read:    []string{constants.RoleAdmin, constants.RoleTeacher, constants.RoleStudent},
		Write:   constants.AdminTeacher,
	})
}
