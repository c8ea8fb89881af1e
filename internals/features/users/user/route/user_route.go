package route

import (
	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/users/user/controller"
	"schoolerp_backend/internals/features/users/user/model"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

func UserRoutes(r fiber.Router, be resource.Backend) {
	store := resource.StoreFor[model.UserModel](be, model.UserRelations...)
	ctl := resource.NewController[model.UserModel](be, store, controller.UserConfig(store))
	resource.Mount(r, "/users", ctl, resource.MountOptions{
		Feature: "user management",
		Read:    constants.AdminOnly,
		Write:   constants.AdminOnly,
	})
}
