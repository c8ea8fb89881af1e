package route

import (
	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/notices/controller"
	"schoolerp_backend/internals/features/notices/model"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

func NoticeRoutes(r fiber.Router, be resource.Backend) {
	store := resource.StoreFor[model.NoticeModel](be, model.NoticeRelations...)
	ctl := resource.NewController[model.NoticeModel](be, store, controller.NoticeConfig())
	resource.Mount(r, "/notices", ctl, resource.MountOptions{
		Feature: "notices",
		Read:    constants.AllRoles,
		Write:   constants.AdminTeacher,
	})
}
