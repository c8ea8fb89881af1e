package route

import (
	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/students/controller"
	"schoolerp_backend/internals/features/students/model"
	helperOSS "schoolerp_backend/internals/helpers/oss"
	featuresMiddleware "schoolerp_backend/internals/middlewares/features"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

func StudentRoutes(r fiber.Router, be resource.Backend, objects helperOSS.ObjectStore) {
	store := resource.StoreFor[model.StudentModel](be, model.StudentRelations...)
	ctl := resource.NewController[model.StudentModel](be, store, controller.StudentConfig())

	resource.Mount(r, "/students", ctl, resource.MountOptions{
		Feature: "student records",
		Read:    []string{constants.RoleAdmin, constants.RoleTeacher, constants.RoleAccountant, constants.RoleLibrarian, constants.RoleStudent},
		Write:   constants.AdminOnly,
		Extra: func(g fiber.Router) {
			g.Post("/:id/photo",
				featuresMiddleware.RequireRoles("student records", constants.AdminOnly...),
				controller.UploadPhoto(ctl, objects),
			)
		},
	})
}
