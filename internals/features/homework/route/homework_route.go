package route

import (
	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/homework/controller"
	"schoolerp_backend/internals/features/homework/model"
	helperOSS "schoolerp_backend/internals/helpers/oss"
	featuresMiddleware "schoolerp_backend/internals/middlewares/features"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

var homeworkReaders = []string{constants.RoleAdmin, constants.RoleTeacher, constants.RoleStudent, constants.RoleParent}

func HomeworkRoutes(r fiber.Router, be resource.Backend, objects helperOSS.ObjectStore) {
	subStore := resource.StoreFor[model.SubmissionModel](be, model.SubmissionRelations...)
	subCtl := resource.NewController[model.SubmissionModel](be, subStore, controller.SubmissionConfig())
	// registered before /homework so /:id there never sees "submissions"
	resource.Mount(r, "/homework/submissions", subCtl, resource.MountOptions{
		Feature: "homework submissions",
		Read:    []string{constants.RoleAdmin, constants.RoleTeacher, constants.RoleStudent},
		Write:   constants.AdminTeacher,
		Create:  []string{constants.RoleAdmin, constants.RoleTeacher, constants.RoleStudent},
	})

	hwStore := resource.StoreFor[model.HomeworkModel](be, model.HomeworkRelations...)
	hwCtl := resource.NewController[model.HomeworkModel](be, hwStore, controller.HomeworkConfig())
	resource.Mount(r, "/homework", hwCtl, resource.MountOptions{
		Feature: "homework",
		Read:    homeworkReaders,
		Write:   constants.AdminTeacher,
		Extra: func(g fiber.Router) {
			g.Post("/:id/attachment",
				featuresMiddleware.RequireRoles("homework", constants.AdminTeacher...),
				controller.UploadAttachment(hwCtl, objects),
			)
		},
	})
}
