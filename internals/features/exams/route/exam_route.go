package route

import (
	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/exams/controller"
	"schoolerp_backend/internals/features/exams/model"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

func ExamRoutes(r fiber.Router, be resource.Backend) {
	resultStore := resource.StoreFor[model.ExamResultModel](be, model.ExamResultRelations...)
	resultCtl := resource.NewController[model.ExamResultModel](be, resultStore, controller.ExamResultConfig())
	resource.Mount(r, "/exams/results", resultCtl, resource.MountOptions{
		Feature: "exam results",
		Read:    []string{constants.RoleAdmin, constants.RoleTeacher, constants.RoleStudent},
		Write:   constants.AdminTeacher,
	})

	examStore := resource.StoreFor[model.ExamModel](be, model.ExamRelations...)
	examCtl := resource.NewController[model.ExamModel](be, examStore, controller.ExamConfig())
	resource.Mount(r, "/exams", examCtl, resource.MountOptions{
		Feature: "exams",
		Read:    []string{constants.RoleAdmin, constants.RoleTeacher, constants.RoleStudent, constants.RoleParent},
		Write:   constants.AdminTeacher,
	})
}
