package route

import (
	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/library/controller"
	"schoolerp_backend/internals/features/library/model"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

func LibraryRoutes(r fiber.Router, be resource.Backend) {
	lib := r.Group("/library")

	bookStore := resource.StoreFor[model.BookModel](be)
	bookCtl := resource.NewController[model.BookModel](be, bookStore, controller.BookConfig())
	resource.Mount(lib, "/books", bookCtl, resource.MountOptions{
		Feature: "library",
		Read:    constants.AllRoles,
		Write:   constants.AdminLibrarian,
	})

	issueStore := resource.StoreFor[model.BookIssueModel](be, model.BookIssueRelations...)
	issueCtl := resource.NewController[model.BookIssueModel](be, issueStore, controller.BookIssueConfig())
	resource.Mount(lib, "/issues", issueCtl, resource.MountOptions{
		Feature: "library",
		Read:    []string{constants.RoleAdmin, constants.RoleLibrarian, constants.RoleTeacher, constants.RoleStudent},
		Write:   constants.AdminLibrarian,
	})
}
