package route

import (
	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/hr/controller"
	"schoolerp_backend/internals/features/hr/model"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

func HRRoutes(r fiber.Router, be resource.Backend) {
	staffStore := resource.StoreFor[model.StaffModel](be, model.StaffRelations...)
	staffCtl := resource.NewController[model.StaffModel](be, staffStore, controller.StaffConfig())
	resource.Mount(r, "/staff", staffCtl, resource.MountOptions{
		Feature: "staff records",
		Read:    constants.StaffRoles,
		Write:   constants.AdminOnly,
	})

	leaveStore := resource.StoreFor[model.LeaveRequestModel](be, model.LeaveRequestRelations...)
	leaveCtl := resource.NewController[model.LeaveRequestModel](be, leaveStore, controller.LeaveRequestConfig())
	resource.Mount(r, "/leave-requests", leaveCtl, resource.MountOptions{
		Feature: "leave requests",
		Read:    constants.StaffRoles,
		Write:   constants.StaffRoles,
	})
}
