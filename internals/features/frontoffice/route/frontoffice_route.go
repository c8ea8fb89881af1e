package route

import (
	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/frontoffice/controller"
	"schoolerp_backend/internals/features/frontoffice/model"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

func FrontOfficeRoutes(r fiber.Router, be resource.Backend) {
	fo := r.Group("/front-office")

	visitorStore := resource.StoreFor[model.VisitorModel](be)
	visitorCtl := resource.NewController[model.VisitorModel](be, visitorStore, controller.VisitorConfig())
	resource.Mount(fo, "/visitors", visitorCtl, resource.MountOptions{
		Feature: "front office",
		Read:    constants.AdminReceptionist,
		Write:   constants.AdminReceptionist,
	})

	enquiryStore := resource.StoreFor[model.EnquiryModel](be)
	enquiryCtl := resource.NewController[model.EnquiryModel](be, enquiryStore, controller.EnquiryConfig())
	resource.Mount(fo, "/enquiries", enquiryCtl, resource.MountOptions{
		Feature: "front office",
		Read:    constants.AdminReceptionist,
		Write:   constants.AdminReceptionist,
	})
}
