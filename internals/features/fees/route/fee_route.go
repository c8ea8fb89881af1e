package route

import (
	"schoolerp_backend/internals/configs"
	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/fees/controller"
	"schoolerp_backend/internals/features/fees/model"
	"schoolerp_backend/internals/features/fees/service"
	studentModel "schoolerp_backend/internals/features/students/model"
	featuresMiddleware "schoolerp_backend/internals/middlewares/features"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

func newCheckoutController(be resource.Backend, gw service.SnapGateway) *controller.CheckoutController {
	store := resource.StoreFor[model.FeePaymentModel](be, model.FeePaymentRelations...)
	return &controller.CheckoutController{
		Payments:  resource.NewController[model.FeePaymentModel](be, store, controller.FeePaymentConfig()),
		Students:  resource.StoreFor[studentModel.StudentModel](be),
		Gateway:   gw,
		ServerKey: configs.MidtransKey,
	}
}

// FeeRoutes mounts /fees/structures and /fees/payments. gw may be nil,
// in which case checkout answers 503.
func FeeRoutes(r fiber.Router, be resource.Backend, gw service.SnapGateway) {
	fees := r.Group("/fees")

	structStore := resource.StoreFor[model.FeeStructureModel](be, model.FeeStructureRelations...)
	structCtl := resource.NewController[model.FeeStructureModel](be, structStore, controller.FeeStructureConfig())
	resource.Mount(fees, "/structures", structCtl, resource.MountOptions{
		Feature: "fee structures",
		Read:    []string{constants.RoleAdmin, constants.RoleAccountant, constants.RoleTeacher, constants.RoleStudent, constants.RoleParent},
		Write:   constants.AdminAccountant,
	})

	checkout := newCheckoutController(be, gw)
	resource.Mount(fees, "/payments", checkout.Payments, resource.MountOptions{
		Feature: "fee payments",
		Read:    []string{constants.RoleAdmin, constants.RoleAccountant, constants.RoleStudent},
		Write:   constants.AdminAccountant,
		Extra: func(g fiber.Router) {
			g.Post("/:id/checkout",
				featuresMiddleware.RequireRoles("fee payments", constants.RoleAdmin, constants.RoleAccountant, constants.RoleStudent, constants.RoleParent),
				checkout.Checkout,
			)
		},
	})
}

// FeePublicRoutes mounts the gateway notification hook (no bearer token).
func FeePublicRoutes(r fiber.Router, be resource.Backend) {
	checkout := newCheckoutController(be, nil)
	r.Post("/fees/notification", checkout.Notification)
}
