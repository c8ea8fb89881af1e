package route

import (
	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/inventory/controller"
	"schoolerp_backend/internals/features/inventory/model"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

func InventoryRoutes(r fiber.Router, be resource.Backend) {
	store := resource.StoreFor[model.InventoryItemModel](be)
	ctl := resource.NewController[model.InventoryItemModel](be, store, controller.InventoryItemConfig())
	resource.Mount(r, "/inventory", ctl, resource.MountOptions{
		Feature: "inventory",
		Read:    constants.StaffRoles,
		Write:   constants.AdminAccountant,
	})
}
