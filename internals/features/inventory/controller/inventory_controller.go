package controller

import (
	"strings"

	"schoolerp_backend/internals/features/inventory/model"
	"schoolerp_backend/internals/resource"

	"github.com/bytedance/sonic"
)

func InventoryItemConfig() resource.Config[model.InventoryItemModel] {
	return resource.Config[model.InventoryItemModel]{
		Tag:   "INVENTORY",
		Label: "Inventory item",
		Required: func(m *model.InventoryItemModel) bool {
			return strings.TrimSpace(m.Name) != "" && m.Category != ""
		},
		RequiredMessage: "Name and category are required",
		Defaults: func(m *model.InventoryItemModel) {
			if m.Condition == "" {
				m.Condition = model.ConditionGood
			}
		},
		BeforeWrite: func(m *model.InventoryItemModel) error {
			if len(m.Specs) == 0 {
				return nil
			}
			var obj map[string]any
			if err := sonic.Unmarshal(m.Specs, &obj); err != nil {
				return &resource.ValidationError{Fields: map[string][]string{
					"specs": {"specs must be a JSON object"},
				}}
			}
			return nil
		},
		Filters: []resource.Filter{
			{Param: "category", Column: "category"},
			{Param: "condition", Column: "condition"},
			{Param: "location", Column: "location"},
			{Param: "item_code", Column: "item_code"},
		},
		Sort: resource.Sort{Column: "name"},
		Stats: &resource.StatsSpec{
			Fields: []resource.EnumField{
				{Name: "category", Column: "category", Values: model.Categories},
				{Name: "condition", Column: "condition", Values: model.Conditions},
			},
		},
	}
}
