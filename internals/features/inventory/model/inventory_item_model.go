// file: internals/features/inventory/model/inventory_item_model.go
package model

import (
	"time"

	"schoolerp_backend/internals/resource"

	"gorm.io/datatypes"
)

const (
	CategoryFurniture   = "furniture"
	CategoryElectronics = "electronics"
	CategoryStationery  = "stationery"
	CategorySports      = "sports"
	CategoryLaboratory  = "laboratory"
	CategoryOther       = "other"

	ConditionNew     = "new"
	ConditionGood    = "good"
	ConditionFair    = "fair"
	ConditionDamaged = "damaged"
)

var (
	Categories = []string{CategoryFurniture, CategoryElectronics, CategoryStationery, CategorySports, CategoryLaboratory, CategoryOther}
	Conditions = []string{ConditionNew, ConditionGood, ConditionFair, ConditionDamaged}
)

// InventoryItemModel is a stock line. Specs holds free-form attributes
// (brand, model, serial numbers) as a JSON object.
type InventoryItemModel struct {
	resource.Base `bson:",inline"`

	Name         string         `json:"name" gorm:"column:name;type:varchar(160);not null" bson:"name"`
	ItemCode     string         `json:"item_code,omitempty" gorm:"column:item_code;type:varchar(40);index" bson:"item_code,omitempty"`
	Category     string         `json:"category" gorm:"column:category;type:varchar(20);not null" bson:"category" validate:"oneof=furniture electronics stationery sports laboratory other"`
	Condition    string         `json:"condition" gorm:"column:condition;type:varchar(10);not null" bson:"condition" validate:"oneof=new good fair damaged"`
	Quantity     int            `json:"quantity" gorm:"column:quantity;not null" bson:"quantity" validate:"gte=0"`
	Unit         string         `json:"unit,omitempty" gorm:"column:unit;type:varchar(20)" bson:"unit,omitempty"`
	UnitCost     float64        `json:"unit_cost" gorm:"column:unit_cost;type:numeric(14,2)" bson:"unit_cost" validate:"gte=0"`
	Location     string         `json:"location,omitempty" gorm:"column:location" bson:"location,omitempty"`
	Supplier     string         `json:"supplier,omitempty" gorm:"column:supplier" bson:"supplier,omitempty"`
	PurchaseDate *time.Time     `json:"purchase_date,omitempty" gorm:"column:purchase_date" bson:"purchase_date,omitempty"`
	ReorderLevel int            `json:"reorder_level" gorm:"column:reorder_level" bson:"reorder_level" validate:"gte=0"`
	Specs        datatypes.JSON `json:"specs,omitempty" gorm:"column:specs;type:jsonb" bson:"specs,omitempty"`
	Notes        string         `json:"notes,omitempty" gorm:"column:notes;type:text" bson:"notes,omitempty"`
}

func (InventoryItemModel) TableName() string { return "inventory_items" }
