// file: internals/features/fees/model/fee_structure_model.go
package model

import (
	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

const (
	FrequencyOneTime = "one_time"
	FrequencyMonthly = "monthly"
	FrequencyTermly  = "termly"
	FrequencyYearly  = "yearly"
)

var Frequencies = []string{FrequencyOneTime, FrequencyMonthly, FrequencyTermly, FrequencyYearly}

type FeeStructureModel struct {
	resource.Base `bson:",inline"`

	Name         string     `json:"name" gorm:"column:name;type:varchar(120);not null" bson:"name"`
	ClassID      *uuid.UUID `json:"class_id,omitempty" gorm:"column:class_id;type:uuid;index" bson:"class_id,omitempty"`
	Amount       float64    `json:"amount" gorm:"column:amount;type:numeric(14,2);not null" bson:"amount" validate:"gt=0"`
	Frequency    string     `json:"frequency" gorm:"column:frequency;type:varchar(16);not null" bson:"frequency" validate:"oneof=one_time monthly termly yearly"`
	DueDay       int        `json:"due_day,omitempty" gorm:"column:due_day" bson:"due_day,omitempty" validate:"gte=0,lte=31"`
	AcademicYear string     `json:"academic_year,omitempty" gorm:"column:academic_year;type:varchar(20)" bson:"academic_year,omitempty"`
	Description  string     `json:"description,omitempty" gorm:"column:description;type:text" bson:"description,omitempty"`

	Class *refs.ClassRef `json:"class,omitempty" gorm:"foreignKey:ClassID" bson:"class,omitempty"`
}

func (FeeStructureModel) TableName() string { return "fee_structures" }

var FeeStructureRelations = []resource.Relation{
	{Field: "Class", Table: refs.TableClasses, Column: "class_id"},
}
