// file: internals/features/schools/model/school_model.go
package model

import (
	"schoolerp_backend/internals/resource"
)

const (
	SchoolActive   = "active"
	SchoolInactive = "inactive"
)

// SchoolModel is the tenant root: its SchoolID equals its own ID.
type SchoolModel struct {
	resource.Base `bson:",inline"`

	Name         string `json:"name" gorm:"column:name;type:varchar(160);not null" bson:"name"`
	Slug         string `json:"slug" gorm:"column:slug;type:varchar(100);not null;uniqueIndex" bson:"slug"`
	Email        string `json:"email,omitempty" gorm:"column:email;type:varchar(255)" bson:"email,omitempty" validate:"omitempty,email"`
	Phone        string `json:"phone,omitempty" gorm:"column:phone;type:varchar(30)" bson:"phone,omitempty"`
	Address      string `json:"address,omitempty" gorm:"column:address;type:text" bson:"address,omitempty"`
	Website      string `json:"website,omitempty" gorm:"column:website" bson:"website,omitempty" validate:"omitempty,url"`
	LogoURL      string `json:"logo_url,omitempty" gorm:"column:logo_url;type:text" bson:"logo_url,omitempty"`
	Timezone     string `json:"timezone" gorm:"column:timezone;type:varchar(64);not null;default:'UTC'" bson:"timezone" validate:"timezone"`
	AcademicYear string `json:"academic_year,omitempty" gorm:"column:academic_year;type:varchar(20)" bson:"academic_year,omitempty"`
	Status       string `json:"status" gorm:"column:status;type:varchar(10);not null" bson:"status" validate:"oneof=active inactive"`
}

func (SchoolModel) TableName() string { return "schools" }
