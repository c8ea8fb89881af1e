// file: internals/features/frontoffice/model/visitor_model.go
package model

import (
	"time"

	"schoolerp_backend/internals/resource"
)

const (
	PurposeAdmission = "admission"
	PurposeMeeting   = "meeting"
	PurposeDelivery  = "delivery"
	PurposeInterview = "interview"
	PurposeOther     = "other"
)

var VisitPurposes = []string{PurposeAdmission, PurposeMeeting, PurposeDelivery, PurposeInterview, PurposeOther}

type VisitorModel struct {
	resource.Base `bson:",inline"`

	Name         string     `json:"name" gorm:"column:name;type:varchar(120);not null" bson:"name"`
	Phone        string     `json:"phone,omitempty" gorm:"column:phone;type:varchar(30)" bson:"phone,omitempty"`
	Purpose      string     `json:"purpose" gorm:"column:purpose;type:varchar(16);not null" bson:"purpose" validate:"oneof=admission meeting delivery interview other"`
	PersonToMeet string     `json:"person_to_meet,omitempty" gorm:"column:person_to_meet" bson:"person_to_meet,omitempty"`
	IDProof      string     `json:"id_proof,omitempty" gorm:"column:id_proof" bson:"id_proof,omitempty"`
	NumPersons   int        `json:"num_persons" gorm:"column:num_persons" bson:"num_persons" validate:"gte=0"`
	CheckIn      time.Time  `json:"check_in" gorm:"column:check_in;not null;index" bson:"check_in"`
	CheckOut     *time.Time `json:"check_out,omitempty" gorm:"column:check_out" bson:"check_out,omitempty"`
	Note         string     `json:"note,omitempty" gorm:"column:note;type:text" bson:"note,omitempty"`
}

func (VisitorModel) TableName() string { return "visitors" }
