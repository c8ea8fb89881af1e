package model

import (
	"time"

	"schoolerp_backend/internals/resource"
)

const (
	SourceWalkIn      = "walk_in"
	SourcePhone       = "phone"
	SourceWebsite     = "website"
	SourceReferral    = "referral"
	SourceSocialMedia = "social_media"

	EnquiryOpen      = "open"
	EnquiryFollowUp  = "follow_up"
	EnquiryConverted = "converted"
	EnquiryClosed    = "closed"
)

var (
	EnquirySources  = []string{SourceWalkIn, SourcePhone, SourceWebsite, SourceReferral, SourceSocialMedia}
	EnquiryStatuses = []string{EnquiryOpen, EnquiryFollowUp, EnquiryConverted, EnquiryClosed}
)

type EnquiryModel struct {
	resource.Base `bson:",inline"`

	Name          string     `json:"name" gorm:"column:name;type:varchar(120);not null" bson:"name"`
	Phone         string     `json:"phone,omitempty" gorm:"column:phone;type:varchar(30)" bson:"phone,omitempty"`
	Email         string     `json:"email,omitempty" gorm:"column:email" bson:"email,omitempty" validate:"omitempty,email"`
	Source        string     `json:"source" gorm:"column:source;type:varchar(16);not null" bson:"source" validate:"oneof=walk_in phone website referral social_media"`
	Status        string     `json:"status" gorm:"column:status;type:varchar(16);not null" bson:"status" validate:"oneof=open follow_up converted closed"`
	ClassInterest string     `json:"class_interest,omitempty" gorm:"column:class_interest" bson:"class_interest,omitempty"`
	Message       string     `json:"message,omitempty" gorm:"column:message;type:text" bson:"message,omitempty"`
	FollowUpDate  *time.Time `json:"follow_up_date,omitempty" gorm:"column:follow_up_date" bson:"follow_up_date,omitempty"`
	AssignedTo    string     `json:"assigned_to,omitempty" gorm:"column:assigned_to" bson:"assigned_to,omitempty"`
}

func (EnquiryModel) TableName() string { return "enquiries" }
