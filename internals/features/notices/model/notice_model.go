// file: internals/features/notices/model/notice_model.go
package model

import (
	"time"

	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	AudienceAll      = "all"
	AudienceStudents = "students"
	AudienceParents  = "parents"
	AudienceTeachers = "teachers"
	AudienceStaff    = "staff"

	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

var (
	Audiences  = []string{AudienceAll, AudienceStudents, AudienceParents, AudienceTeachers, AudienceStaff}
	Priorities = []string{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}
)

type NoticeModel struct {
	resource.Base `bson:",inline"`

	Title       string         `json:"title" gorm:"column:title;type:varchar(200);not null" bson:"title"`
	Body        string         `json:"body" gorm:"column:body;type:text;not null" bson:"body"`
	Audience    string         `json:"audience" gorm:"column:audience;type:varchar(10);not null;index" bson:"audience" validate:"oneof=all students parents teachers staff"`
	Priority    string         `json:"priority" gorm:"column:priority;type:varchar(10);not null" bson:"priority" validate:"oneof=low normal high urgent"`
	PublishDate time.Time      `json:"publish_date" gorm:"column:publish_date;not null;index" bson:"publish_date"`
	ExpiryDate  *time.Time     `json:"expiry_date,omitempty" gorm:"column:expiry_date" bson:"expiry_date,omitempty"`
	Attachments pq.StringArray `json:"attachments" gorm:"column:attachments;type:text[]" bson:"attachments" validate:"dive,url"`
	PostedByID  uuid.UUID      `json:"posted_by_id" gorm:"column:posted_by_id;type:uuid;not null" bson:"posted_by_id"`

	PostedBy *refs.UserRef `json:"posted_by,omitempty" gorm:"foreignKey:PostedByID" bson:"posted_by,omitempty"`
}

func (NoticeModel) TableName() string { return "notices" }

var NoticeRelations = []resource.Relation{
	{Field: "PostedBy", Table: refs.TableUsers, Column: "posted_by_id"},
}

// AudienceFor is the notice audience a role reads besides "all".
func AudienceFor(role string) string {
	switch role {
	case constants.RoleStudent:
		return AudienceStudents
	case constants.RoleParent:
		return AudienceParents
	case constants.RoleTeacher:
		return AudienceTeachers
	case constants.RoleAdmin:
		return ""
	default:
		return AudienceStaff
	}
}
