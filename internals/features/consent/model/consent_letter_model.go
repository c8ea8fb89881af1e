// file: internals/features/consent/model/consent_letter_model.go
package model

import (
	"time"

	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

const (
	ConsentPending  = "pending"
	ConsentApproved = "approved"
	ConsentDeclined = "declined"
)

var ConsentStatuses = []string{ConsentPending, ConsentApproved, ConsentDeclined}

// ConsentLetterModel asks a student's guardian to approve an activity
// (trip, event, medical check).
type ConsentLetterModel struct {
	resource.Base `bson:",inline"`

	StudentID     uuid.UUID  `json:"student_id" gorm:"column:student_id;type:uuid;not null;index" bson:"student_id"`
	Title         string     `json:"title" gorm:"column:title;type:varchar(200);not null" bson:"title"`
	Description   string     `json:"description,omitempty" gorm:"column:description;type:text" bson:"description,omitempty"`
	EventDate     *time.Time `json:"event_date,omitempty" gorm:"column:event_date" bson:"event_date,omitempty"`
	Status        string     `json:"status" gorm:"column:status;type:varchar(10);not null" bson:"status" validate:"oneof=pending approved declined"`
	RequestedByID uuid.UUID  `json:"requested_by_id" gorm:"column:requested_by_id;type:uuid;not null" bson:"requested_by_id"`
	RespondedBy   string     `json:"responded_by,omitempty" gorm:"column:responded_by" bson:"responded_by,omitempty"`
	RespondedAt   *time.Time `json:"responded_at,omitempty" gorm:"column:responded_at" bson:"responded_at,omitempty"`
	ParentNote    string     `json:"parent_note,omitempty" gorm:"column:parent_note;type:text" bson:"parent_note,omitempty"`

	Student     *refs.StudentRef `json:"student,omitempty" gorm:"foreignKey:StudentID" bson:"student,omitempty"`
	RequestedBy *refs.UserRef    `json:"requested_by,omitempty" gorm:"foreignKey:RequestedByID" bson:"requested_by,omitempty"`
}

func (ConsentLetterModel) TableName() string { return "consent_letters" }

var ConsentLetterRelations = []resource.Relation{
	{Field: "Student", Table: refs.TableStudents, Column: "student_id"},
	{Field: "RequestedBy", Table: refs.TableUsers, Column: "requested_by_id"},
}
