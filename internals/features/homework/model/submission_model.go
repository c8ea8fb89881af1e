package model

import (
	"time"

	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

const (
	SubmissionSubmitted = "submitted"
	SubmissionLate      = "late"
	SubmissionGraded    = "graded"
)

var SubmissionStatuses = []string{SubmissionSubmitted, SubmissionLate, SubmissionGraded}

type SubmissionModel struct {
	resource.Base `bson:",inline"`

	HomeworkID    uuid.UUID  `json:"homework_id" gorm:"column:homework_id;type:uuid;not null;index" bson:"homework_id"`
	StudentID     uuid.UUID  `json:"student_id" gorm:"column:student_id;type:uuid;not null;index" bson:"student_id"`
	SubmittedAt   time.Time  `json:"submitted_at" gorm:"column:submitted_at;not null" bson:"submitted_at"`
	Content       string     `json:"content,omitempty" gorm:"column:content;type:text" bson:"content,omitempty"`
	AttachmentURL string     `json:"attachment_url,omitempty" gorm:"column:attachment_url;type:text" bson:"attachment_url,omitempty" validate:"omitempty,url"`
	Status        string     `json:"status" gorm:"column:status;type:varchar(10);not null" bson:"status" validate:"oneof=submitted late graded"`
	Marks         *float64   `json:"marks,omitempty" gorm:"column:marks;type:numeric(6,2)" bson:"marks,omitempty" validate:"omitempty,gte=0"`
	Feedback      string     `json:"feedback,omitempty" gorm:"column:feedback;type:text" bson:"feedback,omitempty"`
	GradedAt      *time.Time `json:"graded_at,omitempty" gorm:"column:graded_at" bson:"graded_at,omitempty"`

	Homework *refs.HomeworkRef `json:"homework,omitempty" gorm:"foreignKey:HomeworkID" bson:"homework,omitempty"`
	Student  *refs.StudentRef  `json:"student,omitempty" gorm:"foreignKey:StudentID" bson:"student,omitempty"`
}

func (SubmissionModel) TableName() string { return "homework_submissions" }

var SubmissionRelations = []resource.Relation{
	{Field: "Homework", Table: refs.TableHomework, Column: "homework_id"},
	{Field: "Student", Table: refs.TableStudents, Column: "student_id"},
}
