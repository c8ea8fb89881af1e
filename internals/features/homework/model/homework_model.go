// file: internals/features/homework/model/homework_model.go
package model

import (
	"time"

	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	HomeworkActive = "active"
	HomeworkClosed = "closed"
)

var HomeworkStatuses = []string{HomeworkActive, HomeworkClosed}

type HomeworkModel struct {
	resource.Base `bson:",inline"`

	Title        string         `json:"title" gorm:"column:title;type:varchar(200);not null" bson:"title"`
	Description  string         `json:"description,omitempty" gorm:"column:description;type:text" bson:"description,omitempty"`
	Subject      string         `json:"subject,omitempty" gorm:"column:subject;type:varchar(80)" bson:"subject,omitempty"`
	ClassID      uuid.UUID      `json:"class_id" gorm:"column:class_id;type:uuid;not null;index" bson:"class_id"`
	AssignedByID uuid.UUID      `json:"assigned_by_id" gorm:"column:assigned_by_id;type:uuid;not null" bson:"assigned_by_id"`
	DueDate      time.Time      `json:"due_date" gorm:"column:due_date;not null;index" bson:"due_date"`
	MaxMarks     float64        `json:"max_marks" gorm:"column:max_marks;type:numeric(6,2)" bson:"max_marks" validate:"gte=0"`
	Status       string         `json:"status" gorm:"column:status;type:varchar(10);not null" bson:"status" validate:"oneof=active closed"`
	Links        pq.StringArray `json:"links" gorm:"column:links;type:text[]" bson:"links" validate:"dive,url"`
	Attachments  pq.StringArray `json:"attachments" gorm:"column:attachments;type:text[]" bson:"attachments"`

	Class      *refs.ClassRef `json:"class,omitempty" gorm:"foreignKey:ClassID" bson:"class,omitempty"`
	AssignedBy *refs.UserRef  `json:"assigned_by,omitempty" gorm:"foreignKey:AssignedByID" bson:"assigned_by,omitempty"`
}

func (HomeworkModel) TableName() string { return "homework" }

var HomeworkRelations = []resource.Relation{
	{Field: "Class", Table: refs.TableClasses, Column: "class_id"},
	{Field: "AssignedBy", Table: refs.TableUsers, Column: "assigned_by_id"},
}
