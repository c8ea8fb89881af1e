// file: internals/features/academics/model/class_model.go
package model

import (
	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

// ClassModel is a class section (e.g. "Grade 7" / "B").
type ClassModel struct {
	resource.Base `bson:",inline"`

	Name           string     `json:"name" gorm:"column:name;type:varchar(80);not null" bson:"name"`
	Section        string     `json:"section" gorm:"column:section;type:varchar(20)" bson:"section"`
	GradeLevel     int        `json:"grade_level" gorm:"column:grade_level" bson:"grade_level" validate:"gte=0,lte=20"`
	Capacity       int        `json:"capacity" gorm:"column:capacity" bson:"capacity" validate:"gte=0"`
	Room           string     `json:"room,omitempty" gorm:"column:room;type:varchar(40)" bson:"room,omitempty"`
	AcademicYear   string     `json:"academic_year" gorm:"column:academic_year;type:varchar(20)" bson:"academic_year"`
	ClassTeacherID *uuid.UUID `json:"class_teacher_id,omitempty" gorm:"column:class_teacher_id;type:uuid" bson:"class_teacher_id,omitempty"`

	ClassTeacher *refs.StaffRef `json:"class_teacher,omitempty" gorm:"foreignKey:ClassTeacherID" bson:"class_teacher,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }

var ClassRelations = []resource.Relation{
	{Field: "ClassTeacher", Table: refs.TableStaff, Column: "class_teacher_id"},
}
