// file: internals/features/exams/model/exam_model.go
package model

import (
	"time"

	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

const (
	ExamUnitTest  = "unit_test"
	ExamMidterm   = "midterm"
	ExamFinal     = "final"
	ExamPractical = "practical"
)

var ExamTypes = []string{ExamUnitTest, ExamMidterm, ExamFinal, ExamPractical}

type ExamModel struct {
	resource.Base `bson:",inline"`

	Name         string    `json:"name" gorm:"column:name;type:varchar(160);not null" bson:"name"`
	ExamType     string    `json:"exam_type" gorm:"column:exam_type;type:varchar(16);not null" bson:"exam_type" validate:"oneof=unit_test midterm final practical"`
	ClassID      uuid.UUID `json:"class_id" gorm:"column:class_id;type:uuid;not null;index" bson:"class_id"`
	Subject      string    `json:"subject,omitempty" gorm:"column:subject;type:varchar(80)" bson:"subject,omitempty"`
	ExamDate     time.Time `json:"exam_date" gorm:"column:exam_date;not null;index" bson:"exam_date"`
	MaxMarks     float64   `json:"max_marks" gorm:"column:max_marks;type:numeric(6,2);not null" bson:"max_marks" validate:"gt=0"`
	PassMarks    float64   `json:"pass_marks" gorm:"column:pass_marks;type:numeric(6,2)" bson:"pass_marks" validate:"gte=0,ltefield=MaxMarks"`
	AcademicYear string    `json:"academic_year,omitempty" gorm:"column:academic_year;type:varchar(20)" bson:"academic_year,omitempty"`

	Class *refs.ClassRef `json:"class,omitempty" gorm:"foreignKey:ClassID" bson:"class,omitempty"`
}

func (ExamModel) TableName() string { return "exams" }

var ExamRelations = []resource.Relation{
	{Field: "Class", Table: refs.TableClasses, Column: "class_id"},
}
