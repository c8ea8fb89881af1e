package model

import (
	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ResultPass   = "pass"
	ResultFail   = "fail"
	ResultAbsent = "absent"
)

var ResultStatuses = []string{ResultPass, ResultFail, ResultAbsent}

// SubjectMark is one line of the optional per-subject breakdown.
type SubjectMark struct {
	Subject  string  `json:"subject"`
	Marks    float64 `json:"marks"`
	MaxMarks float64 `json:"max_marks"`
}

type ExamResultModel struct {
	resource.Base `bson:",inline"`

	ExamID        uuid.UUID      `json:"exam_id" gorm:"column:exam_id;type:uuid;not null;index" bson:"exam_id"`
	StudentID     uuid.UUID      `json:"student_id" gorm:"column:student_id;type:uuid;not null;index" bson:"student_id"`
	MarksObtained float64        `json:"marks_obtained" gorm:"column:marks_obtained;type:numeric(6,2)" bson:"marks_obtained" validate:"gte=0"`
	Grade         string         `json:"grade,omitempty" gorm:"column:grade;type:varchar(4)" bson:"grade,omitempty"`
	Status        string         `json:"status" gorm:"column:status;type:varchar(10);not null" bson:"status" validate:"oneof=pass fail absent"`
	Remarks       string         `json:"remarks,omitempty" gorm:"column:remarks;type:text" bson:"remarks,omitempty"`
	SubjectMarks  datatypes.JSON `json:"subject_marks,omitempty" gorm:"column:subject_marks;type:jsonb" bson:"subject_marks,omitempty"`

	Exam    *refs.ExamRef    `json:"exam,omitempty" gorm:"foreignKey:ExamID" bson:"exam,omitempty"`
	Student *refs.StudentRef `json:"student,omitempty" gorm:"foreignKey:StudentID" bson:"student,omitempty"`
}

func (ExamResultModel) TableName() string { return "exam_results" }

var ExamResultRelations = []resource.Relation{
	{Field: "Exam", Table: refs.TableExams, Column: "exam_id"},
	{Field: "Student", Table: refs.TableStudents, Column: "student_id"},
}
