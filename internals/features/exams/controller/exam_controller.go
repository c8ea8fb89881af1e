// file: internals/features/exams/controller/exam_controller.go
package controller

import (
	"strings"

	"schoolerp_backend/internals/features/exams/model"
	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/features/shared/scope"
	"schoolerp_backend/internals/resource"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

func ExamConfig() resource.Config[model.ExamModel] {
	return resource.Config[model.ExamModel]{
		Tag:   "EXAM",
		Label: "Exam",
		Required: func(m *model.ExamModel) bool {
			return strings.TrimSpace(m.Name) != "" && m.ExamType != "" &&
				m.ClassID != uuid.Nil && !m.ExamDate.IsZero() && m.MaxMarks > 0
		},
		RequiredMessage: "Name, exam type, class ID, exam date, and max marks are required",
		References: []resource.Reference[model.ExamModel]{
			{Table: refs.TableClasses, Message: "Class not found", ID: func(m *model.ExamModel) uuid.UUID { return m.ClassID }},
		},
		Filters: []resource.Filter{
			{Param: "class_id", Column: "class_id", Kind: resource.FilterUUID},
			{Param: "exam_type", Column: "exam_type"},
			{Param: "subject", Column: "subject"},
			{Param: "academic_year", Column: "academic_year"},
		},
		Sort: resource.Sort{Column: "exam_date", Desc: true},
		ByRelation: []resource.RelationRoute{
			{Path: "/class/:classId", Param: "classId", Column: "class_id"},
		},
		Stats: &resource.StatsSpec{
			DateColumn: "exam_date",
			Fields: []resource.EnumField{
				{Name: "exam_type", Column: "exam_type", Values: model.ExamTypes},
			},
		},
	}
}

func ExamResultConfig() resource.Config[model.ExamResultModel] {
	return resource.Config[model.ExamResultModel]{
		Tag:   "EXAM_RESULT",
		Label: "Exam result",
		Required: func(m *model.ExamResultModel) bool {
			return m.ExamID != uuid.Nil && m.StudentID != uuid.Nil && m.Status != ""
		},
		RequiredMessage: "Exam ID, student ID, and status are required",
		BeforeWrite:     applySubjectMarks,
		Scope:           scope.OwnStudent("student_id"),
		References: []resource.Reference[model.ExamResultModel]{
			{Table: refs.TableExams, Message: "Exam not found", ID: func(m *model.ExamResultModel) uuid.UUID { return m.ExamID }},
			{Table: refs.TableStudents, Message: "Student not found", ID: func(m *model.ExamResultModel) uuid.UUID { return m.StudentID }},
		},
		Filters: []resource.Filter{
			{Param: "exam_id", Column: "exam_id", Kind: resource.FilterUUID},
			{Param: "student_id", Column: "student_id", Kind: resource.FilterUUID},
			{Param: "status", Column: "status"},
			{Param: "grade", Column: "grade"},
		},
		Sort: resource.Sort{Column: "created_at", Desc: true},
		ByRelation: []resource.RelationRoute{
			{Path: "/exam/:examId", Param: "examId", Column: "exam_id"},
			{Path: "/student/:studentId", Param: "studentId", Column: "student_id"},
		},
		Stats: &resource.StatsSpec{
			Fields: []resource.EnumField{
				{Name: "status", Column: "status", Values: model.ResultStatuses},
			},
		},
	}
}

// applySubjectMarks checks the breakdown and, when present, derives the
// total and letter grade the caller left empty.
func applySubjectMarks(m *model.ExamResultModel) error {
	if len(m.SubjectMarks) == 0 || string(m.SubjectMarks) == "null" {
		return nil
	}
	var lines []model.SubjectMark
	if err := sonic.Unmarshal(m.SubjectMarks, &lines); err != nil {
		return &resource.ValidationError{Fields: map[string][]string{
			"subject_marks": {"subject_marks must be a list of {subject, marks, max_marks}"},
		}}
	}
	var got, outOf float64
	for _, l := range lines {
		if strings.TrimSpace(l.Subject) == "" || l.Marks < 0 || l.MaxMarks <= 0 || l.Marks > l.MaxMarks {
			return &resource.ValidationError{Fields: map[string][]string{
				"subject_marks": {"each entry needs a subject and 0 <= marks <= max_marks"},
			}}
		}
		got += l.Marks
		outOf += l.MaxMarks
	}
	if m.MarksObtained == 0 {
		m.MarksObtained = got
	}
	if m.Grade == "" && m.Status != model.ResultAbsent && outOf > 0 {
		m.Grade = GradeFor(got / outOf * 100)
	}
	return nil
}

// GradeFor maps a percentage onto a letter grade.
func GradeFor(pct float64) string {
	switch {
	case pct >= 90:
		return "A+"
	case pct >= 80:
		return "A"
	case pct >= 70:
		return "B"
	case pct >= 60:
		return "C"
	case pct >= 50:
		return "D"
	default:
		return "F"
	}
}
