package controller

import (
	"testing"

	"schoolerp_backend/internals/features/exams/model"
	"schoolerp_backend/internals/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestGradeFor(t *testing.T) {
	cases := map[float64]string{100: "A+", 90: "A+", 89.9: "A", 75: "B", 60: "C", 50: "D", 49.99: "F", 0: "F"}
	for pct, want := range cases {
		assert.Equal(t, want, GradeFor(pct), pct)
	}
}

func TestApplySubjectMarks(t *testing.T) {
	m := &model.ExamResultModel{
		Status:       model.ResultPass,
		SubjectMarks: datatypes.JSON(`[{"subject":"Math","marks":45,"max_marks":50},{"subject":"Art","marks":30,"max_marks":50}]`),
	}
	require.NoError(t, applySubjectMarks(m))
	assert.Equal(t, 75.0, m.MarksObtained)
	assert.Equal(t, "B", m.Grade)

	kept := &model.ExamResultModel{
		Status:        model.ResultPass,
		MarksObtained: 80,
		Grade:         "A",
		SubjectMarks:  datatypes.JSON(`[{"subject":"Math","marks":10,"max_marks":50}]`),
	}
	require.NoError(t, applySubjectMarks(kept))
	assert.Equal(t, 80.0, kept.MarksObtained)
	assert.Equal(t, "A", kept.Grade)

	var ve *resource.ValidationError
	bad := &model.ExamResultModel{SubjectMarks: datatypes.JSON(`[{"subject":"Math","marks":60,"max_marks":50}]`)}
	require.ErrorAs(t, applySubjectMarks(bad), &ve)
	assert.Contains(t, ve.Fields, "subject_marks")

	require.ErrorAs(t, applySubjectMarks(&model.ExamResultModel{SubjectMarks: datatypes.JSON(`{"x":1}`)}), &ve)

	assert.NoError(t, applySubjectMarks(&model.ExamResultModel{}))
}
