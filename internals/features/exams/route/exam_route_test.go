package route

import (
	"context"
	"net/http"
	"testing"
	"time"

	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/exams/model"
	"schoolerp_backend/internals/resource"
	"schoolerp_backend/internals/testkit"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamResults_StudentCannotReadClassmate(t *testing.T) {
	env := testkit.New(t, ExamRoutes)
	school := uuid.New()
	self, classmate := uuid.New(), uuid.New()
	student := testkit.NewStudentCaller(t, school, constants.RoleStudent, self)
	teacher := testkit.NewCaller(t, school, constants.RoleTeacher)

	now := time.Now().UTC()
	require.NoError(t, resource.StoreFor[model.ExamResultModel](env.Backend).Insert(context.Background(), &model.ExamResultModel{
		Base:          resource.Base{ID: uuid.New(), SchoolID: school, CreatedAt: now, UpdatedAt: now},
		ExamID:        uuid.New(),
		StudentID:     classmate,
		MarksObtained: 41,
		Status:        model.ResultPass,
		Remarks:       "private",
	}))

	for _, path := range []string{
		"/api/exams/results",
		"/api/exams/results?student_id=" + classmate.String(),
		"/api/exams/results/student/" + classmate.String(),
	} {
		res := env.Do(t, http.MethodGet, path, &student, nil)
		require.Equal(t, http.StatusOK, res.Status, path)
		assert.Empty(t, res.List(), path)
	}

	res := env.Do(t, http.MethodGet, "/api/exams/results/student/"+classmate.String(), &teacher, nil)
	require.Equal(t, http.StatusOK, res.Status)
	require.Len(t, res.List(), 1)
	assert.Equal(t, "private", res.List()[0].(map[string]any)["remarks"])
}
