package route

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"schoolerp_backend/internals/constants"
	studentModel "schoolerp_backend/internals/features/students/model"
	"schoolerp_backend/internals/resource"
	"schoolerp_backend/internals/testkit"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStudent(t *testing.T, be resource.Backend, schoolID uuid.UUID) uuid.UUID {
	t.Helper()
	now := time.Now().UTC()
	s := &studentModel.StudentModel{
		Base:        resource.Base{ID: uuid.New(), SchoolID: schoolID, CreatedAt: now, UpdatedAt: now},
		AdmissionNo: "ADM-" + uuid.NewString()[:6],
		FirstName:   "Asha",
		Gender:      studentModel.GenderFemale,
		ClassID:     uuid.New(),
		Status:      studentModel.StudentStatusActive,
	}
	require.NoError(t, resource.StoreFor[studentModel.StudentModel](be).Insert(context.Background(), s))
	return s.ID
}

func TestIncidentLifecycle(t *testing.T) {
	env := testkit.New(t, DisciplineRoutes)
	school, otherSchool := uuid.New(), uuid.New()
	admin := testkit.NewCaller(t, school, constants.RoleAdmin)
	student := seedStudent(t, env.Backend, school)
	foreignStudent := seedStudent(t, env.Backend, otherSchool)

	t.Run("missing student id", func(t *testing.T) {
		res := env.Do(t, http.MethodPost, "/api/incidents", &admin, map[string]any{
			"location": "Playground", "description": "Pushed a classmate",
		})
		assert.Equal(t, http.StatusBadRequest, res.Status)
		assert.Equal(t, "Student ID, location, and description are required", res.Message())
	})

	t.Run("student from another school", func(t *testing.T) {
		res := env.Do(t, http.MethodPost, "/api/incidents", &admin, map[string]any{
			"student_id": foreignStudent, "location": "Hall", "description": "Shouting",
		})
		assert.Equal(t, http.StatusNotFound, res.Status)
		assert.Equal(t, "Student not found", res.Message())
	})

	t.Run("defaults on create", func(t *testing.T) {
		res := env.Do(t, http.MethodPost, "/api/incidents", &admin, map[string]any{
			"student_id": student, "location": "Library", "description": "Damaged a book",
		})
		require.Equal(t, http.StatusCreated, res.Status, res.Body)
		data := res.Data()
		assert.Equal(t, "pending", data["status"])
		assert.Equal(t, "medium", data["severity"])
		assert.Equal(t, "other", data["incident_type"])
		assert.Equal(t, admin.UserID.String(), data["reported_by_id"])
		assert.Equal(t, "Asha", data["student"].(map[string]any)["first_name"])
	})

	t.Run("filtered second page", func(t *testing.T) {
		for i := 0; i < 15; i++ {
			sev := "high"
			if i%3 == 0 {
				sev = "low"
			}
			res := env.Do(t, http.MethodPost, "/api/incidents", &admin, map[string]any{
				"student_id": student, "location": "Hall", "description": fmt.Sprint("event ", i), "severity": sev,
			})
			require.Equal(t, http.StatusCreated, res.Status, res.Body)
		}

		res := env.Do(t, http.MethodGet, "/api/incidents?severity=high&page=2&limit=10", &admin, nil)
		require.Equal(t, http.StatusOK, res.Status)
		items := res.List()
		assert.LessOrEqual(t, len(items), 10)
		assert.Len(t, items, 0, "10 high incidents fit on page one")
		for _, it := range items {
			assert.Equal(t, "high", it.(map[string]any)["severity"])
		}
		assert.EqualValues(t, 10, res.Pagination()["total"])

		first := env.Do(t, http.MethodGet, "/api/incidents?severity=high&limit=4&page=2", &admin, nil)
		require.Len(t, first.List(), 4)
		for _, it := range first.List() {
			assert.Equal(t, "high", it.(map[string]any)["severity"])
		}
		assert.EqualValues(t, 3, first.Pagination()["total_pages"])
	})

	t.Run("resolving stamps resolved_at", func(t *testing.T) {
		created := env.Do(t, http.MethodPost, "/api/incidents", &admin, map[string]any{
			"student_id": student, "location": "Lab", "description": "Broke a beaker",
		})
		require.Equal(t, http.StatusCreated, created.Status)
		id := created.Data()["id"].(string)

		res := env.Do(t, http.MethodPatch, "/api/incidents/"+id, &admin, map[string]any{"status": "resolved"})
		require.Equal(t, http.StatusOK, res.Status, res.Body)
		assert.NotEmpty(t, res.Data()["resolved_at"])

		reopened := env.Do(t, http.MethodPatch, "/api/incidents/"+id, &admin, map[string]any{"status": "investigating"})
		require.Equal(t, http.StatusOK, reopened.Status)
		assert.NotContains(t, reopened.Data(), "resolved_at")
	})

	t.Run("stats", func(t *testing.T) {
		res := env.Do(t, http.MethodGet, "/api/incidents/stats/summary", &admin, nil)
		require.Equal(t, http.StatusOK, res.Status)
		data := res.Data()
		total := data["total"].(float64)
		var sum float64
		for _, n := range data["severity"].(map[string]any) {
			sum += n.(float64)
		}
		assert.Equal(t, total, sum)
		assert.EqualValues(t, 0, data["severity"].(map[string]any)["critical"])
	})

	t.Run("delete unknown", func(t *testing.T) {
		res := env.Do(t, http.MethodDelete, "/api/incidents/"+uuid.NewString(), &admin, nil)
		assert.Equal(t, http.StatusNotFound, res.Status)
		assert.Equal(t, "Incident not found", res.Message())
	})

	t.Run("students and parents are refused", func(t *testing.T) {
		for _, role := range []string{constants.RoleStudent, constants.RoleParent} {
			who := testkit.NewCaller(t, school, role)
			res := env.Do(t, http.MethodGet, "/api/incidents", &who, nil)
			assert.Equal(t, http.StatusForbidden, res.Status, role)
		}
	})
}
