package resource_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/shared/scope"
	"schoolerp_backend/internals/resource"
	"schoolerp_backend/internals/testkit"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mark struct {
	resource.Base `bson:",inline"`

	StudentID uuid.UUID `json:"student_id" bson:"student_id"`
	Result    string    `json:"result" bson:"result" validate:"oneof=pass fail"`
	Remarks   string    `json:"remarks" bson:"remarks"`
}

func (mark) TableName() string { return "marks" }

func newMarkEnv(t *testing.T) *testkit.Env {
	return testkit.New(t, func(r fiber.Router, be resource.Backend) {
		ctl := resource.NewController[mark](be, resource.StoreFor[mark](be), resource.Config[mark]{
			Tag:   "MARK",
			Label: "Mark",
			Scope: scope.OwnStudent("student_id"),
			Filters: []resource.Filter{
				{Param: "student_id", Column: "student_id", Kind: resource.FilterUUID},
			},
			ByRelation: []resource.RelationRoute{
				{Path: "/student/:studentId", Param: "studentId", Column: "student_id"},
			},
			Stats: &resource.StatsSpec{
				Fields: []resource.EnumField{{Name: "result", Column: "result", Values: []string{"pass", "fail"}}},
			},
		})
		// writes open to every role so the scope is the only guard left
		resource.Mount(r, "/marks", ctl, resource.MountOptions{Feature: "marks"})
	})
}

func seedMark(t *testing.T, env *testkit.Env, schoolID, studentID uuid.UUID, result, remarks string) string {
	t.Helper()
	now := time.Now().UTC()
	m := &mark{
		Base:      resource.Base{ID: uuid.New(), SchoolID: schoolID, CreatedAt: now, UpdatedAt: now},
		StudentID: studentID,
		Result:    result,
		Remarks:   remarks,
	}
	require.NoError(t, resource.StoreFor[mark](env.Backend).Insert(context.Background(), m))
	return m.ID.String()
}

func TestScope_StudentSeesOnlyOwnRows(t *testing.T) {
	env := newMarkEnv(t)
	school := uuid.New()
	alice, bob := uuid.New(), uuid.New()
	asAlice := testkit.NewStudentCaller(t, school, constants.RoleStudent, alice)
	admin := testkit.NewCaller(t, school, constants.RoleAdmin)

	own := seedMark(t, env, school, alice, "pass", "")
	seedMark(t, env, school, alice, "fail", "")
	bobs := seedMark(t, env, school, bob, "pass", "private")

	lists := []struct {
		name string
		who  *testkit.Caller
		path string
		want int
	}{
		{"plain list", &asAlice, "/api/marks", 2},
		{"filter on another student", &asAlice, "/api/marks?student_id=" + bob.String(), 0},
		{"relation route on another student", &asAlice, "/api/marks/student/" + bob.String(), 0},
		{"relation route on self", &asAlice, "/api/marks/student/" + alice.String(), 2},
		{"admin relation route", &admin, "/api/marks/student/" + bob.String(), 1},
		{"admin list", &admin, "/api/marks", 3},
	}
	for _, tc := range lists {
		t.Run(tc.name, func(t *testing.T) {
			res := env.Do(t, http.MethodGet, tc.path, tc.who, nil)
			require.Equal(t, http.StatusOK, res.Status, res.Body)
			assert.Len(t, res.List(), tc.want)
			for _, item := range res.List() {
				if tc.who.Role == constants.RoleStudent {
					assert.Equal(t, alice.String(), item.(map[string]any)["student_id"])
				}
			}
		})
	}

	t.Run("get own and foreign", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, env.Do(t, http.MethodGet, "/api/marks/"+own, &asAlice, nil).Status)

		res := env.Do(t, http.MethodGet, "/api/marks/"+bobs, &asAlice, nil)
		assert.Equal(t, http.StatusNotFound, res.Status)
		assert.Equal(t, "Mark not found", res.Message())
	})

	t.Run("stats count own rows only", func(t *testing.T) {
		res := env.Do(t, http.MethodGet, "/api/marks/stats/summary", &asAlice, nil)
		require.Equal(t, http.StatusOK, res.Status, res.Body)
		assert.EqualValues(t, 2, res.Data()["total"])
		assert.EqualValues(t, 1, res.Data()["result"].(map[string]any)["pass"])
	})

	t.Run("foreign rows cannot be changed", func(t *testing.T) {
		upd := env.Do(t, http.MethodPatch, "/api/marks/"+bobs, &asAlice, map[string]any{"remarks": "edited"})
		assert.Equal(t, http.StatusNotFound, upd.Status)

		del := env.Do(t, http.MethodDelete, "/api/marks/"+bobs, &asAlice, nil)
		assert.Equal(t, http.StatusNotFound, del.Status)

		still := env.Do(t, http.MethodGet, "/api/marks/"+bobs, &admin, nil)
		require.Equal(t, http.StatusOK, still.Status)
		assert.Equal(t, "private", still.Data()["remarks"])
	})
}

func TestScope_UnlinkedStudentIsRefused(t *testing.T) {
	env := newMarkEnv(t)
	school := uuid.New()
	unlinked := testkit.NewCaller(t, school, constants.RoleStudent)
	id := seedMark(t, env, school, uuid.New(), "pass", "")

	for _, path := range []string{"/api/marks", "/api/marks/" + id, "/api/marks/stats/summary", "/api/marks/student/" + uuid.NewString()} {
		res := env.Do(t, http.MethodGet, path, &unlinked, nil)
		assert.Equal(t, http.StatusForbidden, res.Status, path)
		assert.Equal(t, "Student account is not linked to a student record", res.Message(), path)
	}
}
