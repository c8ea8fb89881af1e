package resource_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"schoolerp_backend/internals/constants"
	helperAuth "schoolerp_backend/internals/helpers/auth"
	"schoolerp_backend/internals/resource"
	"schoolerp_backend/internals/testkit"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shelf struct {
	resource.Base `bson:",inline"`
	Label         string `json:"label" bson:"label"`
}

func (shelf) TableName() string { return "shelves" }

type shelfRef struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
}

type gadget struct {
	resource.Base `bson:",inline"`

	Name    string    `json:"name" bson:"name"`
	Kind    string    `json:"kind" bson:"kind" validate:"oneof=tool toy"`
	ShelfID uuid.UUID `json:"shelf_id" bson:"shelf_id"`
	Owner   string    `json:"owner" bson:"owner"`

	Shelf *shelfRef `json:"shelf,omitempty" bson:"shelf,omitempty"`
}

func (gadget) TableName() string { return "gadgets" }

func gadgetConfig() resource.Config[gadget] {
	return resource.Config[gadget]{
		Tag:   "GADGET",
		Label: "Gadget",
		Required: func(m *gadget) bool {
			return strings.TrimSpace(m.Name) != "" && m.ShelfID != uuid.Nil
		},
		RequiredMessage: "Name and shelf are required",
		Defaults: func(m *gadget) {
			if m.Kind == "" {
				m.Kind = "tool"
			}
		},
		Stamp: func(c *fiber.Ctx, m *gadget) error {
			uid, err := helperAuth.GetUserIDFromToken(c)
			if err != nil {
				return err
			}
			m.Owner = uid.String()
			return nil
		},
		Protect: func(dst, stored *gadget) { dst.Owner = stored.Owner },
		References: []resource.Reference[gadget]{
			{Table: "shelves", Message: "Shelf not found", ID: func(m *gadget) uuid.UUID { return m.ShelfID }},
		},
		Filters: []resource.Filter{
			{Param: "kind", Column: "kind"},
			{Param: "shelf_id", Column: "shelf_id", Kind: resource.FilterUUID},
		},
		Sort: resource.Sort{Column: "name"},
		ByRelation: []resource.RelationRoute{
			{Path: "/shelf/:shelfId", Param: "shelfId", Column: "shelf_id"},
		},
		Stats: &resource.StatsSpec{
			Fields: []resource.EnumField{{Name: "kind", Column: "kind", Values: []string{"tool", "toy"}}},
		},
	}
}

func newGadgetEnv(t *testing.T) *testkit.Env {
	return testkit.New(t, func(r fiber.Router, be resource.Backend) {
		store := resource.StoreFor[gadget](be, resource.Relation{Field: "Shelf", Table: "shelves", Column: "shelf_id"})
		ctl := resource.NewController[gadget](be, store, gadgetConfig())
		resource.Mount(r, "/gadgets", ctl, resource.MountOptions{
			Feature: "gadgets",
			Write:   constants.AdminOnly,
		})
	})
}

func seedShelf(t *testing.T, env *testkit.Env, schoolID uuid.UUID, label string) uuid.UUID {
	t.Helper()
	now := time.Now().UTC()
	s := &shelf{Base: resource.Base{ID: uuid.New(), SchoolID: schoolID, CreatedAt: now, UpdatedAt: now}, Label: label}
	require.NoError(t, resource.StoreFor[shelf](env.Backend).Insert(context.Background(), s))
	return s.ID
}

func createGadget(t *testing.T, env *testkit.Env, who *testkit.Caller, body map[string]any) string {
	t.Helper()
	res := env.Do(t, http.MethodPost, "/api/gadgets", who, body)
	require.Equal(t, http.StatusCreated, res.Status, res.Body)
	return res.Data()["id"].(string)
}

func TestCreate_TenantAndStampComeFromToken(t *testing.T) {
	env := newGadgetEnv(t)
	admin := testkit.NewCaller(t, uuid.New(), constants.RoleAdmin)
	shelfID := seedShelf(t, env, admin.SchoolID, "A1")

	res := env.Do(t, http.MethodPost, "/api/gadgets", &admin, map[string]any{
		"name":      "hammer",
		"shelf_id":  shelfID,
		"school_id": uuid.New(),
		"owner":     "someone-else",
	})

	require.Equal(t, http.StatusCreated, res.Status, res.Body)
	assert.Equal(t, true, res.Body["success"])
	data := res.Data()
	assert.Equal(t, admin.SchoolID.String(), data["school_id"])
	assert.Equal(t, admin.UserID.String(), data["owner"])
	assert.Equal(t, "tool", data["kind"], "default applied")
	assert.Equal(t, "A1", data["shelf"].(map[string]any)["label"], "reference populated")
}

func TestCreate_Validation(t *testing.T) {
	env := newGadgetEnv(t)
	admin := testkit.NewCaller(t, uuid.New(), constants.RoleAdmin)
	shelfID := seedShelf(t, env, admin.SchoolID, "A1")
	foreignShelf := seedShelf(t, env, uuid.New(), "elsewhere")

	t.Run("missing required", func(t *testing.T) {
		res := env.Do(t, http.MethodPost, "/api/gadgets", &admin, map[string]any{"name": "hammer"})
		assert.Equal(t, http.StatusBadRequest, res.Status)
		assert.Equal(t, "Name and shelf are required", res.Message())
	})
	t.Run("reference in another school", func(t *testing.T) {
		res := env.Do(t, http.MethodPost, "/api/gadgets", &admin, map[string]any{"name": "hammer", "shelf_id": foreignShelf})
		assert.Equal(t, http.StatusNotFound, res.Status)
		assert.Equal(t, "Shelf not found", res.Message())
	})
	t.Run("enum outside the allowed set", func(t *testing.T) {
		res := env.Do(t, http.MethodPost, "/api/gadgets", &admin, map[string]any{"name": "hammer", "shelf_id": shelfID, "kind": "weapon"})
		assert.Equal(t, http.StatusBadRequest, res.Status)
		assert.Equal(t, "VALIDATION_ERROR", res.Body["error_code"])
		assert.Contains(t, res.Body["errors"], "kind")
	})
	t.Run("malformed body", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/api/gadgets", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+admin.Token)
		res := env.Send(t, req)
		assert.Equal(t, http.StatusBadRequest, res.Status)
	})
}

func TestTenantIsolation(t *testing.T) {
	env := newGadgetEnv(t)
	a := testkit.NewCaller(t, uuid.New(), constants.RoleAdmin)
	b := testkit.NewCaller(t, uuid.New(), constants.RoleAdmin)
	id := createGadget(t, env, &a, map[string]any{"name": "drill", "shelf_id": seedShelf(t, env, a.SchoolID, "A")})

	list := env.Do(t, http.MethodGet, "/api/gadgets", &b, nil)
	require.Equal(t, http.StatusOK, list.Status)
	assert.Empty(t, list.List())
	assert.EqualValues(t, 0, list.Pagination()["total"])

	for _, tc := range []struct {
		method string
		body   any
	}{
		{http.MethodGet, nil},
		{http.MethodPatch, map[string]any{"name": "stolen"}},
		{http.MethodDelete, nil},
	} {
		res := env.Do(t, tc.method, "/api/gadgets/"+id, &b, tc.body)
		assert.Equal(t, http.StatusNotFound, res.Status, tc.method)
		assert.Equal(t, "Gadget not found", res.Message(), tc.method)
	}

	got := env.Do(t, http.MethodGet, "/api/gadgets/"+id, &a, nil)
	assert.Equal(t, http.StatusOK, got.Status)
	assert.Equal(t, "drill", got.Data()["name"])
}

func TestMalformedID(t *testing.T) {
	env := newGadgetEnv(t)
	admin := testkit.NewCaller(t, uuid.New(), constants.RoleAdmin)

	res := env.Do(t, http.MethodGet, "/api/gadgets/not-a-uuid", &admin, nil)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	assert.Equal(t, "Invalid id", res.Message())
}

func TestListPagination(t *testing.T) {
	env := newGadgetEnv(t)
	admin := testkit.NewCaller(t, uuid.New(), constants.RoleAdmin)
	shelfID := seedShelf(t, env, admin.SchoolID, "A")
	for i := 0; i < 25; i++ {
		createGadget(t, env, &admin, map[string]any{"name": fmt.Sprintf("g%02d", i), "shelf_id": shelfID})
	}

	res := env.Do(t, http.MethodGet, "/api/gadgets?page=3&limit=10", &admin, nil)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.List(), 5)
	p := res.Pagination()
	assert.EqualValues(t, 3, p["page"])
	assert.EqualValues(t, 10, p["per_page"])
	assert.EqualValues(t, 25, p["total"])
	assert.EqualValues(t, 3, p["total_pages"])
	assert.EqualValues(t, 5, p["count"])
	assert.Equal(t, false, p["has_next"])
	assert.Equal(t, true, p["has_prev"])
	assert.Equal(t, "g20", res.List()[0].(map[string]any)["name"], "sorted by name")

	defaults := env.Do(t, http.MethodGet, "/api/gadgets", &admin, nil)
	assert.Len(t, defaults.List(), 10)
	assert.EqualValues(t, 1, defaults.Pagination()["page"])

	capped := env.Do(t, http.MethodGet, "/api/gadgets?limit=500", &admin, nil)
	assert.EqualValues(t, 100, capped.Pagination()["per_page"])
	assert.Len(t, capped.List(), 25)

	beyond := env.Do(t, http.MethodGet, "/api/gadgets?page=9", &admin, nil)
	assert.Empty(t, beyond.List())
}

func TestListFilters(t *testing.T) {
	env := newGadgetEnv(t)
	admin := testkit.NewCaller(t, uuid.New(), constants.RoleAdmin)
	s1 := seedShelf(t, env, admin.SchoolID, "A")
	s2 := seedShelf(t, env, admin.SchoolID, "B")
	createGadget(t, env, &admin, map[string]any{"name": "a", "shelf_id": s1, "kind": "toy"})
	createGadget(t, env, &admin, map[string]any{"name": "b", "shelf_id": s1})
	createGadget(t, env, &admin, map[string]any{"name": "c", "shelf_id": s2, "kind": "toy"})

	toys := env.Do(t, http.MethodGet, "/api/gadgets?kind=toy", &admin, nil)
	require.Equal(t, http.StatusOK, toys.Status)
	require.Len(t, toys.List(), 2)
	for _, it := range toys.List() {
		assert.Equal(t, "toy", it.(map[string]any)["kind"])
	}

	both := env.Do(t, http.MethodGet, "/api/gadgets?kind=toy&shelf_id="+s1.String(), &admin, nil)
	assert.Len(t, both.List(), 1)

	bad := env.Do(t, http.MethodGet, "/api/gadgets?shelf_id=nope", &admin, nil)
	assert.Equal(t, http.StatusBadRequest, bad.Status)
	assert.Equal(t, "Invalid shelf_id", bad.Message())

	byShelf := env.Do(t, http.MethodGet, "/api/gadgets/shelf/"+s1.String(), &admin, nil)
	require.Equal(t, http.StatusOK, byShelf.Status)
	assert.Len(t, byShelf.List(), 2)
	assert.NotContains(t, byShelf.Body, "pagination")
}

func TestUpdate_OverlaysAndProtects(t *testing.T) {
	env := newGadgetEnv(t)
	admin := testkit.NewCaller(t, uuid.New(), constants.RoleAdmin)
	shelfID := seedShelf(t, env, admin.SchoolID, "A")
	id := createGadget(t, env, &admin, map[string]any{"name": "saw", "shelf_id": shelfID, "kind": "toy"})
	before := env.Do(t, http.MethodGet, "/api/gadgets/"+id, &admin, nil).Data()

	res := env.Do(t, http.MethodPatch, "/api/gadgets/"+id, &admin, map[string]any{
		"name":       "band saw",
		"owner":      "intruder",
		"school_id":  uuid.New(),
		"created_at": "2000-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusOK, res.Status, res.Body)
	after := res.Data()
	assert.Equal(t, "band saw", after["name"])
	assert.Equal(t, "toy", after["kind"], "untouched fields survive")
	assert.Equal(t, admin.UserID.String(), after["owner"])
	assert.Equal(t, admin.SchoolID.String(), after["school_id"])
	assert.Equal(t, before["created_at"], after["created_at"])

	bad := env.Do(t, http.MethodPatch, "/api/gadgets/"+id, &admin, map[string]any{"kind": "weapon"})
	assert.Equal(t, http.StatusBadRequest, bad.Status)

	moved := env.Do(t, http.MethodPatch, "/api/gadgets/"+id, &admin, map[string]any{"shelf_id": uuid.New()})
	assert.Equal(t, http.StatusNotFound, moved.Status)
	assert.Equal(t, "Shelf not found", moved.Message())

	missing := env.Do(t, http.MethodPut, "/api/gadgets/"+uuid.NewString(), &admin, map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, missing.Status)
}

func TestDelete(t *testing.T) {
	env := newGadgetEnv(t)
	admin := testkit.NewCaller(t, uuid.New(), constants.RoleAdmin)
	id := createGadget(t, env, &admin, map[string]any{"name": "saw", "shelf_id": seedShelf(t, env, admin.SchoolID, "A")})

	res := env.Do(t, http.MethodDelete, "/api/gadgets/"+id, &admin, nil)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Gadget deleted successfully", res.Message())

	again := env.Do(t, http.MethodDelete, "/api/gadgets/"+id, &admin, nil)
	assert.Equal(t, http.StatusNotFound, again.Status)
	assert.Equal(t, "Gadget not found", again.Message())
}

func TestStats_BucketsSumToTotal(t *testing.T) {
	env := newGadgetEnv(t)
	admin := testkit.NewCaller(t, uuid.New(), constants.RoleAdmin)
	other := testkit.NewCaller(t, uuid.New(), constants.RoleAdmin)
	shelfID := seedShelf(t, env, admin.SchoolID, "A")
	for i, kind := range []string{"toy", "toy", "tool"} {
		createGadget(t, env, &admin, map[string]any{"name": fmt.Sprint(i), "shelf_id": shelfID, "kind": kind})
	}
	createGadget(t, env, &other, map[string]any{"name": "x", "shelf_id": seedShelf(t, env, other.SchoolID, "B")})

	res := env.Do(t, http.MethodGet, "/api/gadgets/stats/summary", &admin, nil)
	require.Equal(t, http.StatusOK, res.Status, res.Body)
	data := res.Data()
	assert.EqualValues(t, 3, data["total"])
	kinds := data["kind"].(map[string]any)
	assert.EqualValues(t, 2, kinds["toy"])
	assert.EqualValues(t, 1, kinds["tool"])

	empty := env.Do(t, http.MethodGet, "/api/gadgets/stats/summary?start_date=2999-01-01", &admin, nil)
	require.Equal(t, http.StatusOK, empty.Status)
	assert.EqualValues(t, 0, empty.Data()["total"])
	assert.EqualValues(t, 0, empty.Data()["kind"].(map[string]any)["toy"], "zero-filled")

	bad := env.Do(t, http.MethodGet, "/api/gadgets/stats/summary?end_date=yesterday", &admin, nil)
	assert.Equal(t, http.StatusBadRequest, bad.Status)
	assert.Equal(t, "Invalid end_date", bad.Message())
}

func TestAuthAndRoles(t *testing.T) {
	env := newGadgetEnv(t)
	teacher := testkit.NewCaller(t, uuid.New(), constants.RoleTeacher)

	anon := env.Do(t, http.MethodGet, "/api/gadgets", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, anon.Status)

	forged := teacher
	forged.Token += "x"
	assert.Equal(t, http.StatusUnauthorized, env.Do(t, http.MethodGet, "/api/gadgets", &forged, nil).Status)

	assert.Equal(t, http.StatusOK, env.Do(t, http.MethodGet, "/api/gadgets", &teacher, nil).Status)

	res := env.Do(t, http.MethodPost, "/api/gadgets", &teacher, map[string]any{"name": "x"})
	assert.Equal(t, http.StatusForbidden, res.Status)
	assert.Equal(t, "FORBIDDEN", res.Body["error_code"])
}
