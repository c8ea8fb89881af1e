package resource

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	helper "schoolerp_backend/internals/helpers"
	helperAuth "schoolerp_backend/internals/helpers/auth"
	"schoolerp_backend/internals/helpers/dbtime"
	report "schoolerp_backend/internals/helpers/report"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FilterKind int

const (
	FilterString FilterKind = iota
	FilterUUID
	FilterBool
)

// Filter whitelists one query parameter as an exact-match column filter.
type Filter struct {
	Param  string
	Column string
	Kind   FilterKind
}

// Reference is a foreign key that must exist in the caller's tenant.
// ID returns uuid.Nil when an optional reference is unset.
type Reference[T any] struct {
	Table   string
	Message string
	ID      func(*T) uuid.UUID
}

// RelationRoute is a fixed list-by-relation route, e.g. /student/:studentId.
type RelationRoute struct {
	Path   string
	Param  string
	Column string
}

type Config[T any] struct {
	Tag   string // log prefix
	Label string // "Incident" → "Incident not found"

	Required        func(*T) bool
	RequiredMessage string

	Defaults    func(*T)
	Stamp       func(c *fiber.Ctx, m *T) error // caller-owned fields, create only
	Protect     func(dst, stored *T)           // restores caller-owned fields on update
	BeforeWrite func(m *T) error
	Check       func(ctx context.Context, m, stored *T) error // cross-document rules, stored is nil on create
	Scope       func(c *fiber.Ctx, q *Query) error            // extra read restriction per caller

	References []Reference[T]
	Filters    []Filter
	Sort       Sort
	ByRelation []RelationRoute
	Stats      *StatsSpec

	PerPage    int
	MaxPerPage int
}

type Controller[T any, PT interface {
	*T
	Model
}] struct {
	Store   Store[T]
	Backend Backend
	Config  Config[T]
}

func NewController[T any, PT interface {
	*T
	Model
}](b Backend, store Store[T], cfg Config[T]) *Controller[T, PT] {
	if cfg.Tag == "" {
		cfg.Tag = strings.ToUpper(tableOf[T, PT]())
	}
	if cfg.Label == "" {
		cfg.Label = "Record"
	}
	if cfg.PerPage <= 0 {
		cfg.PerPage = helper.DefaultPerPage
	}
	if cfg.MaxPerPage <= 0 {
		cfg.MaxPerPage = helper.MaxPerPage
	}
	return &Controller[T, PT]{Store: store, Backend: b, Config: cfg}
}

func reqCtx(c *fiber.Ctx) context.Context { return c.UserContext() }

// ParseID reads a UUID path parameter; malformed ids are a 400.
func ParseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(param)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

// Fail maps store and handler errors onto the error envelope.
func (ctl *Controller[T, PT]) Fail(c *fiber.Ctx, op string, err error) error {
	var (
		fe *fiber.Error
		ve *ValidationError
	)
	switch {
	case errors.As(err, &fe):
		return helper.JsonError(c, fe.Code, fe.Message)
	case errors.As(err, &ve):
		return helper.JsonValidationError(c, ve.Fields)
	case errors.Is(err, ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, ctl.Config.Label+" not found")
	case errors.Is(err, ErrDuplicate):
		return helper.JsonError(c, fiber.StatusConflict, ctl.Config.Label+" already exists")
	}
	log.Printf("[%s][%s] %v", ctl.Config.Tag, op, err)
	report.Error(c, ctl.Config.Tag, err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}

// checkReferences verifies every set reference exists in the tenant.
// With stored != nil only references that changed are checked.
func (ctl *Controller[T, PT]) checkReferences(ctx context.Context, schoolID uuid.UUID, m, stored *T) error {
	for _, ref := range ctl.Config.References {
		id := ref.ID(m)
		if id == uuid.Nil {
			continue
		}
		if stored != nil && ref.ID(stored) == id {
			continue
		}
		ok, err := ctl.Backend.Exists(ctx, ref.Table, schoolID, id)
		if err != nil {
			return err
		}
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, ref.Message)
		}
	}
	return nil
}

// baseQuery builds the tenant query. Scope runs last so neither query
// filters nor pinned columns can widen it.
func (ctl *Controller[T, PT]) baseQuery(c *fiber.Ctx, pinned map[string]any) (Query, error) {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return Query{}, err
	}
	q := Query{SchoolID: schoolID, Sort: ctl.Config.Sort, Where: map[string]any{}}
	for _, f := range ctl.Config.Filters {
		raw := strings.TrimSpace(c.Query(f.Param))
		if raw == "" {
			continue
		}
		switch f.Kind {
		case FilterUUID:
			id, err := uuid.Parse(raw)
			if err != nil {
				return Query{}, fiber.NewError(fiber.StatusBadRequest, "Invalid "+f.Param)
			}
			q.Where[f.Column] = id
		case FilterBool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return Query{}, fiber.NewError(fiber.StatusBadRequest, "Invalid "+f.Param)
			}
			q.Where[f.Column] = b
		default:
			q.Where[f.Column] = raw
		}
	}
	for col, v := range pinned {
		q.Where[col] = v
	}
	if ctl.Config.Scope != nil {
		if err := ctl.Config.Scope(c, &q); err != nil {
			return Query{}, err
		}
	}
	return q, nil
}

/* ===================== CREATE ===================== */

func (ctl *Controller[T, PT]) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return ctl.Fail(c, "CREATE", err)
	}

	var m T
	if err := c.BodyParser(&m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if ctl.Config.Required != nil && !ctl.Config.Required(&m) {
		return helper.JsonError(c, fiber.StatusBadRequest, ctl.Config.RequiredMessage)
	}

	now := time.Now().UTC()
	*PT(&m).Meta() = Base{ID: uuid.New(), SchoolID: schoolID, CreatedAt: now, UpdatedAt: now}
	if ctl.Config.Defaults != nil {
		ctl.Config.Defaults(&m)
	}
	if ctl.Config.Stamp != nil {
		if err := ctl.Config.Stamp(c, &m); err != nil {
			return ctl.Fail(c, "CREATE", err)
		}
	}

	ctx := reqCtx(c)
	if err := ctl.checkReferences(ctx, schoolID, &m, nil); err != nil {
		return ctl.Fail(c, "CREATE", err)
	}
	if ctl.Config.Check != nil {
		if err := ctl.Config.Check(ctx, &m, nil); err != nil {
			return ctl.Fail(c, "CREATE", err)
		}
	}
	if ctl.Config.BeforeWrite != nil {
		if err := ctl.Config.BeforeWrite(&m); err != nil {
			return ctl.Fail(c, "CREATE", err)
		}
	}
	if err := ctl.Store.Insert(ctx, &m); err != nil {
		return ctl.Fail(c, "CREATE", err)
	}

	created, err := ctl.Store.Get(ctx, schoolID, PT(&m).Meta().ID)
	if err != nil {
		return ctl.Fail(c, "CREATE", err)
	}
	return helper.JsonCreated(c, ctl.Config.Label+" created successfully", created)
}

/* ===================== LIST ===================== */

func (ctl *Controller[T, PT]) List(c *fiber.Ctx) error {
	q, err := ctl.baseQuery(c, nil)
	if err != nil {
		return ctl.Fail(c, "LIST", err)
	}
	paging := helper.ResolvePaging(c, ctl.Config.PerPage, ctl.Config.MaxPerPage)

	ctx := reqCtx(c)
	total, err := ctl.Store.Count(ctx, q)
	if err != nil {
		return ctl.Fail(c, "LIST", err)
	}
	q.Offset, q.Limit = paging.Offset, paging.Limit
	items, err := ctl.Store.Find(ctx, q)
	if err != nil {
		return ctl.Fail(c, "LIST", err)
	}
	return helper.JsonList(c, "ok", items, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// ListBy serves a RelationRoute: same as List filtered on one foreign key,
// unpaginated.
func (ctl *Controller[T, PT]) ListBy(rr RelationRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		relatedID, err := ParseID(c, rr.Param)
		if err != nil {
			return ctl.Fail(c, "LIST_BY", err)
		}
		q, err := ctl.baseQuery(c, map[string]any{rr.Column: relatedID})
		if err != nil {
			return ctl.Fail(c, "LIST_BY", err)
		}
		items, err := ctl.Store.Find(reqCtx(c), q)
		if err != nil {
			return ctl.Fail(c, "LIST_BY", err)
		}
		return helper.JsonList(c, "ok", items, nil)
	}
}

/* ===================== GET ===================== */

func (ctl *Controller[T, PT]) Get(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return ctl.Fail(c, "GET", err)
	}
	id, err := ParseID(c, "id")
	if err != nil {
		return ctl.Fail(c, "GET", err)
	}
	m, err := ctl.Store.Get(reqCtx(c), schoolID, id)
	if err != nil {
		return ctl.Fail(c, "GET", err)
	}
	if err := ctl.visible(c, m); err != nil {
		return ctl.Fail(c, "GET", err)
	}
	return helper.JsonOK(c, "ok", m)
}

// visible applies Scope to a single document.
func (ctl *Controller[T, PT]) visible(c *fiber.Ctx, m *T) error {
	if ctl.Config.Scope == nil {
		return nil
	}
	q := Query{Where: map[string]any{}}
	if err := ctl.Config.Scope(c, &q); err != nil {
		return err
	}
	q.AllTenants = true
	if !matchDoc[T, PT](m, q) {
		return ErrNotFound
	}
	return nil
}

/* ===================== UPDATE ===================== */

// Update overlays the body onto the stored document and replaces it.
func (ctl *Controller[T, PT]) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return ctl.Fail(c, "UPDATE", err)
	}
	id, err := ParseID(c, "id")
	if err != nil {
		return ctl.Fail(c, "UPDATE", err)
	}

	ctx := reqCtx(c)
	stored, err := ctl.Store.Get(ctx, schoolID, id)
	if err != nil {
		return ctl.Fail(c, "UPDATE", err)
	}
	if err := ctl.visible(c, stored); err != nil {
		return ctl.Fail(c, "UPDATE", err)
	}

	m := *stored
	if err := c.BodyParser(&m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	orig := PT(stored).Meta()
	*PT(&m).Meta() = Base{ID: orig.ID, SchoolID: orig.SchoolID, CreatedAt: orig.CreatedAt, UpdatedAt: time.Now().UTC()}
	if ctl.Config.Protect != nil {
		ctl.Config.Protect(&m, stored)
	}

	if err := ctl.checkReferences(ctx, schoolID, &m, stored); err != nil {
		return ctl.Fail(c, "UPDATE", err)
	}
	if ctl.Config.Check != nil {
		if err := ctl.Config.Check(ctx, &m, stored); err != nil {
			return ctl.Fail(c, "UPDATE", err)
		}
	}
	if ctl.Config.BeforeWrite != nil {
		if err := ctl.Config.BeforeWrite(&m); err != nil {
			return ctl.Fail(c, "UPDATE", err)
		}
	}
	if err := ctl.Store.Replace(ctx, &m); err != nil {
		return ctl.Fail(c, "UPDATE", err)
	}

	updated, err := ctl.Store.Get(ctx, schoolID, id)
	if err != nil {
		return ctl.Fail(c, "UPDATE", err)
	}
	return helper.JsonUpdated(c, ctl.Config.Label+" updated successfully", updated)
}

/* ===================== DELETE ===================== */

func (ctl *Controller[T, PT]) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return ctl.Fail(c, "DELETE", err)
	}
	id, err := ParseID(c, "id")
	if err != nil {
		return ctl.Fail(c, "DELETE", err)
	}
	ctx := reqCtx(c)
	if ctl.Config.Scope != nil {
		m, err := ctl.Store.Get(ctx, schoolID, id)
		if err != nil {
			return ctl.Fail(c, "DELETE", err)
		}
		if err := ctl.visible(c, m); err != nil {
			return ctl.Fail(c, "DELETE", err)
		}
	}
	if err := ctl.Store.Delete(ctx, schoolID, id); err != nil {
		return ctl.Fail(c, "DELETE", err)
	}
	return helper.JsonDeleted(c, ctl.Config.Label+" deleted successfully", fiber.Map{"id": id})
}

/* ===================== STATS ===================== */

// Stats buckets every declared enum value inside ?start_date=&end_date=.
func (ctl *Controller[T, PT]) Stats(c *fiber.Ctx) error {
	spec := ctl.Config.Stats
	if spec == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Not found")
	}
	q, err := ctl.baseQuery(c, nil)
	if err != nil {
		return ctl.Fail(c, "STATS", err)
	}

	loc := dbtime.GetSchoolLocation(c)
	from, err := dbtime.ParseDateParam(c.Query("start_date"), loc, false)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid start_date")
	}
	to, err := dbtime.ParseDateParam(c.Query("end_date"), loc, true)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid end_date")
	}
	if from != nil || to != nil {
		col := spec.DateColumn
		if col == "" {
			col = "created_at"
		}
		q.Ranges = append(q.Ranges, Range{Column: col, From: from, To: to})
	}

	st, err := ctl.Store.Stats(reqCtx(c), q, spec.Fields)
	if err != nil {
		return ctl.Fail(c, "STATS", err)
	}
	return helper.JsonOK(c, "ok", st.Map())
}
