package controller

import (
	"strings"
	"time"

	"schoolerp_backend/internals/features/consent/model"
	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/features/shared/scope"
	helperAuth "schoolerp_backend/internals/helpers/auth"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ConsentLetterConfig() resource.Config[model.ConsentLetterModel] {
	return resource.Config[model.ConsentLetterModel]{
		Tag:   "CONSENT",
		Label: "Consent letter",
		Required: func(m *model.ConsentLetterModel) bool {
			return m.StudentID != uuid.Nil && strings.TrimSpace(m.Title) != ""
		},
		RequiredMessage: "Student ID and title are required",
		Defaults: func(m *model.ConsentLetterModel) {
			if m.Status == "" {
				m.Status = model.ConsentPending
			}
		},
		Stamp: func(c *fiber.Ctx, m *model.ConsentLetterModel) error {
			uid, err := helperAuth.GetUserIDFromToken(c)
			if err != nil {
				return err
			}
			m.RequestedByID = uid
			return nil
		},
		Protect: func(dst, stored *model.ConsentLetterModel) {
			dst.RequestedByID = stored.RequestedByID
		},
		BeforeWrite: func(m *model.ConsentLetterModel) error {
			if m.Status == model.ConsentPending {
				m.RespondedAt = nil
				return nil
			}
			if m.RespondedAt == nil {
				now := time.Now().UTC()
				m.RespondedAt = &now
			}
			return nil
		},
		Scope: scope.OwnStudent("student_id"),

		References: []resource.Reference[model.ConsentLetterModel]{
			{Table: refs.TableStudents, Message: "Student not found", ID: func(m *model.ConsentLetterModel) uuid.UUID { return m.StudentID }},
		},
		Filters: []resource.Filter{
			{Param: "student_id", Column: "student_id", Kind: resource.FilterUUID},
			{Param: "status", Column: "status"},
		},
		Sort: resource.Sort{Column: "created_at", Desc: true},
		ByRelation: []resource.RelationRoute{
			{Path: "/student/:studentId", Param: "studentId", Column: "student_id"},
		},
		Stats: &resource.StatsSpec{
			Fields: []resource.EnumField{
				{Name: "status", Column: "status", Values: model.ConsentStatuses},
			},
		},
	}
}
