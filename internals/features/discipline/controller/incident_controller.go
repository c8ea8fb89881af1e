// file: internals/features/discipline/controller/incident_controller.go
package controller

import (
	"strings"
	"time"

	"schoolerp_backend/internals/features/discipline/model"
	"schoolerp_backend/internals/features/shared/refs"
	helperAuth "schoolerp_backend/internals/helpers/auth"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// IncidentConfig wires incidents into the generic resource controller.
func IncidentConfig() resource.Config[model.IncidentModel] {
	return resource.Config[model.IncidentModel]{
		Tag:   "INCIDENT",
		Label: "Incident",

		Required: func(m *model.IncidentModel) bool {
			return m.StudentID != uuid.Nil &&
				strings.TrimSpace(m.Location) != "" &&
				strings.TrimSpace(m.Description) != ""
		},
		RequiredMessage: "Student ID, location, and description are required",

		Defaults: func(m *model.IncidentModel) {
			if m.IncidentType == "" {
				m.IncidentType = model.IncidentTypeOther
			}
			if m.Severity == "" {
				m.Severity = model.SeverityMedium
			}
			if m.Status == "" {
				m.Status = model.IncidentStatusPending
			}
			if m.IncidentDate.IsZero() {
				m.IncidentDate = m.CreatedAt
			}
		},
		Stamp: func(c *fiber.Ctx, m *model.IncidentModel) error {
			uid, err := helperAuth.GetUserIDFromToken(c)
			if err != nil {
				return err
			}
			m.ReportedByID = uid
			return nil
		},
		Protect: func(dst, stored *model.IncidentModel) {
			dst.ReportedByID = stored.ReportedByID
		},
		BeforeWrite: func(m *model.IncidentModel) error {
			switch m.Status {
			case model.IncidentStatusResolved, model.IncidentStatusDismissed:
				if m.ResolvedAt == nil {
					now := time.Now().UTC()
					m.ResolvedAt = &now
				}
			default:
				m.ResolvedAt = nil
			}
			return nil
		},

		References: []resource.Reference[model.IncidentModel]{
			{Table: refs.TableStudents, Message: "Student not found", ID: func(m *model.IncidentModel) uuid.UUID { return m.StudentID }},
		},
		Filters: []resource.Filter{
			{Param: "student_id", Column: "student_id", Kind: resource.FilterUUID},
			{Param: "incident_type", Column: "incident_type"},
			{Param: "severity", Column: "severity"},
			{Param: "status", Column: "status"},
		},
		Sort: resource.Sort{Column: "incident_date", Desc: true},
		ByRelation: []resource.RelationRoute{
			{Path: "/student/:studentId", Param: "studentId", Column: "student_id"},
		},
		Stats: &resource.StatsSpec{
			DateColumn: "incident_date",
			Fields: []resource.EnumField{
				{Name: "severity", Column: "severity", Values: model.Severities},
				{Name: "status", Column: "status", Values: model.IncidentStatuses},
				{Name: "incident_type", Column: "incident_type", Values: model.IncidentTypes},
			},
		},
	}
}
