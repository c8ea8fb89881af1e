package controller

import (
	"strings"

	"schoolerp_backend/internals/features/notices/model"
	helperAuth "schoolerp_backend/internals/helpers/auth"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

func NoticeConfig() resource.Config[model.NoticeModel] {
	return resource.Config[model.NoticeModel]{
		Tag:   "NOTICE",
		Label: "Notice",
		Required: func(m *model.NoticeModel) bool {
			return strings.TrimSpace(m.Title) != "" && strings.TrimSpace(m.Body) != ""
		},
		RequiredMessage: "Title and body are required",
		Defaults: func(m *model.NoticeModel) {
			if m.Audience == "" {
				m.Audience = model.AudienceAll
			}
			if m.Priority == "" {
				m.Priority = model.PriorityNormal
			}
			if m.PublishDate.IsZero() {
				m.PublishDate = m.CreatedAt
			}
			if m.Attachments == nil {
				m.Attachments = pq.StringArray{}
			}
		},
		Stamp: func(c *fiber.Ctx, m *model.NoticeModel) error {
			uid, err := helperAuth.GetUserIDFromToken(c)
			if err != nil {
				return err
			}
			m.PostedByID = uid
			return nil
		},
		Protect: func(dst, stored *model.NoticeModel) {
			dst.PostedByID = stored.PostedByID
		},
		Filters: []resource.Filter{
			{Param: "audience", Column: "audience"},
			{Param: "priority", Column: "priority"},
		},
		Sort: resource.Sort{Column: "publish_date", Desc: true},
		Stats: &resource.StatsSpec{
			DateColumn: "publish_date",
			Fields: []resource.EnumField{
				{Name: "audience", Column: "audience", Values: model.Audiences},
				{Name: "priority", Column: "priority", Values: model.Priorities},
			},
		},
	}
}
