// file: internals/features/frontoffice/controller/frontoffice_controller.go
package controller

import (
	"strings"

	"schoolerp_backend/internals/features/frontoffice/model"
	"schoolerp_backend/internals/resource"
)

func VisitorConfig() resource.Config[model.VisitorModel] {
	return resource.Config[model.VisitorModel]{
		Tag:   "VISITOR",
		Label: "Visitor",
		Required: func(m *model.VisitorModel) bool {
			return strings.TrimSpace(m.Name) != ""
		},
		RequiredMessage: "Visitor name is required",
		Defaults: func(m *model.VisitorModel) {
			if m.Purpose == "" {
				m.Purpose = model.PurposeOther
			}
			if m.NumPersons == 0 {
				m.NumPersons = 1
			}
			if m.CheckIn.IsZero() {
				m.CheckIn = m.CreatedAt
			}
		},
		BeforeWrite: func(m *model.VisitorModel) error {
			if m.CheckOut != nil && m.CheckOut.Before(m.CheckIn) {
				return &resource.ValidationError{Fields: map[string][]string{
					"check_out": {"check_out must not be before check_in"},
				}}
			}
			return nil
		},
		Filters: []resource.Filter{
			{Param: "purpose", Column: "purpose"},
			{Param: "phone", Column: "phone"},
		},
		Sort: resource.Sort{Column: "check_in", Desc: true},
		Stats: &resource.StatsSpec{
			DateColumn: "check_in",
			Fields: []resource.EnumField{
				{Name: "purpose", Column: "purpose", Values: model.VisitPurposes},
			},
		},
	}
}

func EnquiryConfig() resource.Config[model.EnquiryModel] {
	return resource.Config[model.EnquiryModel]{
		Tag:   "ENQUIRY",
		Label: "Enquiry",
		Required: func(m *model.EnquiryModel) bool {
			return strings.TrimSpace(m.Name) != "" &&
				(strings.TrimSpace(m.Phone) != "" || strings.TrimSpace(m.Email) != "")
		},
		RequiredMessage: "Name and a phone number or email are required",
		Defaults: func(m *model.EnquiryModel) {
			if m.Source == "" {
				m.Source = model.SourceWalkIn
			}
			if m.Status == "" {
				m.Status = model.EnquiryOpen
			}
		},
		BeforeWrite: func(m *model.EnquiryModel) error {
			m.Email = strings.ToLower(strings.TrimSpace(m.Email))
			return nil
		},
		Filters: []resource.Filter{
			{Param: "source", Column: "source"},
			{Param: "status", Column: "status"},
		},
		Sort: resource.Sort{Column: "created_at", Desc: true},
		Stats: &resource.StatsSpec{
			Fields: []resource.EnumField{
				{Name: "status", Column: "status", Values: model.EnquiryStatuses},
				{Name: "source", Column: "source", Values: model.EnquirySources},
			},
		},
	}
}
