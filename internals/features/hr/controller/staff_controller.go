// file: internals/features/hr/controller/staff_controller.go
package controller

import (
	"strings"

	"schoolerp_backend/internals/features/hr/model"
	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

func StaffConfig() resource.Config[model.StaffModel] {
	return resource.Config[model.StaffModel]{
		Tag:   "STAFF",
		Label: "Staff member",
		Required: func(m *model.StaffModel) bool {
			return strings.TrimSpace(m.EmployeeNo) != "" &&
				strings.TrimSpace(m.FirstName) != "" &&
				m.Department != ""
		},
		RequiredMessage: "Employee number, first name, and department are required",
		Defaults: func(m *model.StaffModel) {
			if m.EmploymentType == "" {
				m.EmploymentType = model.EmploymentFullTime
			}
			if m.Status == "" {
				m.Status = model.StaffStatusActive
			}
		},
		BeforeWrite: func(m *model.StaffModel) error {
			m.Email = strings.ToLower(strings.TrimSpace(m.Email))
			return nil
		},
		References: []resource.Reference[model.StaffModel]{
			{Table: refs.TableUsers, Message: "User not found", ID: func(m *model.StaffModel) uuid.UUID {
				if m.UserID == nil {
					return uuid.Nil
				}
				return *m.UserID
			}},
		},
		Filters: []resource.Filter{
			{Param: "department", Column: "department"},
			{Param: "employment_type", Column: "employment_type"},
			{Param: "status", Column: "status"},
		},
		Sort: resource.Sort{Column: "first_name"},
		Stats: &resource.StatsSpec{
			Fields: []resource.EnumField{
				{Name: "department", Column: "department", Values: model.Departments},
				{Name: "status", Column: "status", Values: model.StaffStatuses},
			},
		},
	}
}

func LeaveRequestConfig() resource.Config[model.LeaveRequestModel] {
	return resource.Config[model.LeaveRequestModel]{
		Tag:   "LEAVE",
		Label: "Leave request",
		Required: func(m *model.LeaveRequestModel) bool {
			return m.StaffID != uuid.Nil && m.LeaveType != "" &&
				!m.StartDate.IsZero() && !m.EndDate.IsZero()
		},
		RequiredMessage: "Staff ID, leave type, start date, and end date are required",
		Defaults: func(m *model.LeaveRequestModel) {
			if m.Status == "" {
				m.Status = model.LeaveStatusPending
			}
		},
		BeforeWrite: func(m *model.LeaveRequestModel) error {
			if m.EndDate.Before(m.StartDate) {
				return &resource.ValidationError{Fields: map[string][]string{
					"end_date": {"end_date must not be before start_date"},
				}}
			}
			return nil
		},
		References: []resource.Reference[model.LeaveRequestModel]{
			{Table: refs.TableStaff, Message: "Staff member not found", ID: func(m *model.LeaveRequestModel) uuid.UUID { return m.StaffID }},
		},
		Filters: []resource.Filter{
			{Param: "staff_id", Column: "staff_id", Kind: resource.FilterUUID},
			{Param: "leave_type", Column: "leave_type"},
			{Param: "status", Column: "status"},
		},
		Sort: resource.Sort{Column: "start_date", Desc: true},
		ByRelation: []resource.RelationRoute{
			{Path: "/staff/:staffId", Param: "staffId", Column: "staff_id"},
		},
		Stats: &resource.StatsSpec{
			DateColumn: "start_date",
			Fields: []resource.EnumField{
				{Name: "status", Column: "status", Values: model.LeaveStatuses},
				{Name: "leave_type", Column: "leave_type", Values: model.LeaveTypes},
			},
		},
	}
}
