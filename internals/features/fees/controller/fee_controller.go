// file: internals/features/fees/controller/fee_controller.go
package controller

import (
	"strings"
	"time"

	"schoolerp_backend/internals/features/fees/model"
	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/features/shared/scope"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

func optionalID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}

func FeeStructureConfig() resource.Config[model.FeeStructureModel] {
	return resource.Config[model.FeeStructureModel]{
		Tag:   "FEE_STRUCTURE",
		Label: "Fee structure",
		Required: func(m *model.FeeStructureModel) bool {
			return strings.TrimSpace(m.Name) != "" && m.Amount > 0
		},
		RequiredMessage: "Name and amount are required",
		Defaults: func(m *model.FeeStructureModel) {
			if m.Frequency == "" {
				m.Frequency = model.FrequencyOneTime
			}
		},
		References: []resource.Reference[model.FeeStructureModel]{
			{Table: refs.TableClasses, Message: "Class not found", ID: func(m *model.FeeStructureModel) uuid.UUID { return optionalID(m.ClassID) }},
		},
		Filters: []resource.Filter{
			{Param: "class_id", Column: "class_id", Kind: resource.FilterUUID},
			{Param: "frequency", Column: "frequency"},
			{Param: "academic_year", Column: "academic_year"},
		},
		Sort: resource.Sort{Column: "name"},
		ByRelation: []resource.RelationRoute{
			{Path: "/class/:classId", Param: "classId", Column: "class_id"},
		},
	}
}

func FeePaymentConfig() resource.Config[model.FeePaymentModel] {
	return resource.Config[model.FeePaymentModel]{
		Tag:   "FEE_PAYMENT",
		Label: "Fee payment",
		Required: func(m *model.FeePaymentModel) bool {
			return m.StudentID != uuid.Nil && m.AmountDue > 0
		},
		RequiredMessage: "Student ID and amount due are required",
		Defaults: func(m *model.FeePaymentModel) {
			if m.Status == "" {
				m.Status = model.PaymentUnpaid
			}
		},
		// gateway fields are written by checkout and the notification hook only
		Protect: func(dst, stored *model.FeePaymentModel) {
			dst.OrderID = stored.OrderID
			dst.GatewayReference = stored.GatewayReference
		},
		BeforeWrite: func(m *model.FeePaymentModel) error {
			SyncPaymentStatus(m, time.Now().UTC())
			return nil
		},
		Scope: scope.OwnStudent("student_id"),

		References: []resource.Reference[model.FeePaymentModel]{
			{Table: refs.TableStudents, Message: "Student not found", ID: func(m *model.FeePaymentModel) uuid.UUID { return m.StudentID }},
			{Table: refs.TableFeeStructures, Message: "Fee structure not found", ID: func(m *model.FeePaymentModel) uuid.UUID { return optionalID(m.FeeStructureID) }},
		},
		Filters: []resource.Filter{
			{Param: "student_id", Column: "student_id", Kind: resource.FilterUUID},
			{Param: "fee_structure_id", Column: "fee_structure_id", Kind: resource.FilterUUID},
			{Param: "status", Column: "status"},
			{Param: "method", Column: "method"},
		},
		Sort: resource.Sort{Column: "created_at", Desc: true},
		ByRelation: []resource.RelationRoute{
			{Path: "/student/:studentId", Param: "studentId", Column: "student_id"},
		},
		Stats: &resource.StatsSpec{
			Fields: []resource.EnumField{
				{Name: "status", Column: "status", Values: model.PaymentStatuses},
			},
		},
	}
}

// SyncPaymentStatus derives paid/partial from the amounts. Cancelled
// payments are left alone; overdue sticks until money arrives.
func SyncPaymentStatus(m *model.FeePaymentModel, now time.Time) {
	if m.Status == model.PaymentCancelled {
		return
	}
	switch {
	case m.AmountPaid >= m.AmountDue:
		m.Status = model.PaymentPaid
		if m.PaidAt == nil {
			m.PaidAt = &now
		}
	case m.AmountPaid > 0:
		m.Status = model.PaymentPartial
		m.PaidAt = nil
	case m.Status == model.PaymentPaid || m.Status == model.PaymentPartial:
		m.Status = model.PaymentUnpaid
		m.PaidAt = nil
	}
}
