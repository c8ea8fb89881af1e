package model

import (
	"time"

	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

const (
	LeaveSick   = "sick"
	LeaveCasual = "casual"
	LeaveAnnual = "annual"
	LeaveUnpaid = "unpaid"

	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

var (
	LeaveTypes    = []string{LeaveSick, LeaveCasual, LeaveAnnual, LeaveUnpaid}
	LeaveStatuses = []string{LeaveStatusPending, LeaveStatusApproved, LeaveStatusRejected}
)

type LeaveRequestModel struct {
	resource.Base `bson:",inline"`

	StaffID    uuid.UUID `json:"staff_id" gorm:"column:staff_id;type:uuid;not null;index" bson:"staff_id"`
	LeaveType  string    `json:"leave_type" gorm:"column:leave_type;type:varchar(16);not null" bson:"leave_type" validate:"oneof=sick casual annual unpaid"`
	StartDate  time.Time `json:"start_date" gorm:"column:start_date;not null" bson:"start_date"`
	EndDate    time.Time `json:"end_date" gorm:"column:end_date;not null" bson:"end_date"`
	Reason     string    `json:"reason" gorm:"column:reason;type:text" bson:"reason"`
	Status     string    `json:"status" gorm:"column:status;type:varchar(16);not null" bson:"status" validate:"oneof=pending approved rejected"`
	ReviewNote string    `json:"review_note,omitempty" gorm:"column:review_note;type:text" bson:"review_note,omitempty"`

	Staff *refs.StaffRef `json:"staff,omitempty" gorm:"foreignKey:StaffID" bson:"staff,omitempty"`
}

func (LeaveRequestModel) TableName() string { return "leave_requests" }

var LeaveRequestRelations = []resource.Relation{
	{Field: "Staff", Table: refs.TableStaff, Column: "staff_id"},
}
