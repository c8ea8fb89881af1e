package model

import (
	"time"

	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

const (
	PaymentUnpaid    = "unpaid"
	PaymentPartial   = "partial"
	PaymentPaid      = "paid"
	PaymentOverdue   = "overdue"
	PaymentCancelled = "cancelled"

	MethodCash         = "cash"
	MethodBankTransfer = "bank_transfer"
	MethodCard         = "card"
	MethodOnline       = "online"
)

var (
	PaymentStatuses = []string{PaymentUnpaid, PaymentPartial, PaymentPaid, PaymentOverdue, PaymentCancelled}
	PaymentMethods  = []string{MethodCash, MethodBankTransfer, MethodCard, MethodOnline}
)

// FeePaymentModel is one fee charged to a student and what has been paid
// against it. OrderID is the gateway order of the last checkout.
type FeePaymentModel struct {
	resource.Base `bson:",inline"`

	StudentID        uuid.UUID  `json:"student_id" gorm:"column:student_id;type:uuid;not null;index" bson:"student_id"`
	FeeStructureID   *uuid.UUID `json:"fee_structure_id,omitempty" gorm:"column:fee_structure_id;type:uuid;index" bson:"fee_structure_id,omitempty"`
	AmountDue        float64    `json:"amount_due" gorm:"column:amount_due;type:numeric(14,2);not null" bson:"amount_due" validate:"gt=0"`
	AmountPaid       float64    `json:"amount_paid" gorm:"column:amount_paid;type:numeric(14,2);not null;default:0" bson:"amount_paid" validate:"gte=0"`
	Status           string     `json:"status" gorm:"column:status;type:varchar(16);not null" bson:"status" validate:"oneof=unpaid partial paid overdue cancelled"`
	Method           string     `json:"method,omitempty" gorm:"column:method;type:varchar(20)" bson:"method,omitempty" validate:"omitempty,oneof=cash bank_transfer card online"`
	DueDate          *time.Time `json:"due_date,omitempty" gorm:"column:due_date" bson:"due_date,omitempty"`
	PaidAt           *time.Time `json:"paid_at,omitempty" gorm:"column:paid_at" bson:"paid_at,omitempty"`
	ReceiptNo        string     `json:"receipt_no,omitempty" gorm:"column:receipt_no;type:varchar(40)" bson:"receipt_no,omitempty"`
	Remarks          string     `json:"remarks,omitempty" gorm:"column:remarks;type:text" bson:"remarks,omitempty"`
	OrderID          string     `json:"order_id,omitempty" gorm:"column:order_id;type:varchar(64);index" bson:"order_id,omitempty"`
	GatewayReference string     `json:"gateway_reference,omitempty" gorm:"column:gateway_reference;type:varchar(80)" bson:"gateway_reference,omitempty"`

	Student      *refs.StudentRef      `json:"student,omitempty" gorm:"foreignKey:StudentID" bson:"student,omitempty"`
	FeeStructure *refs.FeeStructureRef `json:"fee_structure,omitempty" gorm:"foreignKey:FeeStructureID" bson:"fee_structure,omitempty"`
}

func (FeePaymentModel) TableName() string { return "fee_payments" }

// Outstanding is what is still owed.
func (m *FeePaymentModel) Outstanding() float64 {
	if d := m.AmountDue - m.AmountPaid; d > 0 {
		return d
	}
	return 0
}

var FeePaymentRelations = []resource.Relation{
	{Field: "Student", Table: refs.TableStudents, Column: "student_id"},
	{Field: "FeeStructure", Table: refs.TableFeeStructures, Column: "fee_structure_id"},
}
