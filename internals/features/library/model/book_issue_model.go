package model

import (
	"time"

	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

const (
	IssueIssued   = "issued"
	IssueReturned = "returned"
	IssueOverdue  = "overdue"
	IssueLost     = "lost"
)

var IssueStatuses = []string{IssueIssued, IssueReturned, IssueOverdue, IssueLost}

type BookIssueModel struct {
	resource.Base `bson:",inline"`

	BookID     uuid.UUID  `json:"book_id" gorm:"column:book_id;type:uuid;not null;index" bson:"book_id"`
	StudentID  uuid.UUID  `json:"student_id" gorm:"column:student_id;type:uuid;not null;index" bson:"student_id"`
	IssueDate  time.Time  `json:"issue_date" gorm:"column:issue_date;not null" bson:"issue_date"`
	DueDate    time.Time  `json:"due_date" gorm:"column:due_date;not null;index" bson:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty" gorm:"column:return_date" bson:"return_date,omitempty"`
	Status     string     `json:"status" gorm:"column:status;type:varchar(16);not null;index" bson:"status" validate:"oneof=issued returned overdue lost"`
	FineAmount float64    `json:"fine_amount" gorm:"column:fine_amount;type:numeric(12,2)" bson:"fine_amount" validate:"gte=0"`
	Remarks    string     `json:"remarks,omitempty" gorm:"column:remarks;type:text" bson:"remarks,omitempty"`

	Book    *refs.BookRef    `json:"book,omitempty" gorm:"foreignKey:BookID" bson:"book,omitempty"`
	Student *refs.StudentRef `json:"student,omitempty" gorm:"foreignKey:StudentID" bson:"student,omitempty"`
}

func (BookIssueModel) TableName() string { return "book_issues" }

var BookIssueRelations = []resource.Relation{
	{Field: "Book", Table: refs.TableBooks, Column: "book_id"},
	{Field: "Student", Table: refs.TableStudents, Column: "student_id"},
}
