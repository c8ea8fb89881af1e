// Package refs holds the display projections attached to documents that
// reference another entity. Each one maps onto the referenced table and
// shares its JSON/BSON field names.
package refs

import (
	"time"

	"github.com/google/uuid"
)

type StudentRef struct {
	ID          uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey" bson:"_id"`
	AdmissionNo string    `json:"admission_no" gorm:"column:admission_no" bson:"admission_no"`
	FirstName   string    `json:"first_name" gorm:"column:first_name" bson:"first_name"`
	LastName    string    `json:"last_name" gorm:"column:last_name" bson:"last_name"`
	ClassID     uuid.UUID `json:"class_id" gorm:"column:class_id;type:uuid" bson:"class_id"`
}

func (StudentRef) TableName() string { return "students" }

type UserRef struct {
	ID    uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey" bson:"_id"`
	Name  string    `json:"name" gorm:"column:name" bson:"name"`
	Email string    `json:"email" gorm:"column:email" bson:"email"`
	Role  string    `json:"role" gorm:"column:role" bson:"role"`
}

func (UserRef) TableName() string { return "users" }

type ClassRef struct {
	ID      uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey" bson:"_id"`
	Name    string    `json:"name" gorm:"column:name" bson:"name"`
	Section string    `json:"section" gorm:"column:section" bson:"section"`
}

func (ClassRef) TableName() string { return "classes" }

type StaffRef struct {
	ID          uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey" bson:"_id"`
	FirstName   string    `json:"first_name" gorm:"column:first_name" bson:"first_name"`
	LastName    string    `json:"last_name" gorm:"column:last_name" bson:"last_name"`
	Designation string    `json:"designation" gorm:"column:designation" bson:"designation"`
}

func (StaffRef) TableName() string { return "staff" }

type BookRef struct {
	ID     uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey" bson:"_id"`
	Title  string    `json:"title" gorm:"column:title" bson:"title"`
	Author string    `json:"author" gorm:"column:author" bson:"author"`
	ISBN   string    `json:"isbn" gorm:"column:isbn" bson:"isbn"`
}

func (BookRef) TableName() string { return "books" }

type HomeworkRef struct {
	ID      uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey" bson:"_id"`
	Title   string    `json:"title" gorm:"column:title" bson:"title"`
	DueDate time.Time `json:"due_date" gorm:"column:due_date" bson:"due_date"`
}

func (HomeworkRef) TableName() string { return "homework" }

type ExamRef struct {
	ID       uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey" bson:"_id"`
	Name     string    `json:"name" gorm:"column:name" bson:"name"`
	ExamDate time.Time `json:"exam_date" gorm:"column:exam_date" bson:"exam_date"`
	MaxMarks float64   `json:"max_marks" gorm:"column:max_marks" bson:"max_marks"`
}

func (ExamRef) TableName() string { return "exams" }

type FeeStructureRef struct {
	ID     uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey" bson:"_id"`
	Name   string    `json:"name" gorm:"column:name" bson:"name"`
	Amount float64   `json:"amount" gorm:"column:amount" bson:"amount"`
}

func (FeeStructureRef) TableName() string { return "fee_structures" }

// Table names used by reference checks.
const (
	TableSchools       = "schools"
	TableUsers         = "users"
	TableClasses       = "classes"
	TableStudents      = "students"
	TableStaff         = "staff"
	TableBooks         = "books"
	TableHomework      = "homework"
	TableExams         = "exams"
	TableFeeStructures = "fee_structures"
)
