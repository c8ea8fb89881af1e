package model

import (
	"time"

	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

// UserModel is a login account. Email is unique across all schools so a
// login resolves to exactly one tenant.
type UserModel struct {
	resource.Base `bson:",inline"`

	Name         string     `json:"name" gorm:"column:name;type:varchar(120);not null" bson:"name" validate:"max=120"`
	Email        string     `json:"email" gorm:"column:email;type:varchar(255);not null;uniqueIndex" bson:"email" validate:"email"`
	Password     string     `json:"password,omitempty" gorm:"-" bson:"-"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null" bson:"password_hash"`
	Role         string     `json:"role" gorm:"column:role;type:varchar(20);not null" bson:"role" validate:"oneof=admin teacher student parent accountant librarian receptionist"`
	Phone        string     `json:"phone,omitempty" gorm:"column:phone;type:varchar(30)" bson:"phone,omitempty"`
	GoogleID     *string    `json:"-" gorm:"column:google_id;type:varchar(255);index" bson:"google_id,omitempty"`
	IsActive     bool       `json:"is_active" gorm:"column:is_active;not null;default:true" bson:"is_active"`
	StudentID    *uuid.UUID `json:"student_id,omitempty" gorm:"column:student_id;type:uuid" bson:"student_id,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" gorm:"column:last_login_at" bson:"last_login_at,omitempty"`

	Student *refs.StudentRef `json:"student,omitempty" gorm:"foreignKey:StudentID" bson:"student,omitempty"`
}

func (UserModel) TableName() string { return "users" }

var UserRelations = []resource.Relation{
	{Field: "Student", Table: refs.TableStudents, Column: "student_id"},
}
