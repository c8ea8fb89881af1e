// file: internals/features/students/model/student_model.go
package model

import (
	"time"

	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"

	StudentStatusActive      = "active"
	StudentStatusInactive    = "inactive"
	StudentStatusGraduated   = "graduated"
	StudentStatusTransferred = "transferred"
)

var (
	Genders         = []string{GenderMale, GenderFemale, GenderOther}
	StudentStatuses = []string{StudentStatusActive, StudentStatusInactive, StudentStatusGraduated, StudentStatusTransferred}
)

type StudentModel struct {
	resource.Base `bson:",inline"`

	AdmissionNo   string         `json:"admission_no" gorm:"column:admission_no;type:varchar(40);not null;index" bson:"admission_no"`
	FirstName     string         `json:"first_name" gorm:"column:first_name;type:varchar(80);not null" bson:"first_name"`
	LastName      string         `json:"last_name" gorm:"column:last_name;type:varchar(80)" bson:"last_name"`
	Gender        string         `json:"gender" gorm:"column:gender;type:varchar(10);not null" bson:"gender" validate:"oneof=male female other"`
	DateOfBirth   *time.Time     `json:"date_of_birth,omitempty" gorm:"column:date_of_birth" bson:"date_of_birth,omitempty"`
	ClassID       uuid.UUID      `json:"class_id" gorm:"column:class_id;type:uuid;not null;index" bson:"class_id"`
	RollNo        string         `json:"roll_no,omitempty" gorm:"column:roll_no;type:varchar(20)" bson:"roll_no,omitempty"`
	Status        string         `json:"status" gorm:"column:status;type:varchar(16);not null" bson:"status" validate:"oneof=active inactive graduated transferred"`
	GuardianName  string         `json:"guardian_name,omitempty" gorm:"column:guardian_name" bson:"guardian_name,omitempty"`
	GuardianPhone string         `json:"guardian_phone,omitempty" gorm:"column:guardian_phone" bson:"guardian_phone,omitempty"`
	GuardianEmail string         `json:"guardian_email,omitempty" gorm:"column:guardian_email" bson:"guardian_email,omitempty" validate:"omitempty,email"`
	ParentUserID  *uuid.UUID     `json:"parent_user_id,omitempty" gorm:"column:parent_user_id;type:uuid;index" bson:"parent_user_id,omitempty"`
	Address       string         `json:"address,omitempty" gorm:"column:address;type:text" bson:"address,omitempty"`
	PhotoURL      string         `json:"photo_url,omitempty" gorm:"column:photo_url;type:text" bson:"photo_url,omitempty"`
	PhotoKey      string         `json:"-" gorm:"column:photo_key;type:text" bson:"photo_key,omitempty"`
	MedicalNotes  datatypes.JSON `json:"medical_notes,omitempty" gorm:"column:medical_notes;type:jsonb" bson:"medical_notes,omitempty"`
	AdmissionDate *time.Time     `json:"admission_date,omitempty" gorm:"column:admission_date" bson:"admission_date,omitempty"`

	Class  *refs.ClassRef `json:"class,omitempty" gorm:"foreignKey:ClassID" bson:"class,omitempty"`
	Parent *refs.UserRef  `json:"parent,omitempty" gorm:"foreignKey:ParentUserID" bson:"parent,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

var StudentRelations = []resource.Relation{
	{Field: "Class", Table: refs.TableClasses, Column: "class_id"},
	{Field: "Parent", Table: refs.TableUsers, Column: "parent_user_id"},
}
