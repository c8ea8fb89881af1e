// file: internals/features/hr/model/staff_model.go
package model

import (
	"time"

	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

const (
	DepartmentTeaching       = "teaching"
	DepartmentAdministration = "administration"
	DepartmentAccounts       = "accounts"
	DepartmentLibrary        = "library"
	DepartmentSupport        = "support"

	EmploymentFullTime = "full_time"
	EmploymentPartTime = "part_time"
	EmploymentContract = "contract"

	StaffStatusActive   = "active"
	StaffStatusOnLeave  = "on_leave"
	StaffStatusResigned = "resigned"
)

var (
	Departments     = []string{DepartmentTeaching, DepartmentAdministration, DepartmentAccounts, DepartmentLibrary, DepartmentSupport}
	EmploymentTypes = []string{EmploymentFullTime, EmploymentPartTime, EmploymentContract}
	StaffStatuses   = []string{StaffStatusActive, StaffStatusOnLeave, StaffStatusResigned}
)

type StaffModel struct {
	resource.Base `bson:",inline"`

	EmployeeNo     string     `json:"employee_no" gorm:"column:employee_no;type:varchar(40);not null;index" bson:"employee_no"`
	FirstName      string     `json:"first_name" gorm:"column:first_name;type:varchar(80);not null" bson:"first_name"`
	LastName       string     `json:"last_name" gorm:"column:last_name;type:varchar(80)" bson:"last_name"`
	Email          string     `json:"email,omitempty" gorm:"column:email" bson:"email,omitempty" validate:"omitempty,email"`
	Phone          string     `json:"phone,omitempty" gorm:"column:phone" bson:"phone,omitempty"`
	Designation    string     `json:"designation" gorm:"column:designation;type:varchar(80)" bson:"designation"`
	Department     string     `json:"department" gorm:"column:department;type:varchar(20);not null" bson:"department" validate:"oneof=teaching administration accounts library support"`
	EmploymentType string     `json:"employment_type" gorm:"column:employment_type;type:varchar(20);not null" bson:"employment_type" validate:"oneof=full_time part_time contract"`
	Status         string     `json:"status" gorm:"column:status;type:varchar(16);not null" bson:"status" validate:"oneof=active on_leave resigned"`
	JoinDate       *time.Time `json:"join_date,omitempty" gorm:"column:join_date" bson:"join_date,omitempty"`
	Salary         float64    `json:"salary" gorm:"column:salary;type:numeric(14,2)" bson:"salary" validate:"gte=0"`
	UserID         *uuid.UUID `json:"user_id,omitempty" gorm:"column:user_id;type:uuid;index" bson:"user_id,omitempty"`

	User *refs.UserRef `json:"user,omitempty" gorm:"foreignKey:UserID" bson:"user,omitempty"`
}

func (StaffModel) TableName() string { return "staff" }

var StaffRelations = []resource.Relation{
	{Field: "User", Table: refs.TableUsers, Column: "user_id"},
}
