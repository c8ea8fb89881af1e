// file: internals/features/discipline/model/incident_model.go
package model

import (
	"time"

	"schoolerp_backend/internals/features/shared/refs"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

const (
	IncidentTypeBullying           = "bullying"
	IncidentTypeMisconduct         = "misconduct"
	IncidentTypeVandalism          = "vandalism"
	IncidentTypeAcademicDishonesty = "academic_dishonesty"
	IncidentTypeAttendance         = "attendance"
	IncidentTypeOther              = "other"

	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"

	IncidentStatusPending       = "pending"
	IncidentStatusInvestigating = "investigating"
	IncidentStatusResolved      = "resolved"
	IncidentStatusDismissed     = "dismissed"
)

var (
	IncidentTypes    = []string{IncidentTypeBullying, IncidentTypeMisconduct, IncidentTypeVandalism, IncidentTypeAcademicDishonesty, IncidentTypeAttendance, IncidentTypeOther}
	Severities       = []string{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	IncidentStatuses = []string{IncidentStatusPending, IncidentStatusInvestigating, IncidentStatusResolved, IncidentStatusDismissed}
)

// IncidentModel is a disciplinary incident filed against a student.
type IncidentModel struct {
	resource.Base `bson:",inline"`

	StudentID      uuid.UUID  `json:"student_id" gorm:"column:student_id;type:uuid;not null;index" bson:"student_id"`
	ReportedByID   uuid.UUID  `json:"reported_by_id" gorm:"column:reported_by_id;type:uuid;not null" bson:"reported_by_id"`
	IncidentDate   time.Time  `json:"incident_date" gorm:"column:incident_date;not null;index" bson:"incident_date"`
	IncidentType   string     `json:"incident_type" gorm:"column:incident_type;type:varchar(32);not null" bson:"incident_type" validate:"oneof=bullying misconduct vandalism academic_dishonesty attendance other"`
	Severity       string     `json:"severity" gorm:"column:severity;type:varchar(16);not null" bson:"severity" validate:"oneof=low medium high critical"`
	Status         string     `json:"status" gorm:"column:status;type:varchar(16);not null" bson:"status" validate:"oneof=pending investigating resolved dismissed"`
	Location       string     `json:"location" gorm:"column:location;type:text;not null" bson:"location"`
	Description    string     `json:"description" gorm:"column:description;type:text;not null" bson:"description"`
	Witnesses      string     `json:"witnesses,omitempty" gorm:"column:witnesses;type:text" bson:"witnesses,omitempty"`
	ActionTaken    string     `json:"action_taken,omitempty" gorm:"column:action_taken;type:text" bson:"action_taken,omitempty"`
	ParentNotified bool       `json:"parent_notified" gorm:"column:parent_notified;not null;default:false" bson:"parent_notified"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty" gorm:"column:resolved_at" bson:"resolved_at,omitempty"`

	Student    *refs.StudentRef `json:"student,omitempty" gorm:"foreignKey:StudentID" bson:"student,omitempty"`
	ReportedBy *refs.UserRef    `json:"reported_by,omitempty" gorm:"foreignKey:ReportedByID" bson:"reported_by,omitempty"`
}

func (IncidentModel) TableName() string { return "incidents" }

var IncidentRelations = []resource.Relation{
	{Field: "Student", Table: refs.TableStudents, Column: "student_id"},
	{Field: "ReportedBy", Table: refs.TableUsers, Column: "reported_by_id"},
}
