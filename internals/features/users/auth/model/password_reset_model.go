package model

import (
	"time"

	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

type PasswordResetModel struct {
	resource.Base `bson:",inline"`

	UserID    uuid.UUID  `json:"user_id" gorm:"column:user_id;type:uuid;not null;index" bson:"user_id"`
	TokenHash string     `json:"-" gorm:"column:token_hash;type:varchar(64);not null;uniqueIndex" bson:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"column:expires_at;not null;index" bson:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty" gorm:"column:used_at" bson:"used_at,omitempty"`
}

func (PasswordResetModel) TableName() string { return "password_resets" }
