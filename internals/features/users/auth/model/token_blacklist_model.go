package model

import (
	"time"

	"schoolerp_backend/internals/resource"
)

// TokenBlacklistModel marks a logged-out access token (stored as its HMAC)
// until the token would have expired anyway.
type TokenBlacklistModel struct {
	resource.Base `bson:",inline"`

	TokenHash string    `json:"-" gorm:"column:token_hash;type:varchar(64);not null;uniqueIndex" bson:"token_hash"`
	ExpiresAt time.Time `json:"expires_at" gorm:"column:expires_at;not null;index" bson:"expires_at"`
}

func (TokenBlacklistModel) TableName() string { return "token_blacklist" }
