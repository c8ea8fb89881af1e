// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	authModel "schoolerp_backend/internals/features/users/auth/model"
	userModel "schoolerp_backend/internals/features/users/user/model"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
)

/* ====================== USER ====================== */

// FindUserByEmail looks across every school; emails are globally unique.
func FindUserByEmail(ctx context.Context, users resource.Store[userModel.UserModel], email string) (*userModel.UserModel, error) {
	return findOneUser(ctx, users, "email", email)
}

func FindUserByGoogleID(ctx context.Context, users resource.Store[userModel.UserModel], googleID string) (*userModel.UserModel, error) {
	return findOneUser(ctx, users, "google_id", googleID)
}

func findOneUser(ctx context.Context, users resource.Store[userModel.UserModel], column string, value any) (*userModel.UserModel, error) {
	found, err := users.Find(ctx, resource.Query{
		AllTenants: true,
		Where:      map[string]any{column: value},
		Limit:      1,
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, resource.ErrNotFound
	}
	return &found[0], nil
}

/* ====================== PASSWORD RESET ====================== */

func CreatePasswordReset(ctx context.Context, resets resource.Store[authModel.PasswordResetModel], schoolID, userID uuid.UUID, tokenHash string, ttl time.Duration) error {
	now := time.Now().UTC()
	return resets.Insert(ctx, &authModel.PasswordResetModel{
		Base:      resource.Base{ID: uuid.New(), SchoolID: schoolID, CreatedAt: now, UpdatedAt: now},
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(ttl),
	})
}

var ErrResetInvalid = errors.New("reset token invalid or expired")

// ConsumePasswordReset marks the token used and returns it.
func ConsumePasswordReset(ctx context.Context, resets resource.Store[authModel.PasswordResetModel], tokenHash string, now time.Time) (*authModel.PasswordResetModel, error) {
	found, err := resets.Find(ctx, resource.Query{
		AllTenants: true,
		Where:      map[string]any{"token_hash": tokenHash},
		Limit:      1,
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrResetInvalid
	}
	r := &found[0]
	if r.UsedAt != nil || !now.Before(r.ExpiresAt) {
		return nil, ErrResetInvalid
	}
	r.UsedAt = &now
	r.UpdatedAt = now
	if err := resets.Replace(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// CleanupPasswordResets drops resets that expired before cutoff.
func CleanupPasswordResets(ctx context.Context, resets resource.Store[authModel.PasswordResetModel], cutoff time.Time) (int64, error) {
	return resets.DeleteWhere(ctx, resource.Query{
		AllTenants: true,
		Ranges:     []resource.Range{{Column: "expires_at", To: &cutoff}},
	})
}
