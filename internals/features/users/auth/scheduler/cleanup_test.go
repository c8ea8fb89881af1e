package scheduler

import (
	"context"
	"testing"
	"time"

	authModel "schoolerp_backend/internals/features/users/auth/model"
	authRepo "schoolerp_backend/internals/features/users/auth/repository"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAuthCleanup(t *testing.T) {
	ctx := context.Background()
	be := resource.NewMemoryBackend()
	bl := &authRepo.StoreBlacklist{Store: resource.StoreFor[authModel.TokenBlacklistModel](be)}
	resets := resource.StoreFor[authModel.PasswordResetModel](be)
	now := time.Now().UTC()
	school := uuid.New()

	require.NoError(t, bl.Add(ctx, school, "expired", now.Add(-time.Minute)))
	require.NoError(t, bl.Add(ctx, school, "live", now.Add(time.Hour)))
	require.NoError(t, authRepo.CreatePasswordReset(ctx, resets, school, uuid.New(), "old", -time.Hour))
	require.NoError(t, authRepo.CreatePasswordReset(ctx, resets, school, uuid.New(), "new", time.Hour))

	RunAuthCleanup(ctx, bl, resets, now)

	gone, err := bl.Contains(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, gone)
	kept, err := bl.Contains(ctx, "live")
	require.NoError(t, err)
	assert.True(t, kept)

	left, err := resets.Count(ctx, resource.Query{AllTenants: true})
	require.NoError(t, err)
	assert.EqualValues(t, 1, left)
}

func TestScheduleAuthCleanup(t *testing.T) {
	c := cron.New()
	require.NoError(t, ScheduleAuthCleanup(c, nil, resource.NewMemoryBackend(), ""))
	assert.Len(t, c.Entries(), 1)
}
