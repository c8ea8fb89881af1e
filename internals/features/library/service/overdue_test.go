package service

import (
	"context"
	"testing"
	"time"

	"schoolerp_backend/internals/features/library/model"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkOverdue(t *testing.T) {
	ctx := context.Background()
	be := resource.NewMemoryBackend()
	store := resource.StoreFor[model.BookIssueModel](be)
	now := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

	issue := func(school uuid.UUID, due time.Time, status string) uuid.UUID {
		m := &model.BookIssueModel{
			Base:      resource.Base{ID: uuid.New(), SchoolID: school, CreatedAt: now, UpdatedAt: now},
			BookID:    uuid.New(),
			StudentID: uuid.New(),
			IssueDate: due.AddDate(0, 0, -14),
			DueDate:   due,
			Status:    status,
		}
		require.NoError(t, store.Insert(ctx, m))
		return m.ID
	}

	schoolA, schoolB := uuid.New(), uuid.New()
	lateA := issue(schoolA, now.AddDate(0, 0, -1), model.IssueIssued)
	lateB := issue(schoolB, now.AddDate(0, 0, -3), model.IssueIssued)
	onTime := issue(schoolA, now.AddDate(0, 0, 2), model.IssueIssued)
	returned := issue(schoolA, now.AddDate(0, 0, -5), model.IssueReturned)

	n, err := MarkOverdue(ctx, store, now)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	status := func(school, id uuid.UUID) string {
		m, err := store.Get(ctx, school, id)
		require.NoError(t, err)
		return m.Status
	}
	assert.Equal(t, model.IssueOverdue, status(schoolA, lateA))
	assert.Equal(t, model.IssueOverdue, status(schoolB, lateB))
	assert.Equal(t, model.IssueIssued, status(schoolA, onTime))
	assert.Equal(t, model.IssueReturned, status(schoolA, returned))

	again, err := MarkOverdue(ctx, store, now)
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestScheduleOverdue(t *testing.T) {
	c := cron.New()
	require.NoError(t, ScheduleOverdue(c, resource.NewMemoryBackend(), ""))
	assert.Len(t, c.Entries(), 1)
	assert.Error(t, ScheduleOverdue(c, resource.NewMemoryBackend(), "not a cron"))
}
