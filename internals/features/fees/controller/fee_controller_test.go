package controller

import (
	"testing"
	"time"

	"schoolerp_backend/internals/features/fees/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncPaymentStatus(t *testing.T) {
	now := time.Now().UTC()

	p := &model.FeePaymentModel{AmountDue: 100, AmountPaid: 40, Status: model.PaymentUnpaid}
	SyncPaymentStatus(p, now)
	assert.Equal(t, model.PaymentPartial, p.Status)
	assert.Nil(t, p.PaidAt)

	p.AmountPaid = 100
	SyncPaymentStatus(p, now)
	assert.Equal(t, model.PaymentPaid, p.Status)
	require.NotNil(t, p.PaidAt)

	p.AmountPaid = 0
	SyncPaymentStatus(p, now)
	assert.Equal(t, model.PaymentUnpaid, p.Status)
	assert.Nil(t, p.PaidAt)

	overdue := &model.FeePaymentModel{AmountDue: 100, Status: model.PaymentOverdue}
	SyncPaymentStatus(overdue, now)
	assert.Equal(t, model.PaymentOverdue, overdue.Status)

	cancelled := &model.FeePaymentModel{AmountDue: 100, AmountPaid: 100, Status: model.PaymentCancelled}
	SyncPaymentStatus(cancelled, now)
	assert.Equal(t, model.PaymentCancelled, cancelled.Status)
}
