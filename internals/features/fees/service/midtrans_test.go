package service

import (
	"testing"
	"time"

	"schoolerp_backend/internals/features/fees/model"
	"schoolerp_backend/internals/resource"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unpaid(due float64) *model.FeePaymentModel {
	return &model.FeePaymentModel{
		Base:      resource.Base{ID: uuid.New(), SchoolID: uuid.New()},
		StudentID: uuid.New(),
		AmountDue: due,
		Status:    model.PaymentUnpaid,
	}
}

func TestVerifySignature(t *testing.T) {
	n := Notification{OrderID: "FEE-1", StatusCode: "200", GrossAmount: "150000.00"}
	n.SignatureKey = Signature(n, "server-key")

	assert.Len(t, n.SignatureKey, 128)
	assert.True(t, VerifySignature(n, "server-key"))
	assert.False(t, VerifySignature(n, "other-key"))
	assert.False(t, VerifySignature(n, ""))

	tampered := n
	tampered.GrossAmount = "1.00"
	assert.False(t, VerifySignature(tampered, "server-key"))
}

func TestApplyNotification(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("settlement pays in full", func(t *testing.T) {
		p := unpaid(100)
		assert.True(t, ApplyNotification(p, Notification{TransactionStatus: "settlement", TransactionID: "tx-1"}, now))
		assert.Equal(t, model.PaymentPaid, p.Status)
		assert.Equal(t, 100.0, p.AmountPaid)
		assert.Equal(t, model.MethodOnline, p.Method)
		assert.Equal(t, "tx-1", p.GatewayReference)
		require.NotNil(t, p.PaidAt)

		assert.False(t, ApplyNotification(p, Notification{TransactionStatus: "settlement"}, now), "replay is a no-op")
	})

	t.Run("capture respects fraud status", func(t *testing.T) {
		p := unpaid(100)
		assert.False(t, ApplyNotification(p, Notification{TransactionStatus: "capture", FraudStatus: "challenge"}, now))
		assert.Equal(t, model.PaymentUnpaid, p.Status)
		assert.True(t, ApplyNotification(p, Notification{TransactionStatus: "capture", FraudStatus: "accept"}, now))
		assert.Equal(t, model.PaymentPaid, p.Status)
	})

	t.Run("expired attempt clears the order", func(t *testing.T) {
		p := unpaid(100)
		p.OrderID = "FEE-abc"
		assert.False(t, ApplyNotification(p, Notification{TransactionStatus: "expire", OrderID: "FEE-old"}, now))
		assert.True(t, ApplyNotification(p, Notification{TransactionStatus: "expire", OrderID: "FEE-abc"}, now))
		assert.Empty(t, p.OrderID)
		assert.Equal(t, model.PaymentUnpaid, p.Status)
		assert.Zero(t, p.AmountPaid)
	})

	t.Run("refund cancels", func(t *testing.T) {
		p := unpaid(100)
		assert.True(t, ApplyNotification(p, Notification{TransactionStatus: "refund"}, now))
		assert.Equal(t, model.PaymentCancelled, p.Status)
	})

	t.Run("pending is ignored", func(t *testing.T) {
		p := unpaid(100)
		assert.False(t, ApplyNotification(p, Notification{TransactionStatus: "pending"}, now))
	})
}

func TestBuildSnapRequest(t *testing.T) {
	p := unpaid(250000)
	p.AmountPaid = 50000

	req, err := BuildSnapRequest(p, "FEE-1", Customer{FirstName: "Asha", Email: "asha@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(200000), req.TransactionDetails.GrossAmt)
	assert.Equal(t, "FEE-1", req.TransactionDetails.OrderID)
	require.NotNil(t, req.Items)
	assert.Equal(t, "School fee", (*req.Items)[0].Name)

	p.AmountPaid = p.AmountDue
	_, err = BuildSnapRequest(p, "FEE-2", Customer{})
	assert.Error(t, err)
}

func TestNewOrderID(t *testing.T) {
	p := unpaid(1)
	a := NewOrderID(p, time.Unix(1000, 0))
	b := NewOrderID(p, time.Unix(2000, 0))
	assert.NotEqual(t, a, b)
	assert.True(t, len(a) <= 50, "midtrans order ids are capped at 50 chars")
}

func TestNewSnapClient_NeedsKey(t *testing.T) {
	assert.Nil(t, NewSnapClient("", false))
	assert.NotNil(t, NewSnapClient("SB-Mid-server-x", false))
}
