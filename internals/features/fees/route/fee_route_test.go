package route

import (
	"context"
	"net/http"
	"testing"
	"time"

	"schoolerp_backend/internals/configs"
	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/fees/model"
	"schoolerp_backend/internals/features/fees/service"
	"schoolerp_backend/internals/middlewares"
	"schoolerp_backend/internals/resource"
	"schoolerp_backend/internals/testkit"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServerKey = "SB-Mid-server-test"

type fakeSnap struct {
	requests []*snap.Request
}

func (f *fakeSnap) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	f.requests = append(f.requests, req)
	return &snap.Response{Token: "snap-token", RedirectURL: "https://pay.example/snap-token"}, nil
}

type feeEnv struct {
	*testkit.Env
	public *testkit.Env
}

// newFeeEnv mounts the private routes behind the JWT gate and the gateway
// hook on a separate unauthenticated app sharing the same backend.
func newFeeEnv(t *testing.T, gw service.SnapGateway) feeEnv {
	prev := configs.MidtransKey
	configs.MidtransKey = testServerKey
	t.Cleanup(func() { configs.MidtransKey = prev })

	env := testkit.New(t, func(r fiber.Router, be resource.Backend) { FeeRoutes(r, be, gw) })
	pub := &testkit.Env{App: fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler}), Backend: env.Backend}
	FeePublicRoutes(pub.App.Group("/api/public"), env.Backend)
	return feeEnv{Env: env, public: pub}
}

func seedPayment(t *testing.T, be resource.Backend, schoolID, studentID uuid.UUID, due, paid float64, status string) uuid.UUID {
	t.Helper()
	now := time.Now().UTC()
	p := &model.FeePaymentModel{
		Base:       resource.Base{ID: uuid.New(), SchoolID: schoolID, CreatedAt: now, UpdatedAt: now},
		StudentID:  studentID,
		AmountDue:  due,
		AmountPaid: paid,
		Status:     status,
	}
	require.NoError(t, resource.StoreFor[model.FeePaymentModel](be).Insert(context.Background(), p))
	return p.ID
}

func signed(n service.Notification) service.Notification {
	n.SignatureKey = service.Signature(n, testServerKey)
	return n
}

func TestCheckout(t *testing.T) {
	gw := &fakeSnap{}
	env := newFeeEnv(t, gw)
	school := uuid.New()
	self, classmate := uuid.New(), uuid.New()
	student := testkit.NewStudentCaller(t, school, constants.RoleStudent, self)

	open := seedPayment(t, env.Backend, school, self, 150000, 50000, model.PaymentPartial)
	settled := seedPayment(t, env.Backend, school, self, 80000, 80000, model.PaymentPaid)
	foreign := seedPayment(t, env.Backend, school, classmate, 90000, 0, model.PaymentUnpaid)

	t.Run("charges the outstanding amount", func(t *testing.T) {
		res := env.Do(t, http.MethodPost, "/api/fees/payments/"+open.String()+"/checkout", &student, nil)
		require.Equal(t, http.StatusOK, res.Status, res.Body)
		data := res.Data()
		assert.Equal(t, "snap-token", data["token"])
		assert.EqualValues(t, 100000, data["amount"])
		require.Len(t, gw.requests, 1)
		assert.Equal(t, data["order_id"], gw.requests[0].TransactionDetails.OrderID)

		stored, err := resource.StoreFor[model.FeePaymentModel](env.Backend).Get(context.Background(), school, open)
		require.NoError(t, err)
		assert.Equal(t, data["order_id"], stored.OrderID)
	})

	t.Run("nothing outstanding", func(t *testing.T) {
		res := env.Do(t, http.MethodPost, "/api/fees/payments/"+settled.String()+"/checkout", &student, nil)
		assert.Equal(t, http.StatusConflict, res.Status)
		assert.Equal(t, "Nothing outstanding on this payment", res.Message())
	})

	t.Run("another student's payment", func(t *testing.T) {
		res := env.Do(t, http.MethodPost, "/api/fees/payments/"+foreign.String()+"/checkout", &student, nil)
		assert.Equal(t, http.StatusNotFound, res.Status)
		assert.Equal(t, "Fee payment not found", res.Message())
	})

	t.Run("no gateway configured", func(t *testing.T) {
		bare := newFeeEnv(t, nil)
		id := seedPayment(t, bare.Backend, school, self, 1000, 0, model.PaymentUnpaid)
		res := bare.Do(t, http.MethodPost, "/api/fees/payments/"+id.String()+"/checkout", &student, nil)
		assert.Equal(t, http.StatusServiceUnavailable, res.Status)
		assert.Equal(t, "Payment gateway is not configured", res.Message())
	})
}

func TestNotification(t *testing.T) {
	env := newFeeEnv(t, &fakeSnap{})
	school := uuid.New()
	accountant := testkit.NewCaller(t, school, constants.RoleAccountant)
	student := testkit.NewStudentCaller(t, school, constants.RoleStudent, uuid.New())

	id := seedPayment(t, env.Backend, school, student.StudentID, 120000, 0, model.PaymentUnpaid)
	checkout := env.Do(t, http.MethodPost, "/api/fees/payments/"+id.String()+"/checkout", &student, nil)
	require.Equal(t, http.StatusOK, checkout.Status, checkout.Body)
	orderID := checkout.Data()["order_id"].(string)

	settlement := service.Notification{
		OrderID:           orderID,
		StatusCode:        "200",
		GrossAmount:       "120000.00",
		TransactionStatus: "settlement",
		TransactionID:     "tx-0001",
	}

	t.Run("bad signature", func(t *testing.T) {
		n := settlement
		n.SignatureKey = "deadbeef"
		res := env.public.Do(t, http.MethodPost, "/api/public/fees/notification", nil, n)
		assert.Equal(t, http.StatusUnauthorized, res.Status)
		assert.Equal(t, "Invalid signature", res.Message())
	})

	t.Run("unknown order is acknowledged", func(t *testing.T) {
		n := settlement
		n.OrderID = "FEE-unknown-1"
		res := env.public.Do(t, http.MethodPost, "/api/public/fees/notification", nil, signed(n))
		assert.Equal(t, http.StatusOK, res.Status)
		assert.Equal(t, "ignored", res.Message())
	})

	t.Run("settlement marks the payment paid", func(t *testing.T) {
		res := env.public.Do(t, http.MethodPost, "/api/public/fees/notification", nil, signed(settlement))
		require.Equal(t, http.StatusOK, res.Status, res.Body)
		assert.Equal(t, model.PaymentPaid, res.Data()["status"])

		got := env.Do(t, http.MethodGet, "/api/fees/payments/"+id.String(), &accountant, nil)
		require.Equal(t, http.StatusOK, got.Status, got.Body)
		data := got.Data()
		assert.Equal(t, model.PaymentPaid, data["status"])
		assert.EqualValues(t, 120000, data["amount_paid"])
		assert.Equal(t, model.MethodOnline, data["method"])
		assert.Equal(t, "tx-0001", data["gateway_reference"])
	})
}
