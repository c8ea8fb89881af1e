package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"schoolerp_backend/internals/constants"
	"schoolerp_backend/internals/features/fees/model"
	"schoolerp_backend/internals/features/fees/service"
	"schoolerp_backend/internals/features/shared/scope"
	studentModel "schoolerp_backend/internals/features/students/model"
	helper "schoolerp_backend/internals/helpers"
	helperAuth "schoolerp_backend/internals/helpers/auth"
	"schoolerp_backend/internals/resource"

	"github.com/gofiber/fiber/v2"
)

/* =======================================================================
   Checkout + gateway notification
======================================================================= */

type CheckoutController struct {
	Payments  *resource.Controller[model.FeePaymentModel, *model.FeePaymentModel]
	Students  resource.Store[studentModel.StudentModel]
	Gateway   service.SnapGateway
	ServerKey string
}

// Checkout handles POST /fees/payments/:id/checkout and returns a Snap
// token for whatever is still outstanding.
func (h *CheckoutController) Checkout(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return h.Payments.Fail(c, "CHECKOUT", err)
	}
	id, err := resource.ParseID(c, "id")
	if err != nil {
		return h.Payments.Fail(c, "CHECKOUT", err)
	}
	if h.Gateway == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Payment gateway is not configured")
	}

	ctx := c.UserContext()
	p, err := h.Payments.Store.Get(ctx, schoolID, id)
	if err != nil {
		return h.Payments.Fail(c, "CHECKOUT", err)
	}
	// students may only pay their own fees
	q := resource.Query{Where: map[string]any{}}
	if err := scope.OwnStudent("student_id")(c, &q); err != nil {
		return h.Payments.Fail(c, "CHECKOUT", err)
	}
	if sid, ok := q.Where["student_id"]; ok && sid != p.StudentID {
		return helper.JsonError(c, fiber.StatusNotFound, "Fee payment not found")
	}
	if p.Status == model.PaymentCancelled || p.Outstanding() <= 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Nothing outstanding on this payment")
	}

	st, err := h.Students.Get(ctx, schoolID, p.StudentID)
	if err != nil && !errors.Is(err, resource.ErrNotFound) {
		return h.Payments.Fail(c, "CHECKOUT", err)
	}
	if helperAuth.GetRole(c) == constants.RoleParent && !isParentOf(c, st) {
		return helper.JsonError(c, fiber.StatusNotFound, "Fee payment not found")
	}
	var cust service.Customer
	if st != nil {
		cust = service.Customer{
			FirstName: st.FirstName,
			LastName:  st.LastName,
			Email:     st.GuardianEmail,
			Phone:     st.GuardianPhone,
		}
	}

	orderID := service.NewOrderID(p, time.Now())
	req, err := service.BuildSnapRequest(p, orderID, cust)
	if err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Nothing outstanding on this payment")
	}
	resp, merr := h.Gateway.CreateTransaction(req)
	if merr != nil {
		log.Printf("[FEE_PAYMENT][CHECKOUT] snap: %v", merr.Message)
		return helper.JsonError(c, fiber.StatusBadGateway, "Payment gateway error")
	}

	p.OrderID = orderID
	if err := h.Payments.Store.Replace(ctx, p); err != nil {
		return h.Payments.Fail(c, "CHECKOUT", err)
	}
	return helper.JsonOK(c, "Checkout created", fiber.Map{
		"payment_id":   p.ID,
		"order_id":     orderID,
		"amount":       req.TransactionDetails.GrossAmt,
		"token":        resp.Token,
		"redirect_url": resp.RedirectURL,
	})
}

// Notification handles the unauthenticated gateway callback. Unknown
// orders are acknowledged so the gateway stops retrying.
func (h *CheckoutController) Notification(c *fiber.Ctx) error {
	var n service.Notification
	if err := c.BodyParser(&n); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if !service.VerifySignature(n, h.ServerKey) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid signature")
	}
	orderID := strings.TrimSpace(n.OrderID)
	if orderID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "order_id is required")
	}

	ctx := c.UserContext()
	found, err := h.Payments.Store.Find(ctx, resource.Query{
		AllTenants: true,
		Where:      map[string]any{"order_id": orderID},
		Limit:      1,
	})
	if err != nil {
		return h.Payments.Fail(c, "NOTIFY", err)
	}
	if len(found) == 0 {
		log.Printf("[FEE_PAYMENT][NOTIFY] unknown order_id=%s", orderID)
		return helper.JsonOK(c, "ignored", fiber.Map{"order_id": orderID})
	}

	p := &found[0]
	if !service.ApplyNotification(p, n, time.Now().UTC()) {
		return helper.JsonOK(c, "ok", fiber.Map{"payment_id": p.ID, "status": p.Status})
	}
	if err := h.Payments.Store.Replace(ctx, p); err != nil {
		return h.Payments.Fail(c, "NOTIFY", err)
	}
	log.Printf("[FEE_PAYMENT][NOTIFY] payment=%s order=%s transaction_status=%s → %s",
		p.ID, orderID, n.TransactionStatus, p.Status)
	return helper.JsonOK(c, "ok", fiber.Map{"payment_id": p.ID, "status": p.Status})
}

func isParentOf(c *fiber.Ctx, st *studentModel.StudentModel) bool {
	if st == nil || st.ParentUserID == nil {
		return false
	}
	uid, err := helperAuth.GetUserIDFromToken(c)
	return err == nil && *st.ParentUserID == uid
}
