package service

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"schoolerp_backend/internals/features/fees/model"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

/* =========================================================
   Snap gateway
========================================================= */

// SnapGateway is the part of snap.Client the checkout needs.
type SnapGateway interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// NewSnapClient returns nil when no server key is configured.
func NewSnapClient(serverKey string, useProduction bool) SnapGateway {
	if strings.TrimSpace(serverKey) == "" {
		return nil
	}
	var c snap.Client
	if useProduction {
		c.New(serverKey, midtrans.Production)
	} else {
		c.New(serverKey, midtrans.Sandbox)
	}
	return &c
}

type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// NewOrderID is unique per checkout attempt; Midtrans rejects a reused
// order id once a transaction exists for it.
func NewOrderID(p *model.FeePaymentModel, now time.Time) string {
	return fmt.Sprintf("FEE-%s-%d", strings.ReplaceAll(p.ID.String(), "-", "")[:12], now.Unix())
}

// BuildSnapRequest charges the outstanding amount of p under orderID.
func BuildSnapRequest(p *model.FeePaymentModel, orderID string, cust Customer) (*snap.Request, error) {
	amount := int64(math.Round(p.Outstanding()))
	if amount <= 0 {
		return nil, errors.New("nothing outstanding")
	}
	name := "School fee"
	if p.FeeStructure != nil && p.FeeStructure.Name != "" {
		name = truncate(p.FeeStructure.Name, 50)
	}

	return &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.FirstName,
			LName: cust.LastName,
			Email: cust.Email,
			Phone: cust.Phone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       p.ID.String(),
				Price:    amount,
				Qty:      1,
				Name:     name,
				Category: "FEE",
			},
		},
	}, nil
}

/* =========================================================
   Notification
========================================================= */

type Notification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
	TransactionID     string `json:"transaction_id"`
}

// Signature is SHA512(order_id + status_code + gross_amount + server_key), hex.
func Signature(n Notification, serverKey string) string {
	h := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + serverKey))
	return hex.EncodeToString(h[:])
}

func VerifySignature(n Notification, serverKey string) bool {
	if serverKey == "" || n.SignatureKey == "" {
		return false
	}
	return strings.EqualFold(n.SignatureKey, Signature(n, serverKey))
}

// ApplyNotification moves p according to the gateway status and reports
// whether anything changed. Failed attempts leave the balance untouched.
func ApplyNotification(p *model.FeePaymentModel, n Notification, now time.Time) bool {
	ts := strings.ToLower(n.TransactionStatus)
	fraud := strings.ToLower(n.FraudStatus)

	switch ts {
	case "capture":
		if fraud != "" && fraud != "accept" {
			return false
		}
		fallthrough
	case "settlement":
		if p.Status == model.PaymentPaid {
			return false
		}
		p.AmountPaid = p.AmountDue
		p.Status = model.PaymentPaid
		p.Method = model.MethodOnline
		p.PaidAt = &now
	case "refund", "partial_refund":
		if p.Status == model.PaymentCancelled {
			return false
		}
		p.Status = model.PaymentCancelled
	case "deny", "cancel", "expire", "failure":
		if p.OrderID != n.OrderID {
			return false
		}
		p.OrderID = ""
	default: // pending, authorize
		return false
	}
	if n.TransactionID != "" {
		p.GatewayReference = n.TransactionID
	}
	return true
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
