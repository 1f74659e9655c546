// Package payment defines the contract the checkout flow holds against
// the payment collaborator. The flow never talks to a gateway
// directly; it hands an initiation request to an Initiator and reacts
// to one of three disjoint response shapes.
package payment

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/swiftcart/swiftcart-backend/pkg/enums"
)

// InitiateInput carries everything the collaborator needs to open a
// payment for one order.
type InitiateInput struct {
	Amount  decimal.Decimal
	OrderID string
	Email   string
	Mobile  string
	Mode    enums.PaymentMode
	// VPA is the buyer's UPI id, set only for the UPI mode.
	VPA string
}

// ValidVPA reports whether a UPI id has the handle@provider form.
// Checked before any network call so a malformed id never reaches the
// gateway.
func ValidVPA(vpa string) bool {
	vpa = strings.TrimSpace(vpa)
	at := strings.Index(vpa, "@")
	return at > 0 && at < len(vpa)-1
}

// InitiateResult is the collaborator's answer. Exactly one of the
// following holds when Success is true:
//   - PaymentSessionID set: hand control to the gateway SDK.
//   - RedirectURL set: navigate to it (sandbox/demo fallback).
//   - neither set: immediate synchronous success; the caller
//     materializes the order itself.
type InitiateResult struct {
	Success          bool   `json:"success"`
	PaymentSessionID string `json:"paymentSessionId,omitempty"`
	RedirectURL      string `json:"redirectUrl,omitempty"`
}

// Initiator opens a payment with the collaborator.
type Initiator interface {
	Initiate(ctx context.Context, input InitiateInput) (*InitiateResult, error)
}
