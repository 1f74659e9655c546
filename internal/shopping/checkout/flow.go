package checkout

import (
	"context"

	"github.com/swiftcart/swiftcart-backend/pkg/enums"
)

// GuardStep checks the entry precondition for a checkout step. It
// returns the step to redirect to when the precondition fails, or
// ok=true when entry is allowed. A missing precondition is a
// navigational mistake, not a fault: callers redirect silently, and
// the redirect target is the furthest step the session can still
// enter, so a shopper who only skipped the address form is not sent
// back to the cart.
//
// The snapshot check tolerates the reload race where the in-memory
// copy has not rehydrated yet but durable storage has data.
func (s *Session) GuardStep(ctx context.Context, step enums.CheckoutStep) (redirect enums.CheckoutStep, ok bool) {
	switch step {
	case enums.CheckoutStepCart, enums.CheckoutStepSuccess:
		return "", true
	}

	reachable := s.furthestStep(ctx)
	if !step.IsValid() || step.Index() > reachable.Index() {
		return reachable, false
	}
	return "", true
}

// furthestStep walks the flow in order and returns the last step whose
// entry precondition holds.
func (s *Session) furthestStep(ctx context.Context) enums.CheckoutStep {
	if !s.Snapshot.Rehydrate(ctx) {
		return enums.CheckoutStepCart
	}
	if _, saved := s.Address(); !saved {
		return enums.CheckoutStepAddress
	}
	return enums.CheckoutStepPayment
}
