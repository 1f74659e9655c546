package checkout

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"
	"github.com/swiftcart/swiftcart-backend/internal/shopping/payment"
	"github.com/swiftcart/swiftcart-backend/pkg/enums"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
	"github.com/swiftcart/swiftcart-backend/pkg/metrics"
)

const deliveryLeadTime = 5 * 24 * time.Hour

// OrderCreator persists a materialized order.
type OrderCreator interface {
	CreateOrder(ctx context.Context, order Order) error
}

// OrderRefresher re-pulls the user's order list after placement so the
// next listing reflects the new order. Best effort.
type OrderRefresher interface {
	RefreshOrders(ctx context.Context, userID string) error
}

// Controller drives the back half of checkout: snapshot capture,
// payment initiation and order materialization.
type Controller struct {
	session  *Session
	orders   OrderCreator
	payments payment.Initiator
	refresh  OrderRefresher
	metrics  *metrics.CheckoutMetrics
	logg     *logger.Logger

	now        func() time.Time
	newOrderID func(time.Time) string
	payBusy    atomic.Bool
}

// NewController wires a controller for one session. The refresher and
// metrics are optional.
func NewController(
	session *Session,
	orders OrderCreator,
	payments payment.Initiator,
	refresh OrderRefresher,
	m *metrics.CheckoutMetrics,
	logg *logger.Logger,
) (*Controller, error) {
	if session == nil {
		return nil, fmt.Errorf("checkout controller requires a session")
	}
	if orders == nil {
		return nil, fmt.Errorf("checkout controller requires an order creator")
	}
	if payments == nil {
		return nil, fmt.Errorf("checkout controller requires a payment initiator")
	}
	if logg == nil {
		return nil, fmt.Errorf("checkout controller requires a logger")
	}
	return &Controller{
		session:    session,
		orders:     orders,
		payments:   payments,
		refresh:    refresh,
		metrics:    m,
		logg:       logg,
		now:        time.Now,
		newOrderID: defaultOrderID,
	}, nil
}

func defaultOrderID(at time.Time) string {
	return fmt.Sprintf("ORD-%d", at.UnixMilli())
}

// BeginCheckout captures the shopper's selection into the snapshot and
// opens the address step. With no keys given the whole cart is
// captured; otherwise only the lines whose identity key is listed.
func (c *Controller) BeginCheckout(ctx context.Context, selected ...catalog.LineKey) error {
	lines := c.session.Cart.Lines()
	if len(selected) > 0 {
		wanted := make(map[catalog.LineKey]struct{}, len(selected))
		for _, key := range selected {
			wanted[key] = struct{}{}
		}
		picked := make([]catalog.CartLine, 0, len(lines))
		for _, line := range lines {
			if _, ok := wanted[line.Key()]; ok {
				picked = append(picked, line)
			}
		}
		lines = picked
	}
	if err := c.session.Snapshot.Capture(ctx, lines); err != nil {
		return err
	}
	c.metrics.IncSnapshotCaptured()
	return nil
}

// Quote prices the captured snapshot. The snapshot, not the live cart,
// is the basis for every amount from the address step onward.
func (c *Controller) Quote(ctx context.Context) (Quote, error) {
	if !c.session.Snapshot.Rehydrate(ctx) {
		return Quote{}, pkgerrors.New(pkgerrors.CodeStateConflict, "no checkout in progress")
	}
	return NewQuote(c.session.Snapshot.Lines()), nil
}

// PlaceOrderInput names what the materializer needs beyond session
// state.
type PlaceOrderInput struct {
	Mode enums.PaymentMode
	// PaymentSettled marks that a gateway payment already completed,
	// which changes how a persistence failure is classified.
	PaymentSettled bool
}

// PlaceOrder materializes the snapshot into an order and hands it to
// the order collaborator. Session state is consumed only after the
// order persisted; a failure before that leaves the checkout
// re-runnable. A failure after a settled payment is the one
// inconsistency this flow cannot repair on its own, and it is reported
// with its own code so support tooling can pick it up.
func (c *Controller) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Order, error) {
	return c.placeOrder(ctx, c.newOrderID(c.now()), input)
}

// CompletePayment materializes the order for a checkout whose payment
// already settled on the gateway's side, keeping the order id the
// initiation handed to the gateway.
func (c *Controller) CompletePayment(ctx context.Context, orderID string, mode enums.PaymentMode) (*Order, error) {
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	return c.placeOrder(ctx, orderID, PlaceOrderInput{Mode: mode, PaymentSettled: true})
}

func (c *Controller) placeOrder(ctx context.Context, orderID string, input PlaceOrderInput) (*Order, error) {
	if !input.Mode.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment mode")
	}
	if redirect, ok := c.session.GuardStep(ctx, enums.CheckoutStepPayment); !ok {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout not ready, go back to "+redirect.String())
	}
	addr, _ := c.session.Address()

	lines := c.session.Snapshot.Lines()
	quote := NewQuote(lines)
	placedAt := c.now()

	order := Order{
		ID:                orderID,
		Items:             lines,
		Total:             quote.Total,
		Status:            enums.OrderStatusOrdered,
		Date:              placedAt,
		Address:           addr,
		PaymentMethod:     input.Mode,
		EstimatedDelivery: placedAt.Add(deliveryLeadTime),
		TrackingHistory: []TrackingEvent{{
			Status:      enums.OrderStatusOrdered,
			Date:        placedAt,
			Location:    "Online",
			Description: "Order Placed Successfully",
		}},
	}
	if c.session.User != nil {
		order.UserID = c.session.User.ID
	}

	ctx = c.logg.WithOrderID(ctx, order.ID)
	if err := c.orders.CreateOrder(ctx, order); err != nil {
		if input.PaymentSettled {
			c.metrics.IncOrderPendingAfterPayment()
			c.logg.Error(ctx, "payment settled but order persistence failed", err)
			return nil, pkgerrors.Wrap(pkgerrors.CodePaymentPending, err, "payment received, order confirmation pending")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	c.session.Snapshot.Consume(ctx, c.session.Cart)
	c.session.address = nil
	c.metrics.IncOrderPlaced()

	if c.refresh != nil && c.session.User != nil {
		if err := c.refresh.RefreshOrders(ctx, c.session.User.ID); err != nil {
			c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "order list refresh failed")
		}
	}

	c.logg.Info(ctx, "order placed")
	return &order, nil
}

// PayOutcome names how a successful initiation continues.
type PayOutcome string

const (
	// PayOutcomeSDKHandoff hands control to the gateway's checkout SDK.
	PayOutcomeSDKHandoff PayOutcome = "sdk_handoff"
	// PayOutcomeRedirect sends the shopper to the returned URL.
	PayOutcomeRedirect PayOutcome = "redirect"
	// PayOutcomeOrderPlaced means the payment settled inline and the
	// order was materialized immediately.
	PayOutcomeOrderPlaced PayOutcome = "order_placed"
	// PayOutcomeInFlight means another payment attempt is already
	// running and this one was ignored.
	PayOutcomeInFlight PayOutcome = "in_flight"
)

// PayInput is the shopper's payment choice.
type PayInput struct {
	Mode enums.PaymentMode
	// VPA is the UPI id, required when the mode asks for one.
	VPA string
}

// PayResult reports which branch the initiation took. Exactly one of
// PaymentSessionID, RedirectURL and Order is set for the corresponding
// outcome.
type PayResult struct {
	Outcome          PayOutcome
	OrderID          string
	PaymentSessionID string
	RedirectURL      string
	Order            *Order
}

// Pay initiates payment for the captured snapshot and dispatches on
// the collaborator's answer. An initiation failure is recoverable:
// snapshot, cart and address are untouched and the shopper retries. A
// second Pay while one is pending is ignored.
func (c *Controller) Pay(ctx context.Context, input PayInput) (*PayResult, error) {
	if !c.payBusy.CompareAndSwap(false, true) {
		return &PayResult{Outcome: PayOutcomeInFlight}, nil
	}
	defer c.payBusy.Store(false)

	if !input.Mode.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment mode")
	}
	if input.Mode.RequiresVPA() {
		if input.VPA == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "enter a UPI id to pay with UPI")
		}
		if !payment.ValidVPA(input.VPA) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "the UPI id must look like name@bank")
		}
	}
	if redirect, ok := c.session.GuardStep(ctx, enums.CheckoutStepPayment); !ok {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout not ready, go back to "+redirect.String())
	}

	quote := NewQuote(c.session.Snapshot.Lines())
	orderID := c.newOrderID(c.now())
	ctx = c.logg.WithOrderID(ctx, orderID)

	req := payment.InitiateInput{
		Amount:  quote.TotalAmount(),
		OrderID: orderID,
		Mode:    input.Mode,
		VPA:     input.VPA,
	}
	if c.session.User != nil {
		req.Email = c.session.User.Email
		req.Mobile = c.session.User.Mobile
	}

	res, err := c.payments.Initiate(ctx, req)
	if err != nil || res == nil || !res.Success {
		c.metrics.IncPaymentFailure(input.Mode.String())
		c.logg.Error(ctx, "payment initiation failed", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment could not be started, please retry")
	}

	switch {
	case res.PaymentSessionID != "":
		return &PayResult{
			Outcome:          PayOutcomeSDKHandoff,
			OrderID:          orderID,
			PaymentSessionID: res.PaymentSessionID,
		}, nil
	case res.RedirectURL != "":
		return &PayResult{
			Outcome:     PayOutcomeRedirect,
			OrderID:     orderID,
			RedirectURL: res.RedirectURL,
		}, nil
	default:
		order, err := c.placeOrder(ctx, orderID, PlaceOrderInput{
			Mode:           input.Mode,
			PaymentSettled: true,
		})
		if err != nil {
			return nil, err
		}
		return &PayResult{
			Outcome: PayOutcomeOrderPlaced,
			OrderID: order.ID,
			Order:   order,
		}, nil
	}
}
