package checkout

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"
	"github.com/swiftcart/swiftcart-backend/internal/shopping/payment"
	"github.com/swiftcart/swiftcart-backend/pkg/enums"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
	"github.com/swiftcart/swiftcart-backend/pkg/kvstore"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
)

type fakeOrders struct {
	created []Order
	err     error
}

func (f *fakeOrders) CreateOrder(_ context.Context, order Order) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, order)
	return nil
}

type fakeInitiator struct {
	res   *payment.InitiateResult
	err   error
	calls []payment.InitiateInput
}

func (f *fakeInitiator) Initiate(_ context.Context, input payment.InitiateInput) (*payment.InitiateResult, error) {
	f.calls = append(f.calls, input)
	return f.res, f.err
}

type fakeRefresher struct {
	userIDs []string
}

func (f *fakeRefresher) RefreshOrders(_ context.Context, userID string) error {
	f.userIDs = append(f.userIDs, userID)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

var fixedNow = time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

func newTestController(t *testing.T, orders OrderCreator, pay payment.Initiator) (*Controller, *Session) {
	t.Helper()
	ctx := context.Background()
	session := NewSession(ctx, kvstore.NewMemory(), "sess-1", nil)
	session.Login(UserInfo{ID: "u-1", Name: "Asha Rao", Email: "asha@example.com", Mobile: "9876543210"})

	ctrl, err := NewController(session, orders, pay, nil, nil, testLogger())
	require.NoError(t, err)
	ctrl.now = func() time.Time { return fixedNow }
	return ctrl, session
}

func readyForPayment(t *testing.T, ctrl *Controller, session *Session) {
	t.Helper()
	ctx := context.Background()
	session.Cart.Add(ctx, line("p-a", 500, 500, 1).Product, "", "")
	session.Cart.Add(ctx, line("p-a", 500, 500, 1).Product, "", "")
	session.Cart.Add(ctx, line("p-b", 1500, 1500, 1).Product, "", "")
	require.NoError(t, ctrl.BeginCheckout(ctx, catalog.LineKey{ProductID: "p-a"}))
	require.NoError(t, session.SaveAddress(testAddress()))
}

func TestPayImmediateSuccessMaterializesOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	orders := &fakeOrders{}
	gateway := &fakeInitiator{res: &payment.InitiateResult{Success: true}}
	ctrl, session := newTestController(t, orders, gateway)
	readyForPayment(t, ctrl, session)

	res, err := ctrl.Pay(ctx, PayInput{Mode: enums.PaymentModeCOD})
	require.NoError(t, err)
	require.Equal(t, PayOutcomeOrderPlaced, res.Outcome)
	require.NotNil(t, res.Order)

	order := *res.Order
	require.Equal(t, "ORD-1748773800000", order.ID)
	require.Equal(t, "u-1", order.UserID)
	require.Equal(t, int64(1000), order.Total, "two units of the 500-rupee item, shipped free")
	require.Equal(t, enums.OrderStatusOrdered, order.Status)
	require.Equal(t, enums.PaymentModeCOD, order.PaymentMethod)
	require.Equal(t, fixedNow.Add(5*24*time.Hour), order.EstimatedDelivery)
	require.Equal(t, "Bengaluru", order.Address.City)
	require.Len(t, order.Items, 1)
	require.Equal(t, 2, order.Items[0].Quantity)

	require.Len(t, order.TrackingHistory, 1)
	require.Equal(t, enums.OrderStatusOrdered, order.TrackingHistory[0].Status)
	require.Equal(t, "Order Placed Successfully", order.TrackingHistory[0].Description)
	require.Equal(t, "Online", order.TrackingHistory[0].Location)

	require.Len(t, orders.created, 1)

	// Only the purchased line leaves the cart; the snapshot and the
	// held address are consumed.
	remaining := session.Cart.Lines()
	require.Len(t, remaining, 1)
	require.Equal(t, "p-b", remaining[0].ID)
	require.True(t, session.Snapshot.Empty())
	_, saved := session.Address()
	require.False(t, saved)

	// The gateway was asked for the snapshot total, not the cart total.
	require.Len(t, gateway.calls, 1)
	require.Equal(t, "1000", gateway.calls[0].Amount.String())
	require.Equal(t, order.ID, gateway.calls[0].OrderID)
	require.Equal(t, "asha@example.com", gateway.calls[0].Email)
}

func TestPaySDKHandoffLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	orders := &fakeOrders{}
	gateway := &fakeInitiator{res: &payment.InitiateResult{Success: true, PaymentSessionID: "cf-sess-9"}}
	ctrl, session := newTestController(t, orders, gateway)
	readyForPayment(t, ctrl, session)

	res, err := ctrl.Pay(ctx, PayInput{Mode: enums.PaymentModeCard})
	require.NoError(t, err)
	require.Equal(t, PayOutcomeSDKHandoff, res.Outcome)
	require.Equal(t, "cf-sess-9", res.PaymentSessionID)
	require.Nil(t, res.Order)

	require.Empty(t, orders.created, "order is placed only after the gateway confirms")
	require.False(t, session.Snapshot.Empty())
	require.Equal(t, 2, session.Cart.Len())
}

func TestPayRedirectOutcome(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gateway := &fakeInitiator{res: &payment.InitiateResult{
		Success:     true,
		RedirectURL: "https://shop.example.com/#/mock-payment-gateway?orderId=ORD-1&amount=1000",
	}}
	ctrl, session := newTestController(t, &fakeOrders{}, gateway)
	readyForPayment(t, ctrl, session)

	res, err := ctrl.Pay(ctx, PayInput{Mode: enums.PaymentModeUPI, VPA: "asha@upi"})
	require.NoError(t, err)
	require.Equal(t, PayOutcomeRedirect, res.Outcome)
	require.Contains(t, res.RedirectURL, "mock-payment-gateway")
	require.Equal(t, "asha@upi", gateway.calls[0].VPA)
}

func TestPayInitiationFailureIsRecoverable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	orders := &fakeOrders{}
	gateway := &fakeInitiator{err: errors.New("gateway unreachable")}
	ctrl, session := newTestController(t, orders, gateway)
	readyForPayment(t, ctrl, session)

	_, err := ctrl.Pay(ctx, PayInput{Mode: enums.PaymentModeCard})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))

	require.Empty(t, orders.created)
	require.False(t, session.Snapshot.Empty(), "a failed initiation must leave the checkout retryable")
	require.Equal(t, 2, session.Cart.Len())
	_, saved := session.Address()
	require.True(t, saved)
}

func TestPayDeclinedAnswerIsRecoverable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gateway := &fakeInitiator{res: &payment.InitiateResult{Success: false}}
	ctrl, session := newTestController(t, &fakeOrders{}, gateway)
	readyForPayment(t, ctrl, session)

	_, err := ctrl.Pay(ctx, PayInput{Mode: enums.PaymentModeCard})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	require.False(t, session.Snapshot.Empty())
}

func TestPayUPIRequiresVPA(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gateway := &fakeInitiator{res: &payment.InitiateResult{Success: true}}
	ctrl, session := newTestController(t, &fakeOrders{}, gateway)
	readyForPayment(t, ctrl, session)

	_, err := ctrl.Pay(ctx, PayInput{Mode: enums.PaymentModeUPI})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	require.Empty(t, gateway.calls, "validation happens before any network call")
}

func TestPayUPIRejectsMalformedVPA(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gateway := &fakeInitiator{res: &payment.InitiateResult{Success: true}}
	ctrl, session := newTestController(t, &fakeOrders{}, gateway)
	readyForPayment(t, ctrl, session)

	for _, vpa := range []string{"no-at-sign", "@bank", "name@", "  @  "} {
		_, err := ctrl.Pay(ctx, PayInput{Mode: enums.PaymentModeUPI, VPA: vpa})
		require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "vpa %q", vpa)
	}
	require.Empty(t, gateway.calls, "a malformed UPI id never reaches the gateway")

	res, err := ctrl.Pay(ctx, PayInput{Mode: enums.PaymentModeUPI, VPA: "asha@okbank"})
	require.NoError(t, err)
	require.Equal(t, PayOutcomeOrderPlaced, res.Outcome)
	require.Len(t, gateway.calls, 1)
	require.Equal(t, "asha@okbank", gateway.calls[0].VPA)
}

func TestPaySecondAttemptWhileBusyIsIgnored(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gateway := &fakeInitiator{res: &payment.InitiateResult{Success: true}}
	ctrl, session := newTestController(t, &fakeOrders{}, gateway)
	readyForPayment(t, ctrl, session)

	ctrl.payBusy.Store(true)
	res, err := ctrl.Pay(ctx, PayInput{Mode: enums.PaymentModeCard})
	require.NoError(t, err)
	require.Equal(t, PayOutcomeInFlight, res.Outcome)
	require.Empty(t, gateway.calls)
}

func TestPayWithoutAddressIsBlocked(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gateway := &fakeInitiator{res: &payment.InitiateResult{Success: true}}
	ctrl, session := newTestController(t, &fakeOrders{}, gateway)

	session.Cart.Add(ctx, line("p-a", 500, 500, 1).Product, "", "")
	require.NoError(t, ctrl.BeginCheckout(ctx))

	_, err := ctrl.Pay(ctx, PayInput{Mode: enums.PaymentModeCard})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))
	require.Empty(t, gateway.calls)
}

func TestPlaceOrderPersistenceFailureBeforeSettlement(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	orders := &fakeOrders{err: errors.New("backend down")}
	ctrl, session := newTestController(t, orders, &fakeInitiator{res: &payment.InitiateResult{Success: true}})
	readyForPayment(t, ctrl, session)

	_, err := ctrl.PlaceOrder(ctx, PlaceOrderInput{Mode: enums.PaymentModeCOD})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	require.False(t, session.Snapshot.Empty(), "nothing is consumed until the order persisted")
	require.Equal(t, 2, session.Cart.Len())
}

func TestPayReportsPendingWhenOrderFailsAfterSettlement(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	orders := &fakeOrders{err: errors.New("backend down")}
	gateway := &fakeInitiator{res: &payment.InitiateResult{Success: true}}
	ctrl, session := newTestController(t, orders, gateway)
	readyForPayment(t, ctrl, session)

	_, err := ctrl.Pay(ctx, PayInput{Mode: enums.PaymentModeCOD})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodePaymentPending))

	// State is deliberately left for support tooling to reconcile.
	require.False(t, session.Snapshot.Empty())
	require.Equal(t, 2, session.Cart.Len())
}

func TestBeginCheckoutRejectsEmptySelection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctrl, session := newTestController(t, &fakeOrders{}, &fakeInitiator{})

	err := ctrl.BeginCheckout(ctx)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	session.Cart.Add(ctx, line("p-a", 500, 500, 1).Product, "", "")
	err = ctrl.BeginCheckout(ctx, catalog.LineKey{ProductID: "p-missing"})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "selection matching nothing captures nothing")
}

func TestQuoteRequiresSnapshot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctrl, session := newTestController(t, &fakeOrders{}, &fakeInitiator{})

	_, err := ctrl.Quote(ctx)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	session.Cart.Add(ctx, line("p-a", 400, 500, 1).Product, "", "")
	require.NoError(t, ctrl.BeginCheckout(ctx))

	q, err := ctrl.Quote(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(400), q.Subtotal)
	require.Equal(t, int64(100), q.Discount)
	require.Equal(t, int64(450), q.Total, "below the free-shipping threshold")
}

func TestPlaceOrderRefreshesOrderList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	refresher := &fakeRefresher{}
	session := NewSession(ctx, kvstore.NewMemory(), "sess-1", nil)
	session.Login(UserInfo{ID: "u-7", Email: "a@example.com", Mobile: "9876543210"})

	ctrl, err := NewController(session, &fakeOrders{}, &fakeInitiator{res: &payment.InitiateResult{Success: true}}, refresher, nil, testLogger())
	require.NoError(t, err)
	ctrl.now = func() time.Time { return fixedNow }

	session.Cart.Add(ctx, line("p-a", 500, 500, 1).Product, "", "")
	require.NoError(t, ctrl.BeginCheckout(ctx))
	require.NoError(t, session.SaveAddress(testAddress()))

	_, err = ctrl.PlaceOrder(ctx, PlaceOrderInput{Mode: enums.PaymentModeCOD})
	require.NoError(t, err)
	require.Equal(t, []string{"u-7"}, refresher.userIDs)
}

func TestCompletePaymentKeepsGatewayOrderID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	orders := &fakeOrders{}
	ctrl, session := newTestController(t, orders, &fakeInitiator{})
	readyForPayment(t, ctrl, session)

	order, err := ctrl.CompletePayment(ctx, "ORD-from-gateway", enums.PaymentModeCard)
	require.NoError(t, err)
	require.Equal(t, "ORD-from-gateway", order.ID)
	require.Len(t, orders.created, 1)
	require.True(t, session.Snapshot.Empty())

	_, err = ctrl.CompletePayment(ctx, "", enums.PaymentModeCard)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestCompletePaymentPersistenceFailureIsPending(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	orders := &fakeOrders{err: errors.New("db down")}
	ctrl, session := newTestController(t, orders, &fakeInitiator{})
	readyForPayment(t, ctrl, session)

	_, err := ctrl.CompletePayment(ctx, "ORD-from-gateway", enums.PaymentModeCard)
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodePaymentPending))
	require.False(t, session.Snapshot.Empty(), "the snapshot must survive for support tooling")
}
