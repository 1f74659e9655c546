package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records the checkout funnel.
type CheckoutMetrics struct {
	snapshots       prometheus.Counter
	ordersPlaced    prometheus.Counter
	paymentFailures *prometheus.CounterVec
	orderPending    prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	snapshots := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_snapshots_captured",
		Help: "Checkout snapshots captured from carts.",
	})
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_orders_placed",
		Help: "Orders successfully materialized.",
	})
	paymentFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_payment_failures",
		Help: "Payment initiations that failed, by mode.",
	}, []string{"mode"})
	orderPending := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_orders_pending_after_payment",
		Help: "Orders stuck pending after a successful payment.",
	})
	reg.MustRegister(snapshots, ordersPlaced, paymentFailures, orderPending)
	return &CheckoutMetrics{
		snapshots:       snapshots,
		ordersPlaced:    ordersPlaced,
		paymentFailures: paymentFailures,
		orderPending:    orderPending,
	}
}

// IncSnapshotCaptured counts a snapshot capture.
func (c *CheckoutMetrics) IncSnapshotCaptured() {
	if c == nil || c.snapshots == nil {
		return
	}
	c.snapshots.Inc()
}

// IncOrderPlaced counts a materialized order.
func (c *CheckoutMetrics) IncOrderPlaced() {
	if c == nil || c.ordersPlaced == nil {
		return
	}
	c.ordersPlaced.Inc()
}

// IncPaymentFailure counts a failed initiation for the given mode.
func (c *CheckoutMetrics) IncPaymentFailure(mode string) {
	if c == nil || c.paymentFailures == nil {
		return
	}
	c.paymentFailures.WithLabelValues(mode).Inc()
}

// IncOrderPendingAfterPayment counts the terminal inconsistency where
// payment settled but the order record failed to persist.
func (c *CheckoutMetrics) IncOrderPendingAfterPayment() {
	if c == nil || c.orderPending == nil {
		return
	}
	c.orderPending.Inc()
}
