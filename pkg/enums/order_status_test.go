package enums

import "testing"

func TestOrderStatusLinearProgression(t *testing.T) {
	t.Parallel()

	chain := []OrderStatus{
		OrderStatusOrdered,
		OrderStatusPacked,
		OrderStatusShipped,
		OrderStatusOutForDelivery,
		OrderStatusDelivered,
	}

	for i := 0; i < len(chain)-1; i++ {
		if !chain[i].CanTransitionTo(chain[i+1]) {
			t.Fatalf("expected %s -> %s to be allowed", chain[i], chain[i+1])
		}
	}

	if OrderStatusOrdered.CanTransitionTo(OrderStatusShipped) {
		t.Fatal("skipping a fulfillment step must be rejected")
	}
	if OrderStatusPacked.CanTransitionTo(OrderStatusOrdered) {
		t.Fatal("moving backwards must be rejected")
	}
}

func TestOrderStatusCancellation(t *testing.T) {
	t.Parallel()

	for _, from := range []OrderStatus{OrderStatusOrdered, OrderStatusPacked, OrderStatusShipped, OrderStatusOutForDelivery} {
		if !from.CanTransitionTo(OrderStatusCancelled) {
			t.Fatalf("expected %s -> Cancelled to be allowed", from)
		}
	}

	if OrderStatusDelivered.CanTransitionTo(OrderStatusCancelled) {
		t.Fatal("delivered orders cannot be cancelled")
	}
	if OrderStatusCancelled.CanTransitionTo(OrderStatusOrdered) {
		t.Fatal("cancelled is terminal")
	}
}

func TestParseOrderStatus(t *testing.T) {
	t.Parallel()

	got, err := ParseOrderStatus("Out for Delivery")
	if err != nil || got != OrderStatusOutForDelivery {
		t.Fatalf("unexpected result %q %v", got, err)
	}

	if _, err := ParseOrderStatus("Returned"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
