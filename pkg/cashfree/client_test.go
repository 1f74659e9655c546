package cashfree

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	t.Parallel()

	if _, err := NewClient("", "secret", "TEST"); err == nil {
		t.Fatal("expected error for missing app id")
	}
	if _, err := NewClient("app", " ", "TEST"); err == nil {
		t.Fatal("expected error for missing secret")
	}
}

func TestCreateOrderSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pg/orders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-client-id") != "app" {
			t.Errorf("missing client id header")
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload["order_currency"] != "INR" {
			t.Errorf("unexpected currency %v", payload["order_currency"])
		}
		json.NewEncoder(w).Encode(map[string]string{"payment_session_id": "sess_123"})
	}))
	defer server.Close()

	client, err := NewClient("app", "secret", "TEST", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	res, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		OrderID: "ORD-1",
		Amount:  decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PaymentSessionID != "sess_123" {
		t.Fatalf("unexpected session id %q", res.PaymentSessionID)
	}
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "order_id invalid"})
	}))
	defer server.Close()

	client, err := NewClient("app", "secret", "TEST", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.CreateOrder(context.Background(), CreateOrderRequest{
		OrderID: "ORD-1",
		Amount:  decimal.NewFromInt(1000),
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestCreateOrderValidatesInput(t *testing.T) {
	t.Parallel()

	client, err := NewClient("app", "secret", "TEST")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	if _, err := client.CreateOrder(context.Background(), CreateOrderRequest{Amount: decimal.NewFromInt(10)}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for missing order id, got %v", err)
	}
	if _, err := client.CreateOrder(context.Background(), CreateOrderRequest{OrderID: "ORD-1"}); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}
}
