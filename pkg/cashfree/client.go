package cashfree

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
)

const (
	sandboxBaseURL    = "https://sandbox.cashfree.com"
	productionBaseURL = "https://api.cashfree.com"

	apiVersion                 = "2023-08-01"
	responseBodyReadLimit int64 = 1 << 20
)

var errCredentialsRequired = errors.New("cashfree app id and secret key are required")

// Client wraps the Cashfree payment-gateway order API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	appID      string
	secretKey  string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the gateway base URL (tests point this at a stub).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds a gateway client for the given environment.
// env "PROD" selects the production endpoint; anything else is sandbox.
func NewClient(appID, secretKey, env string, opts ...Option) (*Client, error) {
	appID = strings.TrimSpace(appID)
	secretKey = strings.TrimSpace(secretKey)
	if appID == "" || secretKey == "" {
		return nil, errCredentialsRequired
	}

	baseURL := sandboxBaseURL
	if strings.EqualFold(env, "PROD") {
		baseURL = productionBaseURL
	}

	client := &Client{
		appID:      appID,
		secretKey:  secretKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// CreateOrderRequest is the payload for the gateway's order creation API.
type CreateOrderRequest struct {
	OrderID       string
	Amount        decimal.Decimal
	CustomerID    string
	CustomerEmail string
	CustomerPhone string
	ReturnURL     string
}

// CreateOrderResult carries the session handle the frontend SDK needs.
type CreateOrderResult struct {
	PaymentSessionID string
}

type createOrderPayload struct {
	OrderID         string          `json:"order_id"`
	OrderAmount     decimal.Decimal `json:"order_amount"`
	OrderCurrency   string          `json:"order_currency"`
	CustomerDetails customerDetails `json:"customer_details"`
	OrderMeta       *orderMeta      `json:"order_meta,omitempty"`
}

type customerDetails struct {
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type orderMeta struct {
	ReturnURL string `json:"return_url,omitempty"`
}

type createOrderResponse struct {
	PaymentSessionID string `json:"payment_session_id"`
	Message          string `json:"message"`
}

// CreateOrder registers the order with the gateway and returns the
// opaque payment session handle.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	if strings.TrimSpace(req.OrderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	payload := createOrderPayload{
		OrderID:       req.OrderID,
		OrderAmount:   req.Amount,
		OrderCurrency: "INR",
		CustomerDetails: customerDetails{
			CustomerID:    defaultString(req.CustomerID, "guest"),
			CustomerEmail: defaultString(req.CustomerEmail, "guest@example.com"),
			CustomerPhone: defaultString(req.CustomerPhone, "9999999999"),
		},
	}
	if req.ReturnURL != "" {
		payload.OrderMeta = &orderMeta{ReturnURL: req.ReturnURL}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode gateway payload")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/pg/orders", bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build gateway request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-version", apiVersion)
	httpReq.Header.Set("x-client-id", c.appID)
	httpReq.Header.Set("x-client-secret", c.secretKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call payment gateway")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read gateway response")
	}

	var decoded createOrderResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode gateway response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || decoded.PaymentSessionID == "" {
		msg := decoded.Message
		if msg == "" {
			msg = fmt.Sprintf("gateway returned status %d", resp.StatusCode)
		}
		return nil, pkgerrors.New(pkgerrors.CodeDependency, msg)
	}

	return &CreateOrderResult{PaymentSessionID: decoded.PaymentSessionID}, nil
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
