// Package backend is the typed HTTP client for the storefront API.
// The shopping core holds it behind the narrow interfaces it declares
// (order creation, payment initiation, order listing); everything else
// is here for host programs that drive the API directly.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"
	"github.com/swiftcart/swiftcart-backend/internal/shopping/checkout"
	"github.com/swiftcart/swiftcart-backend/internal/shopping/payment"
	"github.com/swiftcart/swiftcart-backend/pkg/enums"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
	"github.com/swiftcart/swiftcart-backend/pkg/types"
)

const responseBodyReadLimit int64 = 4 << 20

// Client talks to the storefront API over JSON.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
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

// WithToken attaches a bearer token to every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// NewClient builds a client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("backend base url is required")
	}

	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// User is the identity record the API returns.
type User struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Mobile string         `json:"mobile"`
	Gender string         `json:"gender,omitempty"`
	Role   enums.UserRole `json:"role"`
}

// AuthSession is a signed-in identity plus its bearer token.
type AuthSession struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterInput creates a new account.
type RegisterInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
	Gender string `json:"gender,omitempty"`
}

// UpdateUserInput edits profile fields. Zero values are left unchanged.
type UpdateUserInput struct {
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Mobile string `json:"mobile,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	var product catalog.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateOrder persists a materialized order.
func (c *Client) CreateOrder(ctx context.Context, order checkout.Order) error {
	return c.do(ctx, http.MethodPost, "/api/orders", order, nil)
}

// GetOrder fetches one order by id.
func (c *Client) GetOrder(ctx context.Context, id string) (*checkout.Order, error) {
	var order checkout.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders fetches the orders of one user, newest first.
func (c *Client) ListOrders(ctx context.Context, userID string) ([]checkout.Order, error) {
	path := "/api/orders"
	if userID != "" {
		path += "?userId=" + url.QueryEscape(userID)
	}
	var orders []checkout.Order
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus advances an order along its status machine.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status enums.OrderStatus) (*checkout.Order, error) {
	body := map[string]string{"status": status.String()}
	var order checkout.Order
	if err := c.do(ctx, http.MethodPatch, "/api/orders/"+url.PathEscape(id), body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CheckIdentifierExists reports whether an email or mobile already has
// an account.
func (c *Client) CheckIdentifierExists(ctx context.Context, identifier string) (bool, error) {
	var result struct {
		Exists bool `json:"exists"`
	}
	path := "/api/users/check?id=" + url.QueryEscape(identifier)
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return false, err
	}
	return result.Exists, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthSession, error) {
	var session AuthSession
	if err := c.do(ctx, http.MethodPost, "/api/users/register", input, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Authenticate signs in an existing account by email or mobile. OTP
// verification happens separately, before this call.
func (c *Client) Authenticate(ctx context.Context, identifier string) (*AuthSession, error) {
	body := map[string]string{"identifier": identifier}
	var session AuthSession
	if err := c.do(ctx, http.MethodPost, "/api/users/login", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateUser edits a profile.
func (c *Client) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, "/api/users/"+url.PathEscape(id), input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SendOTP requests a login code for the identifier. The returned
// devCode is set when the deployment has no live delivery channel.
func (c *Client) SendOTP(ctx context.Context, identifier string) (devCode string, err error) {
	body := map[string]string{"identifier": identifier}
	var result struct {
		DevCode string `json:"devCode,omitempty"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/send-otp", body, &result); err != nil {
		return "", err
	}
	return result.DevCode, nil
}

// VerifyOTP checks a login code. A nil error means verified.
func (c *Client) VerifyOTP(ctx context.Context, identifier, code string) error {
	body := map[string]string{"identifier": identifier, "code": code}
	return c.do(ctx, http.MethodPost, "/api/verify-otp", body, nil)
}

// Initiate opens a payment through the API's gateway integration.
func (c *Client) Initiate(ctx context.Context, input payment.InitiateInput) (*payment.InitiateResult, error) {
	body := map[string]any{
		"orderId": input.OrderID,
		"amount":  input.Amount,
		"email":   input.Email,
		"mobile":  input.Mobile,
		"mode":    input.Mode.String(),
	}
	if input.VPA != "" {
		body["vpa"] = input.VPA
	}
	var result payment.InitiateResult
	if err := c.do(ctx, http.MethodPost, "/api/payment/initiate", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call storefront api")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}

	var envelope types.SuccessEnvelope
	envelope.Data = out
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response body")
	}
	return nil
}

// decodeAPIError translates the API's error envelope back into the
// same typed error the server raised, so callers branch on codes the
// same way on both sides of the wire.
func decodeAPIError(status int, raw []byte) error {
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Code != "" {
		typed := pkgerrors.New(pkgerrors.Code(envelope.Error.Code), envelope.Error.Message)
		if envelope.Error.Details != nil {
			typed = typed.WithDetails(envelope.Error.Details)
		}
		return typed
	}
	if status == http.StatusNotFound {
		return pkgerrors.New(pkgerrors.CodeNotFound, "resource not found")
	}
	return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("storefront api returned status %d", status))
}
