// Package payment opens gateway payments for the storefront API. With
// Cashfree credentials configured it creates a real gateway order; in
// every other case checkout continues through the bundled mock gateway
// page, so a demo deployment never dead-ends at payment.
package payment

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	contract "github.com/swiftcart/swiftcart-backend/internal/shopping/payment"
	"github.com/swiftcart/swiftcart-backend/pkg/cashfree"
	"github.com/swiftcart/swiftcart-backend/pkg/config"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
)

// gatewayClient is the slice of the Cashfree client this service uses.
type gatewayClient interface {
	CreateOrder(ctx context.Context, req cashfree.CreateOrderRequest) (*cashfree.CreateOrderResult, error)
}

// Service initiates payments, preferring the real gateway and falling
// back to the mock gateway redirect.
type Service struct {
	gateway   gatewayClient
	publicURL string
	logg      *logger.Logger
}

// NewService wires the gateway when credentials are configured. Extra
// client options are forwarded to the Cashfree client (tests point the
// base URL at a stub).
func NewService(cfg config.GatewayConfig, publicURL string, logg *logger.Logger, opts ...cashfree.Option) (*Service, error) {
	publicURL = strings.TrimRight(strings.TrimSpace(publicURL), "/")
	if publicURL == "" {
		return nil, fmt.Errorf("public url required for the mock gateway fallback")
	}

	svc := &Service{publicURL: publicURL, logg: logg}
	if cfg.Configured() {
		client, err := cashfree.NewClient(cfg.AppID, cfg.SecretKey, cfg.Env, opts...)
		if err != nil {
			return nil, fmt.Errorf("building gateway client: %w", err)
		}
		svc.gateway = client
	}
	return svc, nil
}

// Initiate opens a payment for the order. The answer is one of the
// three contract shapes: a gateway session, a redirect, or an inline
// success (which this service never produces itself; inline settlement
// is the caller's branch for modes like COD).
func (s *Service) Initiate(ctx context.Context, input contract.InitiateInput) (*contract.InitiateResult, error) {
	if strings.TrimSpace(input.OrderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if !input.Mode.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment mode")
	}
	if input.Mode.RequiresVPA() {
		if strings.TrimSpace(input.VPA) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "a UPI id is required for this mode")
		}
		if !contract.ValidVPA(input.VPA) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "the UPI id must look like name@bank")
		}
	}

	if s.gateway != nil {
		result, err := s.gateway.CreateOrder(ctx, cashfree.CreateOrderRequest{
			OrderID:       input.OrderID,
			Amount:        input.Amount,
			CustomerEmail: input.Email,
			CustomerPhone: input.Mobile,
			ReturnURL:     s.publicURL + "/#/checkout/success?orderId=" + url.QueryEscape(input.OrderID),
		})
		if err == nil {
			return &contract.InitiateResult{
				Success:          true,
				PaymentSessionID: result.PaymentSessionID,
			}, nil
		}
		if s.logg != nil {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"order_id": input.OrderID,
				"error":    err.Error(),
			}), "gateway unavailable, falling back to mock gateway")
		}
	}

	return &contract.InitiateResult{
		Success:     true,
		RedirectURL: s.mockGatewayURL(input.OrderID, input.Amount),
	}, nil
}

func (s *Service) mockGatewayURL(orderID string, amount decimal.Decimal) string {
	query := url.Values{}
	query.Set("orderId", orderID)
	query.Set("amount", amount.String())
	return s.publicURL + "/#/mock-payment-gateway?" + query.Encode()
}
