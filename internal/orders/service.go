// Package order persists placed orders and walks them along the
// delivery status machine.
package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/checkout"
	"github.com/swiftcart/swiftcart-backend/pkg/enums"
	pkgerrors "github.com/swiftcart/swiftcart-backend/pkg/errors"
	"github.com/swiftcart/swiftcart-backend/pkg/logger"
)

// Service exposes order operations.
type Service interface {
	Create(ctx context.Context, input checkout.Order) (*checkout.Order, error)
	Get(ctx context.Context, id string) (*checkout.Order, error)
	ListByUser(ctx context.Context, userID string) ([]checkout.Order, error)
	List(ctx context.Context) ([]checkout.Order, error)
	UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) (*checkout.Order, error)
}

// statusDescriptions are the tracking lines each transition writes.
var statusDescriptions = map[enums.OrderStatus]string{
	enums.OrderStatusPacked:         "Order packed and ready for dispatch",
	enums.OrderStatusShipped:        "Shipped from the fulfilment centre",
	enums.OrderStatusOutForDelivery: "Out for delivery",
	enums.OrderStatusDelivered:      "Package delivered successfully",
	enums.OrderStatusCancelled:      "Order cancelled",
}

type service struct {
	repo *Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService constructs an order service instance.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

// Create persists a materialized order. Creation is not idempotent on
// id; callers must not blindly retry a failed create.
func (s *service) Create(ctx context.Context, input checkout.Order) (*checkout.Order, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if strings.TrimSpace(input.UserID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "an order needs at least one item")
	}
	if input.Total <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total must be positive")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment mode")
	}

	if input.Status == "" {
		input.Status = enums.OrderStatusOrdered
	}
	if input.Status != enums.OrderStatusOrdered {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "new orders start in the Ordered state")
	}
	if input.Date.IsZero() {
		input.Date = s.now()
	}
	if len(input.TrackingHistory) == 0 {
		input.TrackingHistory = []checkout.TrackingEvent{{
			Status:      enums.OrderStatusOrdered,
			Date:        input.Date,
			Location:    "Online",
			Description: "Order Placed Successfully",
		}}
	}

	row := fromCheckout(input)
	if err := s.repo.Create(ctx, &row); err != nil {
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, row.ID), "order created")
	}
	dto := row.toCheckout()
	return &dto, nil
}

func (s *service) Get(ctx context.Context, id string) (*checkout.Order, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := row.toCheckout()
	return &dto, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]checkout.Order, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return toCheckoutSlice(rows), nil
}

func (s *service) List(ctx context.Context) ([]checkout.Order, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return toCheckoutSlice(rows), nil
}

// UpdateStatus advances the order one step along the machine and
// prepends the matching tracking event, keeping the history newest
// first.
func (s *service) UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) (*checkout.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !row.Status.CanTransitionTo(status) {
		return nil, pkgerrors.New(
			pkgerrors.CodeStateConflict,
			fmt.Sprintf("order in state %s cannot move to %s", row.Status, status),
		)
	}

	event := checkout.TrackingEvent{
		Status:      status,
		Date:        s.now(),
		Description: statusDescriptions[status],
	}
	row.Status = status
	row.TrackingHistory = append([]checkout.TrackingEvent{event}, row.TrackingHistory...)

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"order_id": row.ID,
			"status":   status.String(),
		}), "order status updated")
	}
	dto := row.toCheckout()
	return &dto, nil
}

func toCheckoutSlice(rows []Order) []checkout.Order {
	out := make([]checkout.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toCheckout())
	}
	return out
}
