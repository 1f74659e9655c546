package checkout

import (
	"time"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"
	"github.com/swiftcart/swiftcart-backend/pkg/enums"
	"github.com/swiftcart/swiftcart-backend/pkg/types"
)

// TrackingEvent is one entry in an order's status-change log.
type TrackingEvent struct {
	Status      enums.OrderStatus `json:"status"`
	Date        time.Time         `json:"date"`
	Location    string            `json:"location"`
	Description string            `json:"description"`
}

// Order is the record the materializer produces from a completed
// checkout. Items and totals are frozen at purchase time: later
// catalog price changes never alter a placed order.
//
// TrackingHistory is ordered newest-first; index 0 is the latest
// status.
type Order struct {
	ID                string             `json:"id"`
	UserID            string             `json:"userId"`
	Items             []catalog.CartLine `json:"items"`
	Total             int64              `json:"total"`
	Status            enums.OrderStatus  `json:"status"`
	Date              time.Time          `json:"date"`
	Address           types.Address      `json:"address"`
	PaymentMethod     enums.PaymentMode  `json:"paymentMethod"`
	EstimatedDelivery time.Time          `json:"estimatedDelivery"`
	TrackingHistory   []TrackingEvent    `json:"trackingHistory"`
}
