package order

import (
	"time"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"
	"github.com/swiftcart/swiftcart-backend/internal/shopping/checkout"
	"github.com/swiftcart/swiftcart-backend/pkg/enums"
	"github.com/swiftcart/swiftcart-backend/pkg/types"
)

// Order is the persisted order row. Items, address and tracking are
// JSON columns: they are frozen value copies, never joined against.
type Order struct {
	ID                string                   `gorm:"column:id;primaryKey"`
	UserID            string                   `gorm:"column:user_id;index;not null"`
	Items             []catalog.CartLine       `gorm:"column:items;type:jsonb;serializer:json"`
	TotalRupees       int64                    `gorm:"column:total_rupees;not null"`
	Status            enums.OrderStatus        `gorm:"column:status;not null"`
	Date              time.Time                `gorm:"column:date;not null"`
	Address           types.Address            `gorm:"column:address;type:jsonb;serializer:json"`
	PaymentMethod     enums.PaymentMode        `gorm:"column:payment_method;not null"`
	EstimatedDelivery time.Time                `gorm:"column:estimated_delivery"`
	TrackingHistory   []checkout.TrackingEvent `gorm:"column:tracking_history;type:jsonb;serializer:json"`
	CreatedAt         time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name.
func (Order) TableName() string {
	return "orders"
}

func (o Order) toCheckout() checkout.Order {
	return checkout.Order{
		ID:                o.ID,
		UserID:            o.UserID,
		Items:             o.Items,
		Total:             o.TotalRupees,
		Status:            o.Status,
		Date:              o.Date,
		Address:           o.Address,
		PaymentMethod:     o.PaymentMethod,
		EstimatedDelivery: o.EstimatedDelivery,
		TrackingHistory:   o.TrackingHistory,
	}
}

func fromCheckout(o checkout.Order) Order {
	return Order{
		ID:                o.ID,
		UserID:            o.UserID,
		Items:             o.Items,
		TotalRupees:       o.Total,
		Status:            o.Status,
		Date:              o.Date,
		Address:           o.Address,
		PaymentMethod:     o.PaymentMethod,
		EstimatedDelivery: o.EstimatedDelivery,
		TrackingHistory:   o.TrackingHistory,
	}
}
