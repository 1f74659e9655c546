package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/swiftcart/swiftcart-backend/internal/shopping/catalog"
)

const (
	// Orders above this subtotal ship free.
	freeShippingThreshold int64 = 500
	shippingFee           int64 = 50
)

// Quote is the price breakdown for a set of lines, computed at a point
// in time. Amounts are whole rupees.
type Quote struct {
	Subtotal  int64 `json:"subtotal"`
	Discount  int64 `json:"discount"`
	TotalMRP  int64 `json:"totalMrp"`
	Shipping  int64 `json:"shipping"`
	Total     int64 `json:"total"`
	ItemCount int   `json:"itemCount"`
}

// NewQuote prices the given lines: subtotal from selling prices,
// discount from the gap to original prices, free shipping above the
// threshold.
func NewQuote(lines []catalog.CartLine) Quote {
	var q Quote
	for _, line := range lines {
		qty := int64(line.Quantity)
		q.Subtotal += line.Price * qty
		q.Discount += (line.OriginalPrice - line.Price) * qty
		q.ItemCount += line.Quantity
	}
	q.TotalMRP = q.Subtotal + q.Discount
	if q.Subtotal > 0 && q.Subtotal <= freeShippingThreshold {
		q.Shipping = shippingFee
	}
	q.Total = q.Subtotal + q.Shipping
	return q
}

// TotalAmount returns the payable total as a decimal for gateways.
func (q Quote) TotalAmount() decimal.Decimal {
	return decimal.NewFromInt(q.Total)
}

// DiscountPercent returns the headline savings percentage, rounded to
// one decimal place.
func (q Quote) DiscountPercent() decimal.Decimal {
	if q.TotalMRP == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(q.Discount).
		Div(decimal.NewFromInt(q.TotalMRP)).
		Mul(decimal.NewFromInt(100)).
		Round(1)
}
