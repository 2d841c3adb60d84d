package domain

import (
	"strconv"
	"time"
)

type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

func (it CartItem) LineTotal() float64 {
	return it.UnitPrice * float64(it.Quantity)
}

// PriceBreakdown is always derived from the current items, never stored.
type PriceBreakdown struct {
	Subtotal     float64 `json:"subtotal"`
	ShippingFee  float64 `json:"shippingFee"`
	FreeShipping bool    `json:"freeShipping"`
	TaxAmount    float64 `json:"taxAmount"`
	UrgentFee    float64 `json:"urgentFee,omitempty"`
	Total        float64 `json:"total"`
}

// Confirmation is the terminal state of a checkout. No payment is taken.
type Confirmation struct {
	OrderNumber string         `json:"orderNumber"`
	Email       string         `json:"email"`
	Items       []CartItem     `json:"items"`
	Totals      PriceBreakdown `json:"totals"`
	PlacedAt    time.Time      `json:"placedAt"`
}

// OrderNumber formats the mock order reference used by shop orders and checkouts.
func OrderNumber(t time.Time) string {
	return "ORD-" + strconv.FormatInt(t.UnixMilli(), 10)
}
