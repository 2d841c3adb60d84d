// Package pricing holds the price arithmetic of the shop and the quote estimate.
// Every function here is pure; rates are injected so real pricing can replace the
// placeholder values without touching wizard or cart control flow.
package pricing

import (
	"math"

	"github.com/barakadvert/storefront/internal/domain"
)

type Rates struct {
	TaxRate          float64
	ShippingFee      float64
	FreeShippingOver float64
}

func DefaultRates() Rates {
	return Rates{TaxRate: 0.10, ShippingFee: 10, FreeShippingOver: 50}
}

// Round rounds to cents.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

func Subtotal(items []domain.CartItem) float64 {
	sum := 0.0
	for _, it := range items {
		sum += it.LineTotal()
	}
	return Round(sum)
}

// Cart computes subtotal, shipping, tax and total. Shipping is waived when the
// subtotal is above the threshold; an empty cart ships for free.
func Cart(items []domain.CartItem, r Rates) domain.PriceBreakdown {
	subtotal := Subtotal(items)
	shipping := r.ShippingFee
	// An empty cart has nothing to ship, so it is not charged the flat fee
	// the threshold rule alone would apply.
	if subtotal > r.FreeShippingOver || len(items) == 0 {
		shipping = 0
	}
	tax := Round(subtotal * r.TaxRate)
	return domain.PriceBreakdown{
		Subtotal:     subtotal,
		ShippingFee:  shipping,
		FreeShipping: shipping == 0,
		TaxAmount:    tax,
		Total:        Round(subtotal + shipping + tax),
	}
}
