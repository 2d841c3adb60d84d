package pricing

import (
	"strings"

	"github.com/barakadvert/storefront/internal/domain"
)

// KeywordRule adds Amount once when the service name contains any of Keywords.
type KeywordRule struct {
	Keywords []string
	Amount   float64
}

func (r KeywordRule) matches(service string) bool {
	for _, k := range r.Keywords {
		if k != "" && strings.Contains(service, k) {
			return true
		}
	}
	return false
}

// KeywordEstimator is the placeholder quote estimate: a base amount, additive
// keyword bonuses and a flat urgent surcharge.
type KeywordEstimator struct {
	Base      float64
	Rules     []KeywordRule
	UrgentFee float64
}

func DefaultKeywordRules() []KeywordRule {
	return []KeywordRule{
		{Keywords: []string{"Neon"}, Amount: 200},
		{Keywords: []string{"T-Shirt", "Mug"}, Amount: 50},
		{Keywords: []string{"Passport"}, Amount: 150},
	}
}

func NewKeywordEstimator(base, urgentFee float64) KeywordEstimator {
	return KeywordEstimator{Base: base, Rules: DefaultKeywordRules(), UrgentFee: urgentFee}
}

func (e KeywordEstimator) Estimate(in domain.EstimateInput) domain.Estimate {
	subtotal := e.Base
	for _, r := range e.Rules {
		if r.matches(in.Service) {
			subtotal += r.Amount
		}
	}
	fee := 0.0
	if in.Urgent {
		fee = e.UrgentFee
	}
	return domain.Estimate{Subtotal: Round(subtotal), UrgentFee: Round(fee), Total: Round(subtotal + fee)}
}

type Service struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BasePrice float64 `json:"basePrice"`
}

// DefaultServices is the catalogue used by CatalogEstimator.
func DefaultServices() []Service {
	return []Service{
		{ID: "advertising", Name: "Advertising", BasePrice: 500},
		{ID: "neon", Name: "Neon Signs", BasePrice: 800},
		{ID: "lightbox", Name: "Lightbox", BasePrice: 600},
		{ID: "tshirt", Name: "T-Shirt Printing", BasePrice: 50},
		{ID: "mug", Name: "Mug Printing", BasePrice: 15},
		{ID: "gifts", Name: "Gift Shop", BasePrice: 100},
	}
}

// CatalogEstimator prices by service base price times quantity, with a
// percentage urgent fee. Unknown services price at zero.
type CatalogEstimator struct {
	Services  []Service
	UrgentPct float64
}

func (e CatalogEstimator) Estimate(in domain.EstimateInput) domain.Estimate {
	base := 0.0
	for _, s := range e.Services {
		if strings.EqualFold(s.ID, in.Service) || strings.EqualFold(s.Name, in.Service) {
			base = s.BasePrice
			break
		}
	}
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	subtotal := base * float64(qty)
	fee := 0.0
	if in.Urgent {
		fee = subtotal * e.UrgentPct
	}
	return domain.Estimate{Subtotal: Round(subtotal), UrgentFee: Round(fee), Total: Round(subtotal + fee)}
}
