package domain

// EstimateDisclaimer is shown wherever a quote estimate is reported.
const EstimateDisclaimer = "This is an estimated cost only. Final pricing is confirmed by our team after reviewing your request."

type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyUrgent Urgency = "urgent"
)

type EstimateInput struct {
	Service  string
	Quantity int
	Urgent   bool
}

type Estimate struct {
	Subtotal  float64 `json:"subtotal"`
	UrgentFee float64 `json:"urgentFee"`
	Total     float64 `json:"total"`
}

// Estimator prices a quote request. Implementations must be pure.
type Estimator interface {
	Estimate(in EstimateInput) Estimate
}
