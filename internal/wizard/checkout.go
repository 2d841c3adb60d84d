package wizard

import (
	"strings"
	"sync"
	"time"

	"github.com/barakadvert/storefront/internal/domain"
	"github.com/barakadvert/storefront/internal/pricing"
)

const CheckoutSteps = 3

type ShippingInfo struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
}

type BillingAddress struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode" validate:"required"`
}

type PaymentInfo struct {
	CardName   string `json:"cardName" validate:"required"`
	CardNumber string `json:"cardNumber" validate:"required"`
	CardExpiry string `json:"cardExpiry" validate:"required"`
	CardCVC    string `json:"cardCVC" validate:"required"`
}

type CheckoutForm struct {
	ShippingInfo
	BillingAddress
	PaymentInfo
}

// masked hides card data before the form leaves the wizard.
func (f CheckoutForm) masked() CheckoutForm {
	n := strings.ReplaceAll(f.CardNumber, " ", "")
	if len(n) > 4 {
		f.CardNumber = strings.Repeat("*", len(n)-4) + n[len(n)-4:]
	}
	if f.CardCVC != "" {
		f.CardCVC = "***"
	}
	return f
}

type CheckoutState struct {
	Step         int                   `json:"step"`
	Steps        int                   `json:"steps"`
	Form         CheckoutForm          `json:"form"`
	Items        []domain.CartItem     `json:"items"`
	Totals       domain.PriceBreakdown `json:"totals"`
	Confirmation *domain.Confirmation  `json:"confirmation,omitempty"`
}

// Checkout is the three step checkout over a cart snapshot: shipping, billing,
// payment. Placing the order is terminal and takes no payment.
type Checkout struct {
	mu        sync.Mutex
	steps     Stepper
	form      CheckoutForm
	items     []domain.CartItem
	rates     pricing.Rates
	confirmed *domain.Confirmation
	now       func() time.Time
}

func NewCheckout(items []domain.CartItem, rates pricing.Rates) *Checkout {
	snapshot := make([]domain.CartItem, len(items))
	copy(snapshot, items)
	return &Checkout{steps: NewStepper(CheckoutSteps), items: snapshot, rates: rates, now: time.Now}
}

func (c *Checkout) Totals() domain.PriceBreakdown {
	c.mu.Lock()
	defer c.mu.Unlock()
	return pricing.Cart(c.items, c.rates)
}

func (c *Checkout) Snapshot() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]domain.CartItem, len(c.items))
	copy(items, c.items)
	return CheckoutState{
		Step:         c.steps.Current(),
		Steps:        c.steps.Last(),
		Form:         c.form.masked(),
		Items:        items,
		Totals:       pricing.Cart(c.items, c.rates),
		Confirmation: c.confirmed,
	}
}

func (c *Checkout) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.steps.Current()
}

func (c *Checkout) Placed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmed != nil
}

func (c *Checkout) UpdateField(name, value string) error {
	return c.UpdateFields([]Field{{Name: name, Value: value}})
}

// UpdateFields applies all updates or none of them.
func (c *Checkout) UpdateFields(updates []Field) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.confirmed != nil {
		return domain.ErrOrderPlaced
	}
	next := c.form
	for _, u := range updates {
		if err := setCheckoutField(&next, u.Name, u.Value); err != nil {
			return err
		}
	}
	c.form = next
	return nil
}

func setCheckoutField(f *CheckoutForm, name, value string) error {
	switch name {
	case "firstName":
		f.FirstName = value
	case "lastName":
		f.LastName = value
	case "email":
		f.Email = strings.TrimSpace(value)
	case "phone":
		f.Phone = value
	case "address":
		f.Address = value
	case "city":
		f.City = value
	case "state":
		f.State = value
	case "zipCode":
		f.ZipCode = value
	case "cardName":
		f.CardName = value
	case "cardNumber":
		f.CardNumber = value
	case "cardExpiry":
		f.CardExpiry = value
	case "cardCVC":
		f.CardCVC = value
	default:
		return domain.ErrUnknownField
	}
	return nil
}

func (c *Checkout) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.confirmed != nil {
		return domain.ErrOrderPlaced
	}
	if c.steps.IsFinal() {
		return nil
	}
	if err := c.checkLocked(c.steps.Current()); err != nil {
		return err
	}
	c.steps.Next()
	return nil
}

func (c *Checkout) Retreat() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.confirmed != nil {
		return domain.ErrOrderPlaced
	}
	c.steps.Prev()
	return nil
}

// PlaceOrder confirms the order from the payment step. There is no rollback.
func (c *Checkout) PlaceOrder() (domain.Confirmation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.confirmed != nil {
		return domain.Confirmation{}, domain.ErrOrderPlaced
	}
	if !c.steps.IsFinal() {
		return domain.Confirmation{}, domain.ErrNotFinalStep
	}
	for step := 1; step <= CheckoutSteps; step++ {
		if err := c.checkLocked(step); err != nil {
			return domain.Confirmation{}, err
		}
	}
	if len(c.items) == 0 {
		return domain.Confirmation{}, domain.ErrEmptyCart
	}
	now := c.now()
	items := make([]domain.CartItem, len(c.items))
	copy(items, c.items)
	c.confirmed = &domain.Confirmation{
		OrderNumber: domain.OrderNumber(now),
		Email:       c.form.Email,
		Items:       items,
		Totals:      pricing.Cart(c.items, c.rates),
		PlacedAt:    now,
	}
	// card data is not kept once the order is confirmed
	c.form.PaymentInfo = PaymentInfo{}
	return *c.confirmed, nil
}

func (c *Checkout) checkLocked(step int) error {
	switch step {
	case 1:
		return checkStep(1, c.form.ShippingInfo, "Please fill in your shipping information")
	case 2:
		return checkStep(2, c.form.BillingAddress, "Please fill in your billing address")
	case 3:
		return checkStep(3, c.form.PaymentInfo, "Please fill in your payment information")
	}
	return nil
}
