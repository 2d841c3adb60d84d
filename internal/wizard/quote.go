package wizard

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/barakadvert/storefront/internal/domain"
	"github.com/barakadvert/storefront/internal/email"
)

const (
	QuoteSteps = 4

	quoteSubject = "Quote Request Confirmation - Barak Advert"
	quoteSentMsg = "Quote request submitted! Check your email for confirmation."
	quoteFailMsg = "Failed to submit quote request. Please try again."
)

type QuoteContact struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Company string `json:"company"`
}

type QuoteService struct {
	Service  string `json:"service" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

type QuoteDetails struct {
	Details  string         `json:"details"`
	Deadline string         `json:"deadline"`
	Urgency  domain.Urgency `json:"urgency" validate:"oneof=normal urgent"`
}

// QuoteForm is the flat set of fields collected by the quote wizard.
type QuoteForm struct {
	QuoteContact
	QuoteService
	QuoteDetails
}

func emptyQuoteForm() QuoteForm {
	return QuoteForm{
		QuoteService: QuoteService{Quantity: 1},
		QuoteDetails: QuoteDetails{Urgency: domain.UrgencyNormal},
	}
}

type QuoteState struct {
	Step       int             `json:"step"`
	Steps      int             `json:"steps"`
	Form       QuoteForm       `json:"form"`
	Estimate   domain.Estimate `json:"estimate"`
	Disclaimer string          `json:"disclaimer"`
	Submitting bool            `json:"submitting"`
}

type quoteAttempt struct {
	payload domain.EmailPayload
	est     domain.Estimate
}

type QuoteReceipt struct {
	Estimate   domain.Estimate `json:"estimate"`
	Message    string          `json:"message"`
	Disclaimer string          `json:"disclaimer"`
}

// Quote is the four step quote request wizard: contact, service, project
// details, review. It is safe for concurrent use.
type Quote struct {
	mu         sync.Mutex
	steps      Stepper
	form       QuoteForm
	submitting bool
	// pending is the last failed submission, resent unchanged until a field changes.
	pending *quoteAttempt

	estimator domain.Estimator
	transport domain.Transport
	formatter *email.Formatter
	newKey    func() string
}

func NewQuote(est domain.Estimator, t domain.Transport, f *email.Formatter) *Quote {
	if f == nil {
		f = email.NewFormatter()
	}
	return &Quote{
		steps:     NewStepper(QuoteSteps),
		form:      emptyQuoteForm(),
		estimator: est,
		transport: t,
		formatter: f,
		newKey:    uuid.NewString,
	}
}

func (q *Quote) Snapshot() QuoteState {
	q.mu.Lock()
	defer q.mu.Unlock()
	return QuoteState{
		Step:       q.steps.Current(),
		Steps:      q.steps.Last(),
		Form:       q.form,
		Estimate:   q.estimateLocked(),
		Disclaimer: domain.EstimateDisclaimer,
		Submitting: q.submitting,
	}
}

func (q *Quote) Step() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.steps.Current()
}

// UpdateField sets one named field. Only quantity is parsed; everything else is
// checked when advancing.
func (q *Quote) UpdateField(name, value string) error {
	return q.UpdateFields([]Field{{Name: name, Value: value}})
}

// UpdateFields applies all updates or none of them.
func (q *Quote) UpdateFields(updates []Field) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.submitting {
		return domain.ErrSubmitInFlight
	}
	next := q.form
	for _, u := range updates {
		if err := q.set(&next, u.Name, u.Value); err != nil {
			return err
		}
	}
	q.form = next
	q.pending = nil
	return nil
}

func (q *Quote) set(f *QuoteForm, name, value string) error {
	switch name {
	case "name":
		f.Name = value
	case "email":
		f.Email = strings.TrimSpace(value)
	case "phone":
		f.Phone = value
	case "company":
		f.Company = value
	case "service":
		f.Service = value
	case "quantity":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 1 {
			return &domain.ValidationError{Step: q.steps.Current(), Fields: []string{"quantity"}, Message: "Quantity must be a whole number of at least 1"}
		}
		f.Quantity = n
	case "details":
		f.Details = value
	case "deadline":
		f.Deadline = value
	case "urgency":
		f.Urgency = domain.Urgency(strings.ToLower(strings.TrimSpace(value)))
	default:
		return domain.ErrUnknownField
	}
	return nil
}

// Advance validates the current step and moves forward. At the last step it does nothing.
func (q *Quote) Advance() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.submitting {
		return domain.ErrSubmitInFlight
	}
	if q.steps.IsFinal() {
		return nil
	}
	if err := q.checkLocked(q.steps.Current()); err != nil {
		return err
	}
	q.steps.Next()
	return nil
}

func (q *Quote) Retreat() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.submitting {
		return domain.ErrSubmitInFlight
	}
	q.steps.Prev()
	return nil
}

func (q *Quote) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.resetLocked()
}

func (q *Quote) Estimate() domain.Estimate {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.estimateLocked()
}

// Submit sends the request from the review step. On success the wizard returns
// to its initial state; on failure nothing changes and, unless a field is
// edited first, the next attempt resends the same payload and idempotency key.
func (q *Quote) Submit(ctx context.Context) (QuoteReceipt, error) {
	q.mu.Lock()
	if q.submitting {
		q.mu.Unlock()
		return QuoteReceipt{}, domain.ErrSubmitInFlight
	}
	if !q.steps.IsFinal() {
		q.mu.Unlock()
		return QuoteReceipt{}, domain.ErrNotFinalStep
	}
	for step := 1; step < QuoteSteps; step++ {
		if err := q.checkLocked(step); err != nil {
			q.mu.Unlock()
			return QuoteReceipt{}, err
		}
	}
	attempt := q.pending
	if attempt == nil {
		var err error
		if attempt, err = q.attemptLocked(); err != nil {
			q.mu.Unlock()
			return QuoteReceipt{}, err
		}
	}
	q.submitting = true
	q.mu.Unlock()

	out, err := q.transport.Send(ctx, attempt.payload)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.submitting = false
	if err != nil {
		q.pending = attempt
		return QuoteReceipt{}, &domain.TransportError{Category: domain.CategoryQuote, Message: quoteFailMsg, Err: err}
	}
	if !out.Success {
		q.pending = attempt
		msg := out.Message
		if msg == "" {
			msg = quoteFailMsg
		}
		return QuoteReceipt{}, &domain.TransportError{Category: domain.CategoryQuote, Message: msg}
	}
	q.resetLocked()
	return QuoteReceipt{Estimate: attempt.est, Message: quoteSentMsg, Disclaimer: domain.EstimateDisclaimer}, nil
}

func (q *Quote) attemptLocked() (*quoteAttempt, error) {
	est := q.estimateLocked()
	req := q.requestLocked(est)
	body, err := q.formatter.Quote(req, est)
	if err != nil {
		return nil, err
	}
	body["quantity"] = q.form.Quantity
	payload := q.formatter.NewPayload(req.Email, quoteSubject, domain.CategoryQuote, body)
	payload.IdempotencyKey = q.newKey()
	return &quoteAttempt{payload: payload, est: est}, nil
}

func (q *Quote) checkLocked(step int) error {
	switch step {
	case 1:
		return checkStep(1, q.form.QuoteContact, "Please fill in all contact information")
	case 2:
		return checkStep(2, q.form.QuoteService, "Please select a service")
	case 3:
		return checkStep(3, q.form.QuoteDetails, "Please review your project details")
	}
	return nil
}

func (q *Quote) estimateLocked() domain.Estimate {
	return q.estimator.Estimate(domain.EstimateInput{
		Service:  q.form.Service,
		Quantity: q.form.Quantity,
		Urgent:   q.form.Urgency == domain.UrgencyUrgent,
	})
}

func (q *Quote) requestLocked(est domain.Estimate) domain.QuoteRequest {
	return domain.QuoteRequest{
		Name:           q.form.Name,
		Email:          q.form.Email,
		Phone:          q.form.Phone,
		Company:        q.form.Company,
		Service:        q.form.Service,
		ProjectDetails: q.form.Details,
		Deadline:       q.form.Deadline,
		Urgent:         q.form.Urgency == domain.UrgencyUrgent,
		EstimatedCost:  est.Total,
	}
}

func (q *Quote) resetLocked() {
	q.steps.Reset()
	q.form = emptyQuoteForm()
	q.pending = nil
}
