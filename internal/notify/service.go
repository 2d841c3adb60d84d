// Package notify turns payloads into business notifications and customer
// confirmations and hands them to a Mailer.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/barakadvert/storefront/internal/domain"
	"github.com/barakadvert/storefront/internal/email"
)

const quoteSentMsg = "Quote request sent successfully"

type Mailer interface {
	Send(ctx context.Context, m email.Message) error
}

type Service struct {
	mailer   Mailer
	business email.Business
	inbox    string
}

// NewService sends quote notifications to inbox; other categories are
// notified at the payload recipient.
func NewService(m Mailer, b email.Business, inbox string) *Service {
	if inbox == "" {
		inbox = b.Email
	}
	return &Service{mailer: m, business: b, inbox: inbox}
}

// Send delivers the notification and, when a customer address is known, the
// confirmation. A failure of either is reported as a single error.
func (s *Service) Send(ctx context.Context, p domain.EmailPayload) (domain.Outcome, error) {
	if p.Category == domain.CategoryQuote {
		var q domain.QuoteRequest
		if err := p.Body.Decode(&q); err != nil {
			return domain.Outcome{}, fmt.Errorf("decode quote body: %w", err)
		}
		if err := s.sendQuote(ctx, q, p.IdempotencyKey, p.Attachments); err != nil {
			return domain.Outcome{}, err
		}
		return domain.Outcome{Success: true, Message: quoteSentMsg}, nil
	}

	to := p.Recipient
	if to == "" {
		to = s.inbox
	}
	notification, err := email.GenericNotification(p, to)
	if err != nil {
		return domain.Outcome{}, err
	}
	customer, _ := p.Body["email"].(string)
	if customer != "" {
		notification.ReplyTo = customer
	}
	if err := s.deliver(ctx, notification, p.IdempotencyKey, "notification"); err != nil {
		return domain.Outcome{}, err
	}
	if customer != "" && !strings.EqualFold(customer, to) {
		confirmation, err := email.GenericConfirmation(p, s.business, customer)
		if err != nil {
			return domain.Outcome{}, err
		}
		if err := s.deliver(ctx, confirmation, p.IdempotencyKey, "confirmation"); err != nil {
			return domain.Outcome{}, err
		}
	}
	return domain.Outcome{Success: true, Message: email.TypeTag(p.Category) + " sent successfully"}, nil
}

// SendQuote is the send-quote-email function: notification to the business
// inbox, confirmation to the customer.
func (s *Service) SendQuote(ctx context.Context, q domain.QuoteRequest, key string) (domain.Outcome, error) {
	if err := s.sendQuote(ctx, q, key, nil); err != nil {
		return domain.Outcome{}, err
	}
	return domain.Outcome{Success: true, Message: quoteSentMsg}, nil
}

func (s *Service) sendQuote(ctx context.Context, q domain.QuoteRequest, key string, atts []domain.Attachment) error {
	notification, confirmation, err := email.QuoteMessages(q, s.business, s.inbox)
	if err != nil {
		return err
	}
	notification.Attachments = atts
	if err := s.deliver(ctx, notification, key, "notification"); err != nil {
		return err
	}
	return s.deliver(ctx, confirmation, key, "confirmation")
}

func (s *Service) deliver(ctx context.Context, m email.Message, key, role string) error {
	if key != "" {
		m.IdempotencyKey = key + ":" + role
	}
	if err := s.mailer.Send(ctx, m); err != nil {
		log.Error().Err(err).Str("role", role).Str("subject", m.Subject).Msg("mail delivery failed")
		return fmt.Errorf("send %s: %w", role, err)
	}
	log.Info().Str("role", role).Str("subject", m.Subject).Msg("mail delivered")
	return nil
}
