package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/barakadvert/storefront/internal/domain"
	"github.com/barakadvert/storefront/internal/email"
)

type fakeTransport struct {
	mu      sync.Mutex
	sent    []domain.EmailPayload
	outcome domain.Outcome
	err     error
	block   chan struct{}
	entered chan struct{}
}

func okTransport() *fakeTransport {
	return &fakeTransport{outcome: domain.Outcome{Success: true, Message: "sent"}}
}

func (f *fakeTransport) Send(ctx context.Context, p domain.EmailPayload) (domain.Outcome, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, p)
	return f.outcome, f.err
}

func (f *fakeTransport) payloads() []domain.EmailPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.EmailPayload(nil), f.sent...)
}

var errProvider = errors.New("provider unavailable")

// keyedMailer behaves like a mail API honouring idempotency keys: a repeated
// key replays the first request when the content matches and is rejected
// otherwise. Messages whose key ends in failRole are accepted and then
// reported as failed, failures times.
type keyedMailer struct {
	mu        sync.Mutex
	seen      map[string]string
	delivered []string
	failRole  string
	failures  int
}

func (m *keyedMailer) Send(_ context.Context, msg email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg.IdempotencyKey != "" {
		if prev, ok := m.seen[msg.IdempotencyKey]; ok {
			if prev != msg.HTML {
				return fmt.Errorf("409 invalid_idempotent_request for key %s", msg.IdempotencyKey)
			}
			return nil
		}
		if m.seen == nil {
			m.seen = map[string]string{}
		}
		m.seen[msg.IdempotencyKey] = msg.HTML
	}
	m.delivered = append(m.delivered, msg.Subject)
	if m.failures > 0 && strings.HasSuffix(msg.IdempotencyKey, m.failRole) {
		m.failures--
		return context.DeadlineExceeded
	}
	return nil
}

func (m *keyedMailer) subjects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.delivered...)
}
