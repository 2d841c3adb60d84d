package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barakadvert/storefront/internal/domain"
	"github.com/barakadvert/storefront/internal/email"
	"github.com/barakadvert/storefront/internal/notify"
	"github.com/barakadvert/storefront/internal/pricing"
)

type recordingTransport struct {
	sent    []domain.EmailPayload
	outcome domain.Outcome
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (r *recordingTransport) Send(_ context.Context, p domain.EmailPayload) (domain.Outcome, error) {
	if r.entered != nil {
		r.entered <- struct{}{}
	}
	if r.block != nil {
		<-r.block
	}
	r.sent = append(r.sent, p)
	return r.outcome, r.err
}

// keyedMailer accepts the first message of each idempotency key, replays it
// when the same content is sent again and rejects different content. The
// first failures messages are accepted but reported as timed out.
type keyedMailer struct {
	mu        sync.Mutex
	seen      map[string]string
	delivered []string
	failures  int
}

func (m *keyedMailer) Send(_ context.Context, msg email.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
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
	m.delivered = append(m.delivered, msg.Subject)
	if m.failures > 0 {
		m.failures--
		return context.DeadlineExceeded
	}
	return nil
}

func tickingFormatter() *email.Formatter {
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	return &email.Formatter{Now: func() time.Time {
		at = at.Add(time.Minute)
		return at
	}}
}

type stubSheets struct{ err error }

func (s stubSheets) OrderSheet(orderNumber string, items []domain.CartItem, total float64) (domain.Attachment, error) {
	if s.err != nil {
		return domain.Attachment{}, s.err
	}
	return domain.Attachment{Name: orderNumber + ".xlsx", Data: []byte("xlsx")}, nil
}

var (
	tshirt = domain.Product{ID: "tshirt-classic", Name: "Classic T-Shirt", Price: 25}
	mug    = domain.Product{ID: "mug-ceramic", Name: "Ceramic Mug", Price: 12}
)

func TestAdd_MergesByProductID(t *testing.T) {
	c := New(&recordingTransport{}, Options{})
	require.NoError(t, c.Add(tshirt))
	require.NoError(t, c.Add(mug))
	require.NoError(t, c.Add(tshirt))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "tshirt-classic", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "mug-ceramic", items[1].ProductID)
	assert.Equal(t, 3, c.Count())
}

func TestSetQuantity(t *testing.T) {
	c := New(&recordingTransport{}, Options{})
	require.NoError(t, c.Add(tshirt))
	require.NoError(t, c.Add(mug))

	require.NoError(t, c.SetQuantity("mug-ceramic", 4))
	assert.Equal(t, 4, c.Items()[1].Quantity)

	require.NoError(t, c.SetQuantity("mug-ceramic", 0))
	require.Len(t, c.Items(), 1)

	require.NoError(t, c.SetQuantity("tshirt-classic", -1))
	assert.Empty(t, c.Items())
	assert.Equal(t, 0.0, c.Total())
}

func TestSetQuantity_UnknownProductIgnored(t *testing.T) {
	c := New(&recordingTransport{}, Options{})
	require.NoError(t, c.SetQuantity("nope", 3))
	assert.Empty(t, c.Items())
}

func TestRemove(t *testing.T) {
	c := New(&recordingTransport{}, Options{})
	require.NoError(t, c.Add(tshirt))
	require.NoError(t, c.Add(mug))

	require.NoError(t, c.Remove("tshirt-classic"))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "mug-ceramic", items[0].ProductID)
}

func TestTotalAndBreakdown(t *testing.T) {
	c := New(&recordingTransport{}, Options{})
	require.NoError(t, c.Add(tshirt))
	require.NoError(t, c.Add(tshirt))
	require.NoError(t, c.Add(mug))

	assert.InDelta(t, 62.0, c.Total(), 0.001)
	assert.InDelta(t, 68.2, c.Breakdown(pricing.DefaultRates()).Total, 0.001)
}

func TestSaveOrder_EmptyCart(t *testing.T) {
	tr := &recordingTransport{outcome: domain.Outcome{Success: true}}
	c := New(tr, Options{})

	_, err := c.SaveOrder(context.Background())

	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, tr.sent)
}

func TestSaveOrder_SuccessClearsCart(t *testing.T) {
	tr := &recordingTransport{outcome: domain.Outcome{Success: true}}
	c := New(tr, Options{Recipient: "orders@example.com", Sheets: stubSheets{}})
	require.NoError(t, c.Add(tshirt))
	require.NoError(t, c.Add(tshirt))
	require.NoError(t, c.Add(mug))

	receipt, err := c.SaveOrder(context.Background())
	require.NoError(t, err)

	assert.InDelta(t, 62.0, receipt.Total, 0.001)
	assert.Contains(t, receipt.OrderNumber, "ORD-")
	assert.Empty(t, c.Items())

	require.Len(t, tr.sent, 1)
	p := tr.sent[0]
	assert.Equal(t, domain.CategoryShopOrder, p.Category)
	assert.Equal(t, "orders@example.com", p.Recipient)
	assert.Equal(t, "New Shop Order - 3 items", p.Subject)
	assert.Equal(t, 62.0, p.Body["total"])
	require.Len(t, p.Attachments, 1)
	assert.Equal(t, receipt.OrderNumber+".xlsx", p.Attachments[0].Name)
}

func TestSaveOrder_FailureKeepsCart(t *testing.T) {
	tr := &recordingTransport{err: errors.New("smtp down")}
	c := New(tr, Options{})
	require.NoError(t, c.Add(mug))

	_, err := c.SaveOrder(context.Background())

	var terr *domain.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, domain.CategoryShopOrder, terr.Category)
	assert.Len(t, c.Items(), 1)

	tr.err = nil
	tr.outcome = domain.Outcome{Success: true}
	_, err = c.SaveOrder(context.Background())
	require.NoError(t, err)
	require.Len(t, tr.sent, 2)
	assert.Equal(t, tr.sent[0].IdempotencyKey, tr.sent[1].IdempotencyKey)
	assert.Equal(t, tr.sent[0].Body["orderNumber"], tr.sent[1].Body["orderNumber"])
}

func TestSaveOrder_RetryIsAcceptedByIdempotentProvider(t *testing.T) {
	m := &keyedMailer{failures: 1}
	c := New(notify.NewService(m, email.DefaultBusiness(), ""), Options{Formatter: tickingFormatter(), Sheets: stubSheets{}})
	require.NoError(t, c.Add(tshirt))

	_, err := c.SaveOrder(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)

	first, err := c.SaveOrder(context.Background())
	require.NoError(t, err)
	assert.Empty(t, c.Items())
	assert.Equal(t, []string{"New Shop Order - 1 items"}, m.delivered)

	require.NoError(t, c.Add(mug))
	second, err := c.SaveOrder(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.OrderNumber, second.OrderNumber)
	assert.Len(t, m.delivered, 2)
}

func TestSaveOrder_EditAfterFailureRotatesKey(t *testing.T) {
	m := &keyedMailer{failures: 1}
	c := New(notify.NewService(m, email.DefaultBusiness(), ""), Options{Formatter: tickingFormatter()})
	require.NoError(t, c.Add(tshirt))

	_, err := c.SaveOrder(context.Background())
	require.Error(t, err)

	require.NoError(t, c.Add(mug))
	receipt, err := c.SaveOrder(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 37.0, receipt.Total, 0.001)
	assert.Equal(t, []string{"New Shop Order - 1 items", "New Shop Order - 2 items"}, m.delivered)
}

func TestSaveOrder_MutatorsRotateKey(t *testing.T) {
	edits := map[string]func(c *Cart) error{
		"add":      func(c *Cart) error { return c.Add(mug) },
		"remove":   func(c *Cart) error { return c.Remove("mug-ceramic") },
		"quantity": func(c *Cart) error { return c.SetQuantity("tshirt-classic", 3) },
	}
	for name, edit := range edits {
		t.Run(name, func(t *testing.T) {
			tr := &recordingTransport{err: errors.New("smtp down")}
			c := New(tr, Options{})
			require.NoError(t, c.Add(tshirt))
			require.NoError(t, c.Add(mug))

			_, err := c.SaveOrder(context.Background())
			require.Error(t, err)
			require.NoError(t, edit(c))
			_, err = c.SaveOrder(context.Background())
			require.Error(t, err)

			require.Len(t, tr.sent, 2)
			assert.NotEqual(t, tr.sent[0].IdempotencyKey, tr.sent[1].IdempotencyKey)
		})
	}
}

func TestSaveOrder_WhileInFlightIsRejected(t *testing.T) {
	tr := &recordingTransport{
		outcome: domain.Outcome{Success: true},
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	c := New(tr, Options{})
	require.NoError(t, c.Add(tshirt))

	done := make(chan error, 1)
	go func() {
		_, err := c.SaveOrder(context.Background())
		done <- err
	}()
	<-tr.entered

	_, err := c.SaveOrder(context.Background())
	assert.ErrorIs(t, err, domain.ErrSubmitInFlight)
	assert.ErrorIs(t, c.Add(mug), domain.ErrSubmitInFlight)
	assert.ErrorIs(t, c.Remove("tshirt-classic"), domain.ErrSubmitInFlight)
	assert.ErrorIs(t, c.SetQuantity("tshirt-classic", 5), domain.ErrSubmitInFlight)

	close(tr.block)
	require.NoError(t, <-done)
	assert.Len(t, tr.sent, 1)
	assert.Empty(t, c.Items())
}

func TestSaveOrder_SheetErrorDoesNotSend(t *testing.T) {
	tr := &recordingTransport{outcome: domain.Outcome{Success: true}}
	c := New(tr, Options{Sheets: stubSheets{err: errors.New("boom")}})
	require.NoError(t, c.Add(mug))

	_, err := c.SaveOrder(context.Background())

	require.Error(t, err)
	assert.Empty(t, tr.sent)
	assert.Len(t, c.Items(), 1)
}
