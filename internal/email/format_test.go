package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barakadvert/storefront/internal/domain"
)

var fixed = time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

func newTestFormatter() *Formatter {
	return &Formatter{Now: func() time.Time { return fixed }}
}

func TestFormat_AttachesTimestampAndType(t *testing.T) {
	f := newTestFormatter()

	body, err := f.Format(domain.CategoryContact, map[string]any{"name": "Abebe", "type": "spoofed"})
	require.NoError(t, err)

	assert.Equal(t, "Abebe", body["name"])
	assert.Equal(t, "Contact Form", body["type"])
	assert.Equal(t, "2026-03-01T10:30:00Z", body["timestamp"])
}

func TestQuote_CarriesEstimateAndRequestFields(t *testing.T) {
	f := newTestFormatter()
	req := domain.QuoteRequest{Name: "Sara", Email: "sara@example.com", Phone: "0911", Service: "Neon Light", Urgent: true, EstimatedCost: 350}

	body, err := f.Quote(req, domain.Estimate{Subtotal: 300, UrgentFee: 50, Total: 350})
	require.NoError(t, err)

	var back domain.QuoteRequest
	require.NoError(t, body.Decode(&back))
	assert.Equal(t, req, back)
	assert.Equal(t, 50.0, body["urgentFee"])
	assert.Equal(t, "Quote Request", body["type"])
	assert.NotEmpty(t, body["disclaimer"])
}

func TestShopOrder(t *testing.T) {
	f := newTestFormatter()
	items := []domain.CartItem{{ProductID: "mug-ceramic", Name: "Ceramic Mug", UnitPrice: 12, Quantity: 2}}

	body, err := f.ShopOrder(items, 24)
	require.NoError(t, err)

	assert.Equal(t, "ORD-"+"1772361000000", body["orderNumber"])
	assert.Equal(t, 24.0, body["total"])
	lines := body["items"].([]map[string]any)
	require.Len(t, lines, 1)
	assert.Equal(t, 24.0, lines[0]["lineTotal"])
}

func TestProductDesign_DefaultImageLabel(t *testing.T) {
	f := newTestFormatter()
	body, err := f.ProductDesign(domain.ProductDesignConfig{ProductType: domain.ProductMug, Color: "#000000", Text: "Hi", DesignStyle: domain.DesignText}, "")
	require.NoError(t, err)

	assert.Equal(t, "mug", body["productType"])
	assert.Equal(t, "Product Design", body["type"])
	assert.Equal(t, "Design preview image", body["designImage"])
}

func TestQuoteMessages(t *testing.T) {
	q := domain.QuoteRequest{Name: "Sara", Email: "sara@example.com", Phone: "0911", Company: "Acme", Service: "Neon Light", Urgent: true, EstimatedCost: 350}

	n, c, err := QuoteMessages(q, DefaultBusiness(), "owner@barakadvert.com")
	require.NoError(t, err)

	assert.Equal(t, "New Quote Request - Neon Light (URGENT)", n.Subject)
	assert.Equal(t, []string{"owner@barakadvert.com"}, n.To)
	assert.Equal(t, "sara@example.com", n.ReplyTo)
	assert.Contains(t, n.HTML, "Acme")
	assert.Contains(t, n.HTML, "$350.00")

	assert.Equal(t, "Quote Request Received - Barak Advert", c.Subject)
	assert.Equal(t, []string{"sara@example.com"}, c.To)
	assert.Contains(t, c.HTML, "Urgent Request Noted")
	assert.Contains(t, c.HTML, "info@barakadvert.com")
}

func TestQuoteNotificationSubject_NotUrgent(t *testing.T) {
	assert.Equal(t, "New Quote Request - Mug Printing", QuoteNotificationSubject(domain.QuoteRequest{Service: "Mug Printing"}))
}

func TestGenericNotification_EscapesValues(t *testing.T) {
	p := domain.EmailPayload{Subject: "New Shop Order - 1 items", Category: domain.CategoryShopOrder, Body: domain.Body{"note": "<script>"}}

	m, err := GenericNotification(p, "orders@barakadvert.com")
	require.NoError(t, err)

	assert.Equal(t, "New Shop Order - 1 items", m.Subject)
	assert.NotContains(t, m.HTML, "<script>")
	assert.Contains(t, m.HTML, "&lt;script&gt;")
}
