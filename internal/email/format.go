// Package email shapes form data into payloads for a Transport.
package email

import (
	"encoding/json"
	"time"

	"github.com/barakadvert/storefront/internal/domain"
)

var typeTags = map[domain.Category]string{
	domain.CategoryQuote:         "Quote Request",
	domain.CategoryProductDesign: "Product Design",
	domain.CategoryShopOrder:     "Shop Order",
	domain.CategoryContact:       "Contact Form",
}

// TypeTag returns the human label attached to a body of the given category.
func TypeTag(c domain.Category) string {
	return typeTags[c]
}

type Formatter struct {
	Now func() time.Time
}

func NewFormatter() *Formatter {
	return &Formatter{Now: time.Now}
}

func (f *Formatter) now() time.Time {
	if f == nil || f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// Format flattens raw into a body and attaches timestamp and type tag.
// raw may be a struct, a map or nil; fields of raw never override the tags.
func (f *Formatter) Format(c domain.Category, raw any) (domain.Body, error) {
	body := domain.Body{}
	if raw != nil {
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, &body); err != nil {
			return nil, err
		}
	}
	body["timestamp"] = f.now().UTC().Format(time.RFC3339)
	body["type"] = TypeTag(c)
	return body, nil
}

func (f *Formatter) Quote(req domain.QuoteRequest, est domain.Estimate) (domain.Body, error) {
	body, err := f.Format(domain.CategoryQuote, req)
	if err != nil {
		return nil, err
	}
	body["subtotal"] = est.Subtotal
	body["urgentFee"] = est.UrgentFee
	body["disclaimer"] = domain.EstimateDisclaimer
	return body, nil
}

// ProductDesign formats a design; image names the attached preview when there is one.
func (f *Formatter) ProductDesign(cfg domain.ProductDesignConfig, image string) (domain.Body, error) {
	body, err := f.Format(domain.CategoryProductDesign, map[string]any{
		"productType": cfg.ProductType,
		"color":       cfg.Color,
		"text":        cfg.Text,
		"design":      cfg.DesignStyle,
	})
	if err != nil {
		return nil, err
	}
	if image == "" {
		image = "Design preview image"
	}
	body["designImage"] = image
	return body, nil
}

func (f *Formatter) ShopOrder(items []domain.CartItem, total float64) (domain.Body, error) {
	body, err := f.Format(domain.CategoryShopOrder, nil)
	if err != nil {
		return nil, err
	}
	lines := make([]map[string]any, 0, len(items))
	for _, it := range items {
		lines = append(lines, map[string]any{
			"productId": it.ProductID,
			"name":      it.Name,
			"unitPrice": it.UnitPrice,
			"quantity":  it.Quantity,
			"lineTotal": it.LineTotal(),
		})
	}
	body["items"] = lines
	body["total"] = total
	body["orderNumber"] = domain.OrderNumber(f.now())
	return body, nil
}

func (f *Formatter) Contact(msg domain.ContactMessage) (domain.Body, error) {
	return f.Format(domain.CategoryContact, msg)
}

// NewPayload assembles a payload stamped with the formatter clock.
func (f *Formatter) NewPayload(recipient, subject string, c domain.Category, body domain.Body) domain.EmailPayload {
	return domain.EmailPayload{
		Recipient: recipient,
		Subject:   subject,
		Category:  c,
		Body:      body,
		Timestamp: f.now(),
	}
}
