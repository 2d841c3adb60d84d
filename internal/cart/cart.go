// Package cart holds the in-memory shop cart.
package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/barakadvert/storefront/internal/domain"
	"github.com/barakadvert/storefront/internal/email"
	"github.com/barakadvert/storefront/internal/pricing"
)

const (
	orderSentMsg = "Order saved and sent! Check your email for confirmation."
	orderFailMsg = "Failed to save order. Please try again."
)

// SheetBuilder renders the order lines as a spreadsheet attachment.
type SheetBuilder interface {
	OrderSheet(orderNumber string, items []domain.CartItem, total float64) (domain.Attachment, error)
}

type Options struct {
	Recipient string
	Formatter *email.Formatter
	Sheets    SheetBuilder
}

// Cart keeps line items in insertion order, unique by product id.
type Cart struct {
	mu         sync.Mutex
	items      []domain.CartItem
	submitting bool
	// pending is the last failed order, resent unchanged until the items change.
	pending *pendingOrder

	transport domain.Transport
	opts      Options
}

type pendingOrder struct {
	payload domain.EmailPayload
	receipt OrderReceipt
}

type OrderReceipt struct {
	OrderNumber string  `json:"orderNumber"`
	Total       float64 `json:"total"`
	Message     string  `json:"message"`
}

func New(t domain.Transport, opts Options) *Cart {
	if opts.Formatter == nil {
		opts.Formatter = email.NewFormatter()
	}
	if opts.Recipient == "" {
		opts.Recipient = "orders@barakadvert.com"
	}
	return &Cart{transport: t, opts: opts}
}

// Add puts one unit of p in the cart, merging with an existing line.
func (c *Cart) Add(p domain.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return domain.ErrSubmitInFlight
	}
	c.pending = nil
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity++
			return nil
		}
	}
	c.items = append(c.items, domain.CartItem{ProductID: p.ID, Name: p.Name, UnitPrice: p.Price, Quantity: 1})
	return nil
}

func (c *Cart) Remove(productID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return domain.ErrSubmitInFlight
	}
	c.removeLocked(productID)
	c.pending = nil
	return nil
}

// SetQuantity overwrites the quantity of a line; q <= 0 removes it.
// Unknown products are ignored.
func (c *Cart) SetQuantity(productID string, q int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return domain.ErrSubmitInFlight
	}
	c.pending = nil
	if q <= 0 {
		c.removeLocked(productID)
		return nil
	}
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items[i].Quantity = q
			return nil
		}
	}
	return nil
}

func (c *Cart) removeLocked(productID string) {
	out := c.items[:0]
	for _, it := range c.items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	c.items = out
}

func (c *Cart) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.CartItem(nil), c.items...)
}

func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return pricing.Subtotal(c.items)
}

func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) Breakdown(r pricing.Rates) domain.PriceBreakdown {
	c.mu.Lock()
	defer c.mu.Unlock()
	return pricing.Cart(c.items, r)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.pending = nil
}

// SaveOrder sends the cart as a shop order. The cart is cleared only after the
// transport reports success. A retry of an unchanged cart resends the failed
// order as it was, under the same idempotency key.
func (c *Cart) SaveOrder(ctx context.Context) (OrderReceipt, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return OrderReceipt{}, domain.ErrSubmitInFlight
	}
	if len(c.items) == 0 {
		c.mu.Unlock()
		return OrderReceipt{}, domain.ErrEmptyCart
	}
	order := c.pending
	if order == nil {
		var err error
		if order, err = c.buildLocked(); err != nil {
			c.mu.Unlock()
			return OrderReceipt{}, err
		}
	}
	c.submitting = true
	c.mu.Unlock()

	out, err := c.transport.Send(ctx, order.payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		c.pending = order
		return OrderReceipt{}, &domain.TransportError{Category: domain.CategoryShopOrder, Message: orderFailMsg, Err: err}
	}
	if !out.Success {
		c.pending = order
		msg := out.Message
		if msg == "" {
			msg = orderFailMsg
		}
		return OrderReceipt{}, &domain.TransportError{Category: domain.CategoryShopOrder, Message: msg}
	}
	c.items = nil
	c.pending = nil
	return order.receipt, nil
}

func (c *Cart) buildLocked() (*pendingOrder, error) {
	items := append([]domain.CartItem(nil), c.items...)
	total := pricing.Subtotal(items)
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	f := c.opts.Formatter
	body, err := f.ShopOrder(items, total)
	if err != nil {
		return nil, err
	}
	orderNumber, _ := body["orderNumber"].(string)
	payload := f.NewPayload(c.opts.Recipient, fmt.Sprintf("New Shop Order - %d items", count), domain.CategoryShopOrder, body)
	if c.opts.Sheets != nil {
		att, err := c.opts.Sheets.OrderSheet(orderNumber, items, total)
		if err != nil {
			return nil, err
		}
		payload.Attachments = append(payload.Attachments, att)
	}
	payload.IdempotencyKey = uuid.NewString()
	return &pendingOrder{
		payload: payload,
		receipt: OrderReceipt{OrderNumber: orderNumber, Total: total, Message: orderSentMsg},
	}, nil
}
