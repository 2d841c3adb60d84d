package domain

import (
	"context"
	"encoding/json"
	"time"
)

type Category string

const (
	CategoryQuote         Category = "quote"
	CategoryProductDesign Category = "product-design"
	CategoryShopOrder     Category = "shop-order"
	CategoryContact       Category = "contact"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryQuote, CategoryProductDesign, CategoryShopOrder, CategoryContact:
		return true
	}
	return false
}

// Body is the structured record produced by the formatter.
type Body map[string]any

// Decode maps the body back onto a typed record.
func (b Body) Decode(v any) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"-"`
}

type EmailPayload struct {
	Recipient      string       `json:"recipient"`
	Subject        string       `json:"subject"`
	Category       Category     `json:"category"`
	Body           Body         `json:"body"`
	Timestamp      time.Time    `json:"timestamp"`
	IdempotencyKey string       `json:"idempotencyKey,omitempty"`
	Attachments    []Attachment `json:"attachments,omitempty"`
}

type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Transport hands a payload to a delivery mechanism. It never retries.
type Transport interface {
	Send(ctx context.Context, p EmailPayload) (Outcome, error)
}

// QuoteRequest is the body accepted by the send-quote-email function.
type QuoteRequest struct {
	Name           string  `json:"name" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Phone          string  `json:"phone" validate:"required"`
	Company        string  `json:"company,omitempty"`
	Service        string  `json:"service" validate:"required"`
	ProjectDetails string  `json:"projectDetails"`
	Deadline       string  `json:"deadline,omitempty"`
	Urgent         bool    `json:"urgent"`
	EstimatedCost  float64 `json:"estimatedCost" validate:"gte=0"`
}

type ContactMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}
