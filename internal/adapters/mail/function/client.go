// Package function posts quote requests to the remote send-quote-email function.
package function

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/barakadvert/storefront/internal/domain"
)

type Client struct {
	url        string
	httpClient *http.Client
	// Fallback receives payloads of categories the function does not handle.
	Fallback domain.Transport
}

func NewClient(url string, fallback domain.Transport) *Client {
	return &Client{url: url, httpClient: &http.Client{Timeout: 10 * time.Second}, Fallback: fallback}
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) Send(ctx context.Context, p domain.EmailPayload) (domain.Outcome, error) {
	if p.Category != domain.CategoryQuote {
		if c.Fallback == nil {
			return domain.Outcome{}, fmt.Errorf("function transport: unsupported category %q", p.Category)
		}
		return c.Fallback.Send(ctx, p)
	}
	var q domain.QuoteRequest
	if err := p.Body.Decode(&q); err != nil {
		return domain.Outcome{}, fmt.Errorf("decode quote body: %w", err)
	}
	buf, err := json.Marshal(q)
	if err != nil {
		return domain.Outcome{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(buf))
	if err != nil {
		return domain.Outcome{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", p.IdempotencyKey)
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("send-quote-email request: %w", err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return domain.Outcome{}, err
	}
	var out response
	if err := json.Unmarshal(body, &out); err != nil {
		return domain.Outcome{}, fmt.Errorf("send-quote-email status %d: %s", res.StatusCode, string(body))
	}
	if res.StatusCode >= 300 || !out.Success {
		msg := out.Error
		if msg == "" {
			msg = out.Message
		}
		return domain.Outcome{Success: false, Message: msg}, nil
	}
	return domain.Outcome{Success: true, Message: out.Message}, nil
}
