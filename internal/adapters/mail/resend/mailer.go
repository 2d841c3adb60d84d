// Package resend delivers mail through the Resend HTTP API.
package resend

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/barakadvert/storefront/internal/email"
)

const DefaultBaseURL = "https://api.resend.com"

type Mailer struct {
	apiKey     string
	baseURL    string
	from       string
	httpClient *http.Client
}

func NewMailer(apiKey, baseURL, from string) *Mailer {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Mailer{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		from:       from,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type attachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type sendReq struct {
	From        string       `json:"from"`
	To          []string     `json:"to"`
	Subject     string       `json:"subject"`
	HTML        string       `json:"html"`
	ReplyTo     string       `json:"reply_to,omitempty"`
	Attachments []attachment `json:"attachments,omitempty"`
}

type sendResp struct {
	ID string `json:"id"`
}

type apiError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

func (m *Mailer) Send(ctx context.Context, msg email.Message) error {
	if m.apiKey == "" {
		return errors.New("resend api key missing (RESEND_API_KEY)")
	}
	if len(msg.To) == 0 {
		return errors.New("resend: no recipients")
	}
	req := sendReq{From: m.from, To: msg.To, Subject: msg.Subject, HTML: msg.HTML, ReplyTo: msg.ReplyTo}
	for _, a := range msg.Attachments {
		req.Attachments = append(req.Attachments, attachment{Filename: a.Name, Content: base64.StdEncoding.EncodeToString(a.Data)})
	}
	buf, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("resend payload: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(buf))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+m.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if msg.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", msg.IdempotencyKey)
	}
	res, err := m.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("resend request: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("resend status %d: %s", res.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("resend status %d: %s", res.StatusCode, string(body))
	}
	var out sendResp
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return fmt.Errorf("resend response: %w", err)
	}
	if out.ID == "" {
		return errors.New("resend response without id")
	}
	return nil
}
