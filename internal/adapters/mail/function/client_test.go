package function

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barakadvert/storefront/internal/domain"
)

type recordingTransport struct {
	sent []domain.EmailPayload
}

func (r *recordingTransport) Send(_ context.Context, p domain.EmailPayload) (domain.Outcome, error) {
	r.sent = append(r.sent, p)
	return domain.Outcome{Success: true}, nil
}

func quotePayload() domain.EmailPayload {
	return domain.EmailPayload{
		Category:       domain.CategoryQuote,
		IdempotencyKey: "k1",
		Body: domain.Body{
			"name": "Jane", "email": "jane@example.com", "phone": "0911",
			"service": "Neon Signs", "projectDetails": "Shop front", "urgent": true,
			"estimatedCost": 350.0, "type": "Quote Request", "timestamp": "2026-03-01T10:30:00Z",
		},
	}
}

func TestSend_PostsQuoteRequest(t *testing.T) {
	var got domain.QuoteRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "k1", r.Header.Get("Idempotency-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true,"message":"Quote request sent successfully"}`))
	}))
	defer srv.Close()

	out, err := NewClient(srv.URL, nil).Send(context.Background(), quotePayload())
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, "Quote request sent successfully", out.Message)
	assert.Equal(t, "Jane", got.Name)
	assert.True(t, got.Urgent)
	assert.Equal(t, 350.0, got.EstimatedCost)
}

func TestSend_FunctionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"RESEND_API_KEY is not set","success":false}`))
	}))
	defer srv.Close()

	out, err := NewClient(srv.URL, nil).Send(context.Background(), quotePayload())
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, "RESEND_API_KEY is not set", out.Message)
}

func TestSend_NonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, nil).Send(context.Background(), quotePayload())
	assert.ErrorContains(t, err, "502")
}

func TestSend_OtherCategoriesUseFallback(t *testing.T) {
	fb := &recordingTransport{}
	c := NewClient("http://127.0.0.1:1", fb)

	out, err := c.Send(context.Background(), domain.EmailPayload{Category: domain.CategoryShopOrder})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Len(t, fb.sent, 1)

	_, err = NewClient("http://127.0.0.1:1", nil).Send(context.Background(), domain.EmailPayload{Category: domain.CategoryContact})
	assert.Error(t, err)
}
