package export

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barakadvert/storefront/internal/adapters/storage/localfs"
	"github.com/barakadvert/storefront/internal/domain"
)

type failingStorage struct{}

func (failingStorage) Save(context.Context, string, []byte) (string, error) {
	return "", errors.New("disk full")
}

func TestSend_WritesFile(t *testing.T) {
	dir := t.TempDir()
	st, err := localfs.New(dir)
	require.NoError(t, err)
	ts := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	out, err := New(st).Send(context.Background(), domain.EmailPayload{
		Recipient: "jane@example.com",
		Subject:   "Hello",
		Category:  domain.CategoryQuote,
		Body:      domain.Body{"name": "Jane"},
		Timestamp: ts,
		Attachments: []domain.Attachment{
			{Name: "design-mug-1772361000000.png", ContentType: "image/png", Data: []byte("png-bytes")},
		},
	})
	require.NoError(t, err)
	assert.True(t, out.Success)

	data, err := os.ReadFile(filepath.Join(dir, "quote-1772361000000.json"))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "jane@example.com", doc["recipient"])
	assert.Equal(t, "2026-03-01T10:30:00Z", doc["timestamp"])
	assert.Equal(t, map[string]any{"name": "Jane"}, doc["body"])

	file := "quote-1772361000000-design-mug-1772361000000.png"
	assert.Equal(t, []any{map[string]any{
		"name":        "design-mug-1772361000000.png",
		"contentType": "image/png",
		"file":        file,
	}}, doc["attachments"])
	saved, err := os.ReadFile(filepath.Join(dir, file))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), saved)
}

func TestSend_StorageFailureIsReported(t *testing.T) {
	out, err := New(failingStorage{}).Send(context.Background(), domain.EmailPayload{Category: domain.CategoryContact})
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.NotEmpty(t, out.Message)
}
