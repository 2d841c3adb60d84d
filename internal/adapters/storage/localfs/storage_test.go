package localfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	s, err := New(dir)
	require.NoError(t, err)

	path, err := s.Save(context.Background(), "quote-1.json", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "quote-1.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestSave_StaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	path, err := s.Save(context.Background(), "../../etc/x.json", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "x.json"), path)
}

func TestSave_InvalidName(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save(context.Background(), "", []byte("x"))
	assert.Error(t, err)
}
