package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/docchat/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestTextExtractor_Extract(t *testing.T) {
	ctx := context.Background()
	e := NewTextExtractor()

	t.Run("reads file content", func(t *testing.T) {
		path := writeFile(t, "notes.txt", []byte("hello world"))
		text, err := e.Extract(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "hello world", text)
	})

	t.Run("replaces undecodable bytes", func(t *testing.T) {
		path := writeFile(t, "junk.txt", []byte{'o', 'k', 0xff, 0xfe, '!'})
		text, err := e.Extract(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "ok��!", text)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := e.Extract(ctx, filepath.Join(t.TempDir(), "absent.txt"))
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "empty.txt", nil)
		_, err := e.Extract(ctx, path)
		assert.ErrorIs(t, err, core.ErrEmptyInput)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		path := writeFile(t, "notes.txt", []byte("hello"))
		_, err := e.Extract(cancelled, path)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
