package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseRowFile(t *testing.T) {
	ctx := context.Background()

	t.Run("csv extension uses the csv source", func(t *testing.T) {
		path := writeTempFile(t, "export.csv", "Category,Item,Total Spent\n식비,점심,9000\n")

		rows, err := parseRowFile(ctx, path)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "점심", rows[0].Item)
		assert.Equal(t, "식비", rows[0].Category)
	})

	t.Run("txt falls back to free text", func(t *testing.T) {
		path := writeTempFile(t, "notes.txt", "스타벅스 아메리카노 4500\n")

		rows, err := parseRowFile(ctx, path)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "스타벅스 아메리카노", rows[0].Item)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := parseRowFile(ctx, filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})
}

func TestMimeTypeForExt(t *testing.T) {
	assert.Equal(t, "image/png", mimeTypeForExt(".PNG"))
	assert.Equal(t, "image/webp", mimeTypeForExt(".webp"))
	assert.Equal(t, "image/gif", mimeTypeForExt(".gif"))
	assert.Equal(t, "image/jpeg", mimeTypeForExt(".jpg"))
	assert.Equal(t, "image/jpeg", mimeTypeForExt(""))
}

func TestLoadImages(t *testing.T) {
	path := writeTempFile(t, "receipt.png", "fake-image-bytes")

	images, err := loadImages([]string{path})
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "receipt.png", images[0].Name)
	assert.Equal(t, "image/png", images[0].MIMEType)
	assert.Equal(t, []byte("fake-image-bytes"), images[0].Data)
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.qfx", "b.qfx", "c.ofx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}

	t.Run("glob pattern", func(t *testing.T) {
		files, err := expandGlobs([]string{filepath.Join(dir, "*.qfx")})
		require.NoError(t, err)
		assert.Len(t, files, 2)
	})

	t.Run("direct file without glob match", func(t *testing.T) {
		files, err := expandGlobs([]string{filepath.Join(dir, "c.ofx")})
		require.NoError(t, err)
		assert.Len(t, files, 1)
	})

	t.Run("nonexistent pattern is skipped", func(t *testing.T) {
		files, err := expandGlobs([]string{filepath.Join(dir, "*.csv")})
		require.NoError(t, err)
		assert.Empty(t, files)
	})
}
