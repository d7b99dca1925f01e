package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Run("tilde prefix", func(t *testing.T) {
		assert.Equal(t, filepath.Join(home, "data", "spendy.db"), ExpandPath("~/data/spendy.db"))
	})

	t.Run("bare tilde", func(t *testing.T) {
		assert.Equal(t, home, ExpandPath("~"))
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("SPENDY_TEST_DIR", "/tmp/spendy")
		assert.Equal(t, "/tmp/spendy/spendy.db", ExpandPath("$SPENDY_TEST_DIR/spendy.db"))
	})

	t.Run("plain path is unchanged", func(t *testing.T) {
		assert.Equal(t, "/var/lib/spendy.db", ExpandPath("/var/lib/spendy.db"))
	})

	t.Run("empty path", func(t *testing.T) {
		assert.Empty(t, ExpandPath(""))
	})
}

func TestDefaultDir(t *testing.T) {
	dir := DefaultDir()
	assert.True(t, strings.HasSuffix(dir, filepath.Join(".config", "spendy")))
}
