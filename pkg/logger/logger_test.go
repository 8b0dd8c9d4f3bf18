package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(path, "info")
	require.NoError(t, err)

	log.Debug("hidden %d", 1)
	log.Info("booking created id=%d", 42)
	require.NoError(t, log.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "booking created id=42")
	assert.NotContains(t, string(content), "hidden")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}
