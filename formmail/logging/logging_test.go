package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, New(Options{}).GetLevel())
	assert.Equal(t, zerolog.DebugLevel, New(Options{Verbose: true}).GetLevel())
}

func TestNewWritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "formmail.log")

	logger := New(Options{File: file})
	logger.Info().Str("module", "test").Msg("hello")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"module":"test"`)
	assert.Contains(t, string(data), `"message":"hello"`)
}
