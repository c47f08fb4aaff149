package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/procwarden/procwarden/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWithConfigWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "procwarden.log")
	InitLoggerWithConfig(config.LoggingConfig{Level: "warn", FilePath: path, MaxSizeMB: 1})
	t.Cleanup(func() { InitLogger() })

	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	Logger(context.Background()).Info().Msg("dropped")
	Logger(context.Background()).Warn().Str("event", "termination_failed").Msg("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"event":"termination_failed"`)
	assert.NotContains(t, string(data), "dropped")
}

func TestInitLoggerWithConfigBadLevel(t *testing.T) {
	InitLoggerWithConfig(config.LoggingConfig{Level: "loud", Console: true})
	t.Cleanup(func() { InitLogger() })
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
