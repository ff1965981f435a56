package logging

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetup(t *testing.T) {
	t.Run("info level", func(t *testing.T) {
		Setup(LevelInfo)
		assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelInfo))
		assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
	})

	t.Run("debug level", func(t *testing.T) {
		Setup(LevelDebug)
		assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
	})
}

func TestSetupFromEnv(t *testing.T) {
	original := os.Getenv("BITRATE_DEBUG")
	defer func() { _ = os.Setenv("BITRATE_DEBUG", original) }()

	_ = os.Setenv("BITRATE_DEBUG", "1")
	SetupFromEnv()
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))

	_ = os.Setenv("BITRATE_DEBUG", "")
	SetupFromEnv()
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
}
