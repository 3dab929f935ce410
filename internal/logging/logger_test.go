package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewHonoursLevel(t *testing.T) {
	logger := New("warn", "gateway")
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
}

func TestNewFallsBackToInfo(t *testing.T) {
	logger := New("loud", "")
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestDiscardDropsInfo(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelInfo))
}
