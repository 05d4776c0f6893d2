package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestSetupReplacesDefault(t *testing.T) {
	prev := Log
	defer func() {
		Log = prev
		slog.SetDefault(prev)
	}()

	Setup("production", "error")
	assert.Same(t, Log, slog.Default())
	assert.False(t, Log.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, Log.Enabled(context.Background(), slog.LevelError))
}
