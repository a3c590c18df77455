package infrastructure

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barpulse/internal/config"
)

func TestCreateLoggerFormats(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LoggingConfig
	}{
		{name: "json console", cfg: config.LoggingConfig{Level: "info", Format: "json", Output: "console"}},
		{name: "text console", cfg: config.LoggingConfig{Level: "debug", Format: "text", Output: "console"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := createLogger(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("anything else"))
}

func TestTraceIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctx = WithTraceID(ctx, "abc-123")
	assert.Equal(t, "abc-123", GetTraceID(ctx))

	// EnsureTraceID keeps an existing ID and mints one when missing.
	assert.Equal(t, "abc-123", GetTraceID(EnsureTraceID(ctx)))
	assert.NotEmpty(t, GetTraceID(EnsureTraceID(context.Background())))
}

func TestMetricsCollectors(t *testing.T) {
	m := NewMetrics()
	m.ImportsTotal.WithLabelValues("spirits").Inc()
	m.ImportedRows.WithLabelValues("spirits").Add(42)

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
