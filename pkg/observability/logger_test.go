package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("creates text logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelInfo, Format: LogFormatText, Output: &buf})
		require.NotNil(t, logger)

		logger.Info("test message", "key", "value")
		output := buf.String()

		assert.Contains(t, output, "test message")
		assert.Contains(t, output, "key=value")
	})

	t.Run("creates JSON logger with service attributes", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{
			Level:          LogLevelInfo,
			Format:         LogFormatJSON,
			Output:         &buf,
			ServiceName:    ServiceName,
			ServiceVersion: "1.2.3",
		})

		logger.Info("test message", "key", "value")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "test message", entry["msg"])
		assert.Equal(t, "value", entry["key"])
		assert.Equal(t, "whatsnext", entry["service"])
		assert.Equal(t, "1.2.3", entry["version"])
	})

	t.Run("respects log level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: LogLevelWarn, Format: LogFormatText, Output: &buf})

		logger.Info("hidden")
		logger.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})
}

func TestLogConfigFor(t *testing.T) {
	cfg := LogConfigFor("development", "", "", "")
	assert.Equal(t, LogLevelInfo, cfg.Level)
	assert.Equal(t, LogFormatText, cfg.Format)
	assert.False(t, cfg.AddSource)
	assert.Equal(t, ServiceName, cfg.ServiceName)

	cfg = LogConfigFor("production", "DEBUG", "JSON", "v1")
	assert.Equal(t, LogLevelDebug, cfg.Level)
	assert.Equal(t, LogFormatJSON, cfg.Format)
	assert.True(t, cfg.AddSource)
	assert.Equal(t, "v1", cfg.ServiceVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  slog.Level
	}{
		{LogLevelDebug, slog.LevelDebug},
		{LogLevelInfo, slog.LevelInfo},
		{LogLevelWarn, slog.LevelWarn},
		{LogLevelError, slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseSlogLevel(tt.level), string(tt.level))
	}
}

func TestAttributeHandler(t *testing.T) {
	t.Run("Enabled delegates to base handler", func(t *testing.T) {
		base := slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})
		handler := &attributeHandler{handler: base}

		assert.False(t, handler.Enabled(context.Background(), slog.LevelInfo))
		assert.True(t, handler.Enabled(context.Background(), slog.LevelError))
	})

	t.Run("keeps default attributes through With", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Format: LogFormatText, Output: &buf, ServiceName: ServiceName})

		logger.With("component", "api").WithGroup("req").Info("hello", "path", "/")
		line := buf.String()

		assert.Contains(t, line, "component=api")
		assert.Contains(t, line, "req.path=/")
		assert.Contains(t, line, "service=whatsnext")
	})
}

func TestContextIntegration(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: LogLevelInfo, Format: LogFormatJSON, Output: &buf})

	ctx := WithCorrelationID(context.Background(), "corr-123")
	ctx = WithRequestID(ctx, "req-456")
	ctx = WithOperation(ctx, "suggestions.get")
	logger.InfoContext(ctx, "test with context")

	output := buf.String()
	assert.Contains(t, output, "corr-123")
	assert.Contains(t, output, "req-456")
	assert.Contains(t, output, "suggestions.get")
}

func TestContextIDs(t *testing.T) {
	ctx := NewRequestContext(context.Background(), "")
	assert.Len(t, RequestIDFromContext(ctx), 36)
	assert.Len(t, CorrelationIDFromContext(ctx), 36)

	ctx = NewRequestContext(context.Background(), "upstream")
	assert.Equal(t, "upstream", CorrelationIDFromContext(ctx))

	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, OperationFromContext(context.Background()))
}
