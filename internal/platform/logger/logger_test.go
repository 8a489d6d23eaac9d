// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidLogLevelParsing tests that valid log levels are correctly parsed.
func TestValidLogLevelParsing(t *testing.T) {
	testCases := []struct {
		name     string
		logLevel string
		want     slog.Level
	}{
		{name: "debug level", logLevel: "debug", want: slog.LevelDebug},
		{name: "info level", logLevel: "info", want: slog.LevelInfo},
		{name: "warn level", logLevel: "warn", want: slog.LevelWarn},
		{name: "error level", logLevel: "error", want: slog.LevelError},
		{name: "case insensitive - DEBUG", logLevel: "DEBUG", want: slog.LevelDebug},
		{name: "case insensitive - Info", logLevel: "Info", want: slog.LevelInfo},
		{name: "unknown falls back to info", logLevel: "chatty", want: slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, logger.ParseLevel(tc.logLevel))
		})
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	buf := &logger.TestLogBuffer{}
	log := logger.New(buf, "warn")

	log.Info("info test message")
	log.Warn("warn test message", "task_id", 7)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1, "info must be filtered at warn level")
	assert.Equal(t, "warn test message", entries[0]["msg"])
	assert.Equal(t, float64(7), entries[0]["task_id"])
}

func TestFromContext(t *testing.T) {
	base, baseBuf := logger.GetTestLogger(t)
	scoped, scopedBuf := logger.GetTestLogger(t)

	t.Run("logger in context wins", func(t *testing.T) {
		ctx := logger.WithLogger(context.Background(), scoped)
		logger.FromContextOrDefault(ctx, base).Info("scoped message")
		logger.AssertLogContains(t, scopedBuf, "scoped message")
		assert.NotContains(t, baseBuf.String(), "scoped message")
	})

	t.Run("request id is attached to fallback", func(t *testing.T) {
		ctx := logger.WithRequestID(context.Background(), "req-42")
		logger.FromContextOrDefault(ctx, base).Info("fallback message")

		entries, err := baseBuf.GetLogEntries()
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		last := entries[len(entries)-1]
		assert.Equal(t, "fallback message", last["msg"])
		assert.Equal(t, "req-42", last["request_id"])
	})

	t.Run("empty context returns fallback", func(t *testing.T) {
		assert.Same(t, base, logger.FromContextOrDefault(context.Background(), base))
	})
}
