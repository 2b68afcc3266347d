package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		json  bool
		debug bool
		level zapcore.Level
	}{
		{name: "console info", level: zapcore.InfoLevel},
		{name: "json info", json: true, level: zapcore.InfoLevel},
		{name: "console debug", debug: true, level: zapcore.DebugLevel},
		{name: "json debug", json: true, debug: true, level: zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.json, tt.debug)
			require.NoError(t, err)
			require.NotNil(t, l)

			assert.True(t, l.Core().Enabled(tt.level))
			assert.False(t, l.Core().Enabled(tt.level-1))
		})
	}
}

func TestNewWithLevel(t *testing.T) {
	l, err := NewWithLevel(true, "warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	_, err = NewWithLevel(false, "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestContextLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core)

	ctx := ContextWithLogger(context.Background(), l.With(zap.String("request_id", "abc")))
	FromContext(ctx).Info("scored")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "scored", entry.Message)
	assert.Equal(t, "abc", entry.ContextMap()["request_id"])
}

func TestFromContext_Missing(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	assert.NotPanics(t, func() { l.Info("dropped") })
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		limit    int
		expected string
	}{
		{in: "short", limit: 10, expected: "short"},
		{in: "  padded  ", limit: 6, expected: "padded"},
		{in: "abcdefgh", limit: 3, expected: "abc..."},
		{in: "résumé", limit: 3, expected: "rés..."},
		{in: "anything", limit: 0, expected: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Truncate(tt.in, tt.limit))
	}
}
