package tlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := WithLogger(context.Background(), zap.New(core))
	ctx = With(ctx, zap.String("requestID", "42"))

	Get(ctx).Info("hello")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "hello", entries[0].Message)
	require.Equal(t, map[string]any{"requestID": "42"}, entries[0].ContextMap())
}

func TestGetWithoutLogger(t *testing.T) {
	require.NotPanics(t, func() {
		Get(context.Background()).Info("discarded")
	})
}

func TestNewValidatesConfig(t *testing.T) {
	require.Panics(t, func() { New(Config{Format: "xml"}) })
	require.Panics(t, func() { New(Config{Format: FormatText, Color: "maybe"}) })
	require.NotNil(t, New(Config{Format: FormatJSON}))
	require.True(t, New(Config{Format: FormatText, Color: ColorNo, Verbose: true}).Core().Enabled(zapcore.DebugLevel))
}
