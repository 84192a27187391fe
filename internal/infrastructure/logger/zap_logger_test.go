package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewFromZap(zap.New(core))

	l.Debug("hidden %d", 1)
	l.Info("document %s accepted", "ext-1")
	l.With("group", "test").Warn("token expires in %ds", 30)
	l.Error("failed: %v", "boom")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "document ext-1 accepted", entries[0].Message)
	assert.Equal(t, "token expires in 30s", entries[1].Message)
	assert.Equal(t, "test", entries[1].ContextMap()["group"])
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}

func TestSDKHook(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	hook := SDKHook(NewFromZap(zap.New(core)))

	hook("POST https://online.atol.ru/possystem/v3/getToken (40 bytes) 100%")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "POST https://online.atol.ru/possystem/v3/getToken (40 bytes) 100%", logs.All()[0].Message)
	assert.Equal(t, zapcore.DebugLevel, logs.All()[0].Level)
}

func TestNewZapLogger(t *testing.T) {
	l, err := NewZapLogger("warn", false)
	require.NoError(t, err)
	assert.NotNil(t, l)

	_, err = NewZapLogger("loud", false)
	assert.Error(t, err)
}
