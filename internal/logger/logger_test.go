package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sitediary/internal/config"
	"sitediary/internal/logger"
)

func TestNew_InstallsGlobal(t *testing.T) {
	l, err := logger.New(config.LogConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	assert.Same(t, l, zap.L())
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_ConsoleDebug(t *testing.T) {
	l, err := logger.New(config.LogConfig{Level: "DEBUG", Format: "console"})
	require.NoError(t, err)
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := logger.New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
