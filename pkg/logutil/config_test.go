package logutil

import (
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLogConfigBuildConsole(t *testing.T) {
	original := L()
	defer SetLogger(original)

	cfg := &LogConfig{Level: "debug", Format: "console"}
	logger, err := cfg.Build()
	require.NoError(t, err)
	assert.Same(t, logger, L())
}

func TestLogConfigBuildRotatingFile(t *testing.T) {
	original := L()
	defer SetLogger(original)

	cfg := &LogConfig{
		Level:      "info",
		Format:     "json",
		Filename:   path.Join(t.TempDir(), "prewarm.log"),
		MaxSize:    1,
		MaxBackups: 3,
	}
	logger, err := cfg.Build()
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Info("wrote through lumberjack sink", zap.String("k", "v"))
}

func TestLogConfigUnknownLevelDefaultsToInfo(t *testing.T) {
	cfg := &LogConfig{Level: "not-a-level"}
	assert.Equal(t, zap.NewAtomicLevelAt(zap.InfoLevel), cfg.getLevel())
}
