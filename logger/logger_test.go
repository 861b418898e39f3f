package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jannetahkola/webgpu-game/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.Log{Level: "warn"}, WithConsole(zapcore.AddSync(&buf)))
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown", zap.Int("n", 1))
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "WARN")
}

func TestNewWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.log")
	log, err := New(config.Log{Level: "debug", File: path, MaxSizeMB: 1}, WithConsole(zapcore.AddSync(&bytes.Buffer{})))
	require.NoError(t, err)

	log.Debug("prefab loaded", zap.String("scene", "MainScene"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &line))
	assert.Equal(t, "prefab loaded", line["msg"])
	assert.Equal(t, "MainScene", line["scene"])
}

func TestNewRejectsLevel(t *testing.T) {
	_, err := New(config.Log{Level: "loud"})
	assert.Error(t, err)
}
