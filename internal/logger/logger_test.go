package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"warn", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLogLevel(tt.input))
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "INFO", cfg.Level)
	assert.True(t, cfg.ConsoleEnabled)
	assert.Equal(t, "text", cfg.ConsoleFormat)
	assert.False(t, cfg.FileEnabled)
	assert.Equal(t, 10, cfg.FileMaxSizeMB)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_CONSOLE_FORMAT", "json")
	t.Setenv("LOG_FILE_ENABLED", "true")
	t.Setenv("LOG_FILE_PATH", "/tmp/custom.log")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	assert.Equal(t, "DEBUG", cfg.Level)
	assert.Equal(t, "json", cfg.ConsoleFormat)
	assert.True(t, cfg.FileEnabled)
	assert.Equal(t, "/tmp/custom.log", cfg.FilePath)
}

func TestApplyEnvIgnoresBadBool(t *testing.T) {
	t.Setenv("LOG_FILE_ENABLED", "sometimes")
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	assert.False(t, cfg.FileEnabled)
}

func TestConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = "WARN"
	require.NoError(t, initialize(cfg, &buf))

	Info("hidden")
	Warning("shown", "cell", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "cell=3")
}

func TestJSONConsoleAndWith(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.ConsoleFormat = "json"
	require.NoError(t, initialize(cfg, &buf))

	With("run", "abc").Info("collapsed", "steps", 12)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "collapsed", rec["msg"])
	assert.Equal(t, "abc", rec["run"])
	assert.EqualValues(t, 12, rec["steps"])
}

func TestFileAndConsoleFanOut(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "out.log")
	cfg := DefaultConfig()
	cfg.FileEnabled = true
	cfg.FilePath = path
	require.NoError(t, initialize(cfg, &buf))

	Errorf("reset after %d contradictions", 3)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "reset after 3 contradictions"))
	assert.Contains(t, buf.String(), "reset after 3 contradictions")
}

func TestFileEnabledNeedsPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FileEnabled = true
	cfg.FilePath = ""
	assert.Error(t, Initialize(cfg))
}

func TestWithBeforeInitialize(t *testing.T) {
	mu.Lock()
	saved := logger
	logger = nil
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		logger = saved
		mu.Unlock()
	})

	assert.NotPanics(t, func() {
		With("k", "v").Info("dropped")
		Info("dropped")
	})
}
