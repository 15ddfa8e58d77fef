package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "WARN")

	logger.Info("quote computed")
	assert.Zero(t, buf.Len())

	logger.Warn("backend slow", "attempt", 2)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "backend slow", entry["msg"])
	assert.Equal(t, float64(2), entry["attempt"])
	assert.NotContains(t, entry, "stacktrace")
}

func TestNew_ErrorsCarryStackTrace(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "INFO").With("component", "outbox")

	logger.Error("archive unavailable")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "outbox", entry["component"])
	assert.Contains(t, entry["stacktrace"], "goroutine")
}

func TestSetup_InstallsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Setup(&buf, "DEBUG")
	slog.Debug("configuration loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "configuration loaded", entry["msg"])
}
