package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "key=value")
}

type line struct {
	level slog.Level
	text  string
}

func TestConsoleHandler(t *testing.T) {
	var lines []line
	h := NewConsoleHandler(slog.LevelInfo, func(l slog.Level, s string) {
		lines = append(lines, line{l, s})
	})
	logger := slog.New(h).With("component", "theme")

	logger.Debug("dropped")
	logger.Info("theme applied", "theme", "dark")
	logger.WithGroup("form").Warn("slow", "ms", 1500)
	logger.Error("boom", slog.Group("req", "id", "abc"))

	require.Len(t, lines, 3)
	assert.Equal(t, "theme applied component=theme theme=dark", lines[0].text)
	assert.Equal(t, "slow component=theme form.ms=1500", lines[1].text)
	assert.Equal(t, slog.LevelWarn, lines[1].level)
	assert.Equal(t, "boom component=theme req.id=abc", lines[2].text)
}

func TestConsoleMethod(t *testing.T) {
	assert.Equal(t, "debug", consoleMethod(slog.LevelDebug))
	assert.Equal(t, "log", consoleMethod(slog.LevelInfo))
	assert.Equal(t, "warn", consoleMethod(slog.LevelWarn))
	assert.Equal(t, "error", consoleMethod(slog.LevelError))
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() { Discard().Error("nothing") })
}
