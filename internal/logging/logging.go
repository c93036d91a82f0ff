// Package logging builds the slog loggers used by the CLI and by the page.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cdelgado/portfolio/pkg/reactive"
	"github.com/cdelgado/portfolio/pkg/scheduler"
)

// ParseLevel maps debug, info, warn and error (any case) to a level.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a text logger writing to w.
func New(w io.Writer, level string) *slog.Logger {
	lvl := ParseLevel(level)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// EnableDebugHooks routes the scheduler and reactive trace output to
// logger at debug level.
func EnableDebugHooks(logger *slog.Logger) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	logFn := func(args ...interface{}) {
		logger.Debug(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
	}
	scheduler.SetDebugLog(logFn)
	reactive.SetDebugLog(logFn)
}
