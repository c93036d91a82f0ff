//go:build !js || !wasm

package logging

import (
	"fmt"
	"log/slog"
	"os"
)

// NewConsole writes console lines to stderr outside the browser.
func NewConsole(level string) *slog.Logger {
	return slog.New(NewConsoleHandler(ParseLevel(level), func(l slog.Level, line string) {
		fmt.Fprintf(os.Stderr, "console.%s: %s\n", consoleMethod(l), line)
	}))
}
