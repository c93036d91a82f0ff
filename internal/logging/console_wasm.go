//go:build js && wasm

package logging

import (
	"log/slog"
	"syscall/js"
)

// NewConsole returns a logger writing to the browser console.
func NewConsole(level string) *slog.Logger {
	console := js.Global().Get("console")
	return slog.New(NewConsoleHandler(ParseLevel(level), func(l slog.Level, line string) {
		console.Call(consoleMethod(l), line)
	}))
}
