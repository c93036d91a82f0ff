// Package scheduler runs deferred work on the page's dispatch thread.
//
// Event handlers already run one at a time, to completion. Anything that has
// to happen later (status messages clearing, the easter egg ending, results
// coming back from a background submission) goes through a Scheduler so it
// is serialized with the handlers instead of racing them.
package scheduler

import "time"

// Task is a unit of work run on the dispatch thread.
type Task func()

// Timer is a pending After task.
type Timer interface {
	// Stop cancels the task and reports whether it had not run yet.
	Stop() bool
}

// Scheduler queues tasks on the dispatch thread.
type Scheduler interface {
	// After runs task once d has elapsed.
	After(d time.Duration, task Task) Timer
	// Post runs task as soon as the current handler returns. It is safe to
	// call from any goroutine.
	Post(task Task)
}

// debugLog is set by platform-specific code
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}
