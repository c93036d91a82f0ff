//go:build js && wasm
// +build js,wasm

package scheduler

import (
	"syscall/js"
	"time"
)

// Browser schedules tasks with window.setTimeout, so they run on the page's
// event loop between event handlers.
type Browser struct {
	global js.Value
}

var _ Scheduler = (*Browser)(nil)

// NewBrowser returns a scheduler bound to the global setTimeout.
func NewBrowser() *Browser {
	return &Browser{global: js.Global()}
}

// After runs task after d.
func (b *Browser) After(d time.Duration, task Task) Timer {
	t := &browserTimer{global: b.global}
	t.fn = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		t.fired = true
		t.fn.Release()
		task()
		return nil
	})
	t.id = b.global.Call("setTimeout", t.fn, d.Milliseconds())
	return t
}

// Post runs task on the next turn of the event loop. Calling into JS from a
// goroutine is allowed; the callback itself runs on the event loop.
func (b *Browser) Post(task Task) {
	b.After(0, task)
}

type browserTimer struct {
	global  js.Value
	id      js.Value
	fn      js.Func
	fired   bool
	stopped bool
}

func (t *browserTimer) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	t.global.Call("clearTimeout", t.id)
	t.fn.Release()
	if debugLog != nil {
		debugLog("[Scheduler] timer cancelled")
	}
	return true
}
