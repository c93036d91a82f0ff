// Package dom describes the slice of the browser document object model the
// portfolio controllers rely on. Controllers only ever talk to these
// interfaces; the js/wasm build binds them to the real browser and tests bind
// them to the in-memory document in package domtest.
package dom

import "errors"

// ErrUnsupported is returned by constructors that need a browser when the
// binary was not built for js/wasm.
var ErrUnsupported = errors.New("dom: browser bindings are only available in js/wasm builds")

// Handler receives a dispatched event. Handlers run to completion on the
// dispatch thread, one at a time.
type Handler func(Event)

// Event is the part of a DOM event handlers look at.
type Event interface {
	Type() string
	// Key is the KeyboardEvent key, empty for other events.
	Key() string
	PreventDefault()
}

// EventTarget registers named handlers.
type EventTarget interface {
	AddEventListener(event string, h Handler)
}

// Querier looks elements up by CSS selector.
type Querier interface {
	QuerySelector(selector string) (Element, bool)
	QuerySelectorAll(selector string) []Element
}

// Element is a single DOM element.
type Element interface {
	EventTarget
	Querier

	// TagName is upper case, as the browser reports it.
	TagName() string
	ID() string

	Attr(name string) (string, bool)
	SetAttr(name, value string)

	Text() string
	SetText(text string)
	Placeholder() string
	SetPlaceholder(text string)
	Value() string
	SetValue(value string)
	Disabled() bool
	SetDisabled(disabled bool)
	// Href is the resolved href property of anchors.
	Href() string

	ClassName() string
	SetClassName(name string)
	HasClass(name string) bool
	AddClass(name string)
	RemoveClass(name string)
	// ToggleClass flips name and reports whether it is now present.
	ToggleClass(name string) bool

	// Style and SetStyle use CSS property names ("transition-delay").
	Style(property string) string
	SetStyle(property, value string)

	OffsetTop() float64
	OffsetHeight() float64
	ScrollIntoView(smooth bool)

	Click()
	// Reset restores the default values of a form's controls.
	Reset()
	AppendChild(child Element)
}

// Document is the loaded page.
type Document interface {
	EventTarget
	Querier

	GetElementByID(id string) (Element, bool)
	DocumentElement() Element
	Body() Element
	Head() Element
	CreateElement(tag string) Element
	// ReadyState is "loading", "interactive" or "complete".
	ReadyState() string
	Hidden() bool
}

// Storage is durable string key/value storage (window.localStorage).
type Storage interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string) error
}

// ObserverOptions configures an IntersectionObserver.
type ObserverOptions struct {
	Threshold  float64
	RootMargin string
}

// IntersectionEntry reports a visibility change of one observed element.
type IntersectionEntry struct {
	Target       Element
	Intersecting bool
}

// IntersectionCallback receives batches of visibility changes.
type IntersectionCallback func(entries []IntersectionEntry)

// IntersectionObserver watches elements entering the viewport.
type IntersectionObserver interface {
	Observe(el Element)
	Unobserve(el Element)
}

// Window is the browsing context.
type Window interface {
	EventTarget

	ScrollY() float64
	InnerWidth() float64

	// LocalStorage reports false when storage is missing or access throws.
	LocalStorage() (Storage, bool)
	// NewIntersectionObserver reports false when the browser lacks the API.
	NewIntersectionObserver(opts ObserverOptions, cb IntersectionCallback) (IntersectionObserver, bool)
	// NativeLazyLoading reports whether <img loading="lazy"> is understood.
	NativeLazyLoading() bool
}
