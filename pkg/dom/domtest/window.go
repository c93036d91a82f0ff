package domtest

import (
	"errors"

	"golang.org/x/net/html"

	"github.com/cdelgado/portfolio/pkg/dom"
)

// ErrQuotaExceeded is what a Storage with failing writes returns.
var ErrQuotaExceeded = errors.New("domtest: storage quota exceeded")

// Window is a scriptable browsing context. It starts 1280px wide, scrolled to
// the top, with storage, IntersectionObserver and native lazy loading
// available.
type Window struct {
	listeners  map[string][]dom.Handler
	scrollY    float64
	innerWidth float64

	storage          *Storage
	storageAvailable bool
	observersEnabled bool
	observers        []*Observer
	nativeLazy       bool
}

var _ dom.Window = (*Window)(nil)

func newWindow() *Window {
	return &Window{
		listeners:        make(map[string][]dom.Handler),
		innerWidth:       1280,
		storage:          NewStorage(),
		storageAvailable: true,
		observersEnabled: true,
		nativeLazy:       true,
	}
}

func (w *Window) AddEventListener(event string, h dom.Handler) {
	w.listeners[event] = append(w.listeners[event], h)
}

func (w *Window) ScrollY() float64    { return w.scrollY }
func (w *Window) InnerWidth() float64 { return w.innerWidth }

// ScrollTo moves the viewport and fires a scroll event.
func (w *Window) ScrollTo(y float64) {
	w.scrollY = y
	w.Dispatch("scroll")
}

// SetInnerWidth resizes the viewport without firing resize.
func (w *Window) SetInnerWidth(width float64) { w.innerWidth = width }

// Dispatch fires an event at the window.
func (w *Window) Dispatch(event string) *Event {
	ev := &Event{typ: event}
	for _, h := range w.listeners[event] {
		h(ev)
	}
	return ev
}

// Storage returns the backing localStorage fake.
func (w *Window) Storage() *Storage { return w.storage }

// DisableStorage makes LocalStorage report no storage, as private browsing
// modes do.
func (w *Window) DisableStorage() { w.storageAvailable = false }

func (w *Window) LocalStorage() (dom.Storage, bool) {
	if !w.storageAvailable {
		return nil, false
	}
	return w.storage, true
}

// DisableIntersectionObserver removes the API from the window.
func (w *Window) DisableIntersectionObserver() { w.observersEnabled = false }

func (w *Window) NewIntersectionObserver(opts dom.ObserverOptions, cb dom.IntersectionCallback) (dom.IntersectionObserver, bool) {
	if !w.observersEnabled {
		return nil, false
	}
	o := &Observer{
		opts:    opts,
		cb:      cb,
		targets: make(map[*html.Node]*Element),
	}
	w.observers = append(w.observers, o)
	return o, true
}

// Observers lists the observers created so far.
func (w *Window) Observers() []*Observer { return w.observers }

// Intersect reports els as having entered the viewport to every observer
// watching them.
func (w *Window) Intersect(els ...*Element) {
	w.notify(true, els)
}

// Leave reports els as having left the viewport.
func (w *Window) Leave(els ...*Element) {
	w.notify(false, els)
}

func (w *Window) notify(intersecting bool, els []*Element) {
	for _, o := range w.observers {
		var entries []dom.IntersectionEntry
		for _, el := range els {
			if _, ok := o.targets[el.n]; ok {
				entries = append(entries, dom.IntersectionEntry{Target: el, Intersecting: intersecting})
			}
		}
		if len(entries) > 0 {
			o.cb(entries)
		}
	}
}

func (w *Window) NativeLazyLoading() bool { return w.nativeLazy }

// SetNativeLazyLoading toggles support for loading="lazy".
func (w *Window) SetNativeLazyLoading(ok bool) { w.nativeLazy = ok }

// Observer is an IntersectionObserver fake.
type Observer struct {
	opts    dom.ObserverOptions
	cb      dom.IntersectionCallback
	targets map[*html.Node]*Element
}

func (o *Observer) Observe(el dom.Element) {
	if e, ok := el.(*Element); ok {
		o.targets[e.n] = e
	}
}

func (o *Observer) Unobserve(el dom.Element) {
	if e, ok := el.(*Element); ok {
		delete(o.targets, e.n)
	}
}

// Options returns the options the observer was built with.
func (o *Observer) Options() dom.ObserverOptions { return o.opts }

// Observing reports whether el is currently watched.
func (o *Observer) Observing(el *Element) bool {
	_, ok := o.targets[el.n]
	return ok
}

// Storage is an in-memory localStorage.
type Storage struct {
	items      map[string]string
	failWrites bool
}

var _ dom.Storage = (*Storage)(nil)

// NewStorage returns empty storage.
func NewStorage() *Storage {
	return &Storage{items: make(map[string]string)}
}

func (s *Storage) GetItem(key string) (string, bool) {
	v, ok := s.items[key]
	return v, ok
}

func (s *Storage) SetItem(key, value string) error {
	if s.failWrites {
		return ErrQuotaExceeded
	}
	s.items[key] = value
	return nil
}

// FailWrites makes every later SetItem fail.
func (s *Storage) FailWrites() { s.failWrites = true }

// Len reports the number of stored keys.
func (s *Storage) Len() int { return len(s.items) }
