// Package domtest is an in-memory implementation of the dom interfaces for
// tests. Pages are parsed from HTML with golang.org/x/net/html and queried
// with real CSS selectors; the window is scriptable (scroll position,
// viewport width, storage, intersection changes) and events are dispatched
// synchronously with bubbling, the way the browser runs them.
package domtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/cdelgado/portfolio/pkg/dom"
)

// Document is a parsed page. It is not safe for concurrent use; like the
// browser, everything runs on the goroutine that dispatches events.
type Document struct {
	root       *html.Node
	elements   map[*html.Node]*Element
	selectors  map[string]cascadia.Selector
	listeners  map[string][]dom.Handler
	readyState string
	hidden     bool

	window *Window
}

var _ dom.Document = (*Document)(nil)

// Parse builds a document from src. The document starts out "complete".
func Parse(src string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("domtest: parse: %w", err)
	}
	d := &Document{
		root:       root,
		elements:   make(map[*html.Node]*Element),
		selectors:  make(map[string]cascadia.Selector),
		listeners:  make(map[string][]dom.Handler),
		readyState: "complete",
	}
	d.window = newWindow()
	return d, nil
}

// MustParse is Parse for tests.
func MustParse(tb testing.TB, src string) *Document {
	tb.Helper()
	d, err := Parse(src)
	if err != nil {
		tb.Fatalf("domtest: %v", err)
	}
	return d
}

// Window returns the scriptable window bound to this document.
func (d *Document) Window() *Window { return d.window }

func (d *Document) element(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{
		doc:   d,
		n:     n,
		style: make(map[string]string),
	}
	d.elements[n] = el
	return el
}

func (d *Document) compile(selector string) cascadia.Selector {
	if sel, ok := d.selectors[selector]; ok {
		return sel
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		// querySelector throws a SyntaxError in the browser.
		panic(fmt.Sprintf("domtest: invalid selector %q: %v", selector, err))
	}
	d.selectors[selector] = sel
	return sel
}

func (d *Document) queryAll(scope *html.Node, selector string) []dom.Element {
	var out []dom.Element
	for _, n := range d.compile(selector).MatchAll(scope) {
		if n == scope {
			continue
		}
		out = append(out, d.element(n))
	}
	return out
}

func (d *Document) queryFirst(scope *html.Node, selector string) (dom.Element, bool) {
	all := d.queryAll(scope, selector)
	if len(all) == 0 {
		return nil, false
	}
	return all[0], true
}

// AddEventListener registers h for document-level events.
func (d *Document) AddEventListener(event string, h dom.Handler) {
	d.listeners[event] = append(d.listeners[event], h)
}

func (d *Document) QuerySelector(selector string) (dom.Element, bool) {
	return d.queryFirst(d.root, selector)
}

func (d *Document) QuerySelectorAll(selector string) []dom.Element {
	return d.queryAll(d.root, selector)
}

func (d *Document) GetElementByID(id string) (dom.Element, bool) {
	if id == "" {
		return nil, false
	}
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}
	return d.element(found), true
}

func (d *Document) DocumentElement() dom.Element { return d.byAtom(atom.Html) }
func (d *Document) Body() dom.Element            { return d.byAtom(atom.Body) }
func (d *Document) Head() dom.Element            { return d.byAtom(atom.Head) }

func (d *Document) byAtom(a atom.Atom) *Element {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == a {
			found = n
			return false
		}
		return true
	})
	return d.element(found)
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) dom.Element {
	tag = strings.ToLower(tag)
	return d.element(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

func (d *Document) ReadyState() string { return d.readyState }
func (d *Document) Hidden() bool       { return d.hidden }

// SetReadyState changes the reported readyState without firing events.
func (d *Document) SetReadyState(state string) { d.readyState = state }

// FinishLoading moves a "loading" document to "interactive" and fires
// DOMContentLoaded.
func (d *Document) FinishLoading() {
	d.readyState = "interactive"
	d.Dispatch("DOMContentLoaded")
}

// SetHidden flips document.hidden and fires visibilitychange.
func (d *Document) SetHidden(hidden bool) {
	d.hidden = hidden
	d.Dispatch("visibilitychange")
}

// Dispatch fires an event at the document itself.
func (d *Document) Dispatch(event string) *Event {
	ev := &Event{typ: event}
	d.fire(ev)
	return ev
}

// PressKey fires a keydown at the body; it bubbles to the document.
func (d *Document) PressKey(key string) *Event {
	return d.byAtom(atom.Body).KeyDown(key)
}

// Find returns the first element matching selector, or nil.
func (d *Document) Find(selector string) *Element {
	el, ok := d.QuerySelector(selector)
	if !ok {
		return nil
	}
	return el.(*Element)
}

// FindAll returns every element matching selector.
func (d *Document) FindAll(selector string) []*Element {
	all := d.QuerySelectorAll(selector)
	out := make([]*Element, len(all))
	for i, el := range all {
		out[i] = el.(*Element)
	}
	return out
}

// dispatch bubbles ev from target through its ancestors to the document.
func (d *Document) dispatch(target *Element, ev *Event) {
	for n := target.n; n != nil; n = n.Parent {
		if el, ok := d.elements[n]; ok {
			for _, h := range el.listeners[ev.typ] {
				h(ev)
			}
		}
	}
	if target.n == d.root || isAttached(d.root, target.n) {
		d.fire(ev)
	}
}

func (d *Document) fire(ev *Event) {
	for _, h := range d.listeners[ev.typ] {
		h(ev)
	}
}

func isAttached(root, n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

// walk visits n and its descendants depth first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// Event is a dispatched event.
type Event struct {
	typ       string
	key       string
	prevented bool
}

var _ dom.Event = (*Event)(nil)

func (e *Event) Type() string           { return e.typ }
func (e *Event) Key() string            { return e.key }
func (e *Event) PreventDefault()        { e.prevented = true }
func (e *Event) DefaultPrevented() bool { return e.prevented }
