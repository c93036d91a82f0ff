package domtest

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/cdelgado/portfolio/pkg/dom"
)

// Element wraps a parsed node. Attribute and class changes are written back
// to the node so later selector queries see them.
type Element struct {
	doc       *Document
	n         *html.Node
	listeners map[string][]dom.Handler
	style     map[string]string

	// value is the live value of a form control once it diverges from the
	// markup default.
	value *string

	top, height float64

	scrolls      int
	smoothScroll bool
	clicks       int
}

var _ dom.Element = (*Element)(nil)

func (e *Element) AddEventListener(event string, h dom.Handler) {
	if e.listeners == nil {
		e.listeners = make(map[string][]dom.Handler)
	}
	e.listeners[event] = append(e.listeners[event], h)
}

func (e *Element) QuerySelector(selector string) (dom.Element, bool) {
	return e.doc.queryFirst(e.n, selector)
}

func (e *Element) QuerySelectorAll(selector string) []dom.Element {
	return e.doc.queryAll(e.n, selector)
}

func (e *Element) TagName() string { return strings.ToUpper(e.n.Data) }
func (e *Element) ID() string      { return attr(e.n, "id") }

func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e *Element) SetAttr(name, value string) {
	for i, a := range e.n.Attr {
		if a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute.
func (e *Element) RemoveAttr(name string) {
	kept := e.n.Attr[:0]
	for _, a := range e.n.Attr {
		if a.Key != name {
			kept = append(kept, a)
		}
	}
	e.n.Attr = kept
}

func (e *Element) Text() string {
	var b strings.Builder
	walk(e.n, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}

func (e *Element) SetText(text string) {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func (e *Element) Placeholder() string {
	v, _ := e.Attr("placeholder")
	return v
}

func (e *Element) SetPlaceholder(text string) { e.SetAttr("placeholder", text) }

func (e *Element) Value() string {
	if e.value != nil {
		return *e.value
	}
	return e.defaultValue()
}

func (e *Element) defaultValue() string {
	switch e.n.DataAtom {
	case atom.Textarea:
		return e.Text()
	default:
		v, _ := e.Attr("value")
		return v
	}
}

func (e *Element) SetValue(value string) { e.value = &value }

func (e *Element) Disabled() bool {
	_, ok := e.Attr("disabled")
	return ok
}

func (e *Element) SetDisabled(disabled bool) {
	if disabled {
		e.SetAttr("disabled", "")
		return
	}
	e.RemoveAttr("disabled")
}

func (e *Element) Href() string {
	v, _ := e.Attr("href")
	return v
}

func (e *Element) ClassName() string {
	v, _ := e.Attr("class")
	return v
}

func (e *Element) SetClassName(name string) { e.SetAttr("class", name) }

func (e *Element) HasClass(name string) bool {
	for _, c := range strings.Fields(e.ClassName()) {
		if c == name {
			return true
		}
	}
	return false
}

func (e *Element) AddClass(name string) {
	if e.HasClass(name) {
		return
	}
	e.SetClassName(strings.TrimSpace(e.ClassName() + " " + name))
}

func (e *Element) RemoveClass(name string) {
	fields := strings.Fields(e.ClassName())
	kept := fields[:0]
	for _, c := range fields {
		if c != name {
			kept = append(kept, c)
		}
	}
	e.SetClassName(strings.Join(kept, " "))
}

func (e *Element) ToggleClass(name string) bool {
	if e.HasClass(name) {
		e.RemoveClass(name)
		return false
	}
	e.AddClass(name)
	return true
}

func (e *Element) Style(property string) string { return e.style[property] }

func (e *Element) SetStyle(property, value string) {
	if value == "" {
		delete(e.style, property)
		return
	}
	e.style[property] = value
}

func (e *Element) OffsetTop() float64    { return e.top }
func (e *Element) OffsetHeight() float64 { return e.height }

// SetLayout fixes the element's offsetTop and offsetHeight.
func (e *Element) SetLayout(top, height float64) {
	e.top, e.height = top, height
}

func (e *Element) ScrollIntoView(smooth bool) {
	e.scrolls++
	e.smoothScroll = smooth
}

// ScrolledIntoView reports how often ScrollIntoView ran and whether the last
// call asked for smooth scrolling.
func (e *Element) ScrolledIntoView() (count int, smooth bool) {
	return e.scrolls, e.smoothScroll
}

// Click fires a click at the element.
func (e *Element) Click() {
	e.clicks++
	e.Dispatch("click")
}

// Clicks counts Click calls, including the ones made by controllers.
func (e *Element) Clicks() int { return e.clicks }

// Reset restores every control inside a form to its markup default.
func (e *Element) Reset() {
	if e.n.DataAtom != atom.Form {
		return
	}
	walk(e.n, func(n *html.Node) bool {
		if el, ok := e.doc.elements[n]; ok {
			el.value = nil
		}
		return true
	})
}

func (e *Element) AppendChild(child dom.Element) {
	c, ok := child.(*Element)
	if !ok {
		return
	}
	if c.n.Parent != nil {
		c.n.Parent.RemoveChild(c.n)
	}
	e.n.AppendChild(c.n)
}

// Dispatch fires an event of the given type at the element.
func (e *Element) Dispatch(event string) *Event {
	ev := &Event{typ: event}
	e.doc.dispatch(e, ev)
	return ev
}

// KeyDown fires a keydown carrying key at the element.
func (e *Element) KeyDown(key string) *Event {
	ev := &Event{typ: "keydown", key: key}
	e.doc.dispatch(e, ev)
	return ev
}

// Fill types value into a form control.
func (e *Element) Fill(value string) { e.SetValue(value) }
