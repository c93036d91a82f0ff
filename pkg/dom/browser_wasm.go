//go:build js && wasm
// +build js,wasm

package dom

import (
	"fmt"
	"strings"
	"syscall/js"
)

// Browser binds the dom interfaces to the page the wasm module runs in.
type Browser struct {
	window   js.Value
	document js.Value

	// funcs keeps every registered listener alive for the page lifetime.
	funcs []js.Func
}

// NewBrowser captures the global window and document.
func NewBrowser() (*Browser, error) {
	window := js.Global().Get("window")
	document := js.Global().Get("document")
	if !document.Truthy() {
		return nil, fmt.Errorf("dom: no document in global scope")
	}
	return &Browser{
		window:   window,
		document: document,
	}, nil
}

// Window returns the browsing context.
func (b *Browser) Window() Window { return &jsWindow{b: b, v: b.window} }

// Document returns the loaded page.
func (b *Browser) Document() Document { return &jsDocument{b: b, v: b.document} }

// listen attaches h to target and keeps the js.Func referenced.
func (b *Browser) listen(target js.Value, event string, h Handler) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		ev := js.Undefined()
		if len(args) > 0 {
			ev = args[0]
		}
		h(jsEvent{v: ev})
		return nil
	})
	target.Call("addEventListener", event, fn)
	b.funcs = append(b.funcs, fn)
}

func (b *Browser) wrap(v js.Value) (Element, bool) {
	if v.IsNull() || v.IsUndefined() {
		return nil, false
	}
	return &jsElement{b: b, v: v}, true
}

func (b *Browser) wrapAll(list js.Value) []Element {
	n := list.Get("length").Int()
	out := make([]Element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &jsElement{b: b, v: list.Index(i)})
	}
	return out
}

type jsEvent struct{ v js.Value }

func (e jsEvent) Type() string {
	if !e.v.Truthy() {
		return ""
	}
	return e.v.Get("type").String()
}

func (e jsEvent) Key() string {
	if !e.v.Truthy() {
		return ""
	}
	k := e.v.Get("key")
	if k.Type() != js.TypeString {
		return ""
	}
	return k.String()
}

func (e jsEvent) PreventDefault() {
	if e.v.Truthy() {
		e.v.Call("preventDefault")
	}
}

type jsDocument struct {
	b *Browser
	v js.Value
}

func (d *jsDocument) AddEventListener(event string, h Handler) { d.b.listen(d.v, event, h) }

func (d *jsDocument) QuerySelector(selector string) (Element, bool) {
	return d.b.wrap(d.v.Call("querySelector", selector))
}

func (d *jsDocument) QuerySelectorAll(selector string) []Element {
	return d.b.wrapAll(d.v.Call("querySelectorAll", selector))
}

func (d *jsDocument) GetElementByID(id string) (Element, bool) {
	return d.b.wrap(d.v.Call("getElementById", id))
}

func (d *jsDocument) DocumentElement() Element {
	return &jsElement{b: d.b, v: d.v.Get("documentElement")}
}
func (d *jsDocument) Body() Element { return &jsElement{b: d.b, v: d.v.Get("body")} }
func (d *jsDocument) Head() Element { return &jsElement{b: d.b, v: d.v.Get("head")} }

func (d *jsDocument) CreateElement(tag string) Element {
	return &jsElement{b: d.b, v: d.v.Call("createElement", tag)}
}

func (d *jsDocument) ReadyState() string { return d.v.Get("readyState").String() }
func (d *jsDocument) Hidden() bool       { return d.v.Get("hidden").Truthy() }

type jsElement struct {
	b *Browser
	v js.Value
}

func (e *jsElement) AddEventListener(event string, h Handler) { e.b.listen(e.v, event, h) }

func (e *jsElement) QuerySelector(selector string) (Element, bool) {
	return e.b.wrap(e.v.Call("querySelector", selector))
}

func (e *jsElement) QuerySelectorAll(selector string) []Element {
	return e.b.wrapAll(e.v.Call("querySelectorAll", selector))
}

func (e *jsElement) TagName() string { return e.v.Get("tagName").String() }
func (e *jsElement) ID() string      { return e.v.Get("id").String() }

func (e *jsElement) Attr(name string) (string, bool) {
	v := e.v.Call("getAttribute", name)
	if v.IsNull() {
		return "", false
	}
	return v.String(), true
}

func (e *jsElement) SetAttr(name, value string) {
	switch name {
	case "class":
		e.v.Set("className", value)
	case "disabled":
		e.v.Set("disabled", value == "true")
	case "value":
		if e.isFormControl() {
			e.v.Set("value", value)
			return
		}
		e.v.Call("setAttribute", name, value)
	default:
		e.v.Call("setAttribute", name, value)
	}
}

func (e *jsElement) isFormControl() bool {
	switch e.TagName() {
	case "INPUT", "TEXTAREA", "SELECT":
		return true
	}
	return false
}

func (e *jsElement) Text() string            { return e.v.Get("textContent").String() }
func (e *jsElement) SetText(text string)     { e.v.Set("textContent", text) }
func (e *jsElement) Placeholder() string     { return e.v.Get("placeholder").String() }
func (e *jsElement) SetPlaceholder(s string) { e.v.Set("placeholder", s) }

func (e *jsElement) Value() string {
	v := e.v.Get("value")
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

func (e *jsElement) SetValue(value string) { e.v.Set("value", value) }
func (e *jsElement) Disabled() bool        { return e.v.Get("disabled").Truthy() }
func (e *jsElement) SetDisabled(d bool)    { e.v.Set("disabled", d) }

func (e *jsElement) Href() string {
	v := e.v.Get("href")
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

func (e *jsElement) ClassName() string         { return e.v.Get("className").String() }
func (e *jsElement) SetClassName(name string)  { e.v.Set("className", name) }
func (e *jsElement) HasClass(name string) bool { return e.classList().Call("contains", name).Bool() }
func (e *jsElement) AddClass(name string)      { e.classList().Call("add", name) }
func (e *jsElement) RemoveClass(name string)   { e.classList().Call("remove", name) }

func (e *jsElement) ToggleClass(name string) bool {
	return e.classList().Call("toggle", name).Bool()
}

func (e *jsElement) classList() js.Value { return e.v.Get("classList") }

func (e *jsElement) Style(property string) string {
	return e.v.Get("style").Call("getPropertyValue", property).String()
}

func (e *jsElement) SetStyle(property, value string) {
	style := e.v.Get("style")
	if value == "" {
		style.Call("removeProperty", property)
		return
	}
	style.Call("setProperty", property, value)
}

func (e *jsElement) OffsetTop() float64    { return e.v.Get("offsetTop").Float() }
func (e *jsElement) OffsetHeight() float64 { return e.v.Get("offsetHeight").Float() }

func (e *jsElement) ScrollIntoView(smooth bool) {
	behavior := "auto"
	if smooth {
		behavior = "smooth"
	}
	e.v.Call("scrollIntoView", map[string]interface{}{
		"behavior": behavior,
		"block":    "start",
	})
}

func (e *jsElement) Click() { e.v.Call("click") }

func (e *jsElement) Reset() {
	if strings.EqualFold(e.TagName(), "FORM") {
		e.v.Call("reset")
	}
}

func (e *jsElement) AppendChild(child Element) {
	c, ok := child.(*jsElement)
	if !ok {
		return
	}
	e.v.Call("appendChild", c.v)
}

type jsWindow struct {
	b *Browser
	v js.Value
}

func (w *jsWindow) AddEventListener(event string, h Handler) { w.b.listen(w.v, event, h) }

func (w *jsWindow) ScrollY() float64    { return w.v.Get("scrollY").Float() }
func (w *jsWindow) InnerWidth() float64 { return w.v.Get("innerWidth").Float() }

// LocalStorage probes window.localStorage; merely reading the property throws
// in some privacy modes.
func (w *jsWindow) LocalStorage() (s Storage, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s, ok = nil, false
		}
	}()
	v := w.v.Get("localStorage")
	if !v.Truthy() {
		return nil, false
	}
	return &jsStorage{v: v}, true
}

func (w *jsWindow) NewIntersectionObserver(opts ObserverOptions, cb IntersectionCallback) (IntersectionObserver, bool) {
	ctor := js.Global().Get("IntersectionObserver")
	if !ctor.Truthy() {
		return nil, false
	}
	fn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) == 0 {
			return nil
		}
		list := args[0]
		n := list.Get("length").Int()
		entries := make([]IntersectionEntry, 0, n)
		for i := 0; i < n; i++ {
			entry := list.Index(i)
			entries = append(entries, IntersectionEntry{
				Target:       &jsElement{b: w.b, v: entry.Get("target")},
				Intersecting: entry.Get("isIntersecting").Bool(),
			})
		}
		cb(entries)
		return nil
	})
	w.b.funcs = append(w.b.funcs, fn)
	obs := ctor.New(fn, map[string]interface{}{
		"threshold":  opts.Threshold,
		"rootMargin": opts.RootMargin,
	})
	return &jsObserver{v: obs}, true
}

func (w *jsWindow) NativeLazyLoading() bool {
	img := js.Global().Get("HTMLImageElement")
	if !img.Truthy() {
		return false
	}
	return js.Global().Get("Reflect").Call("has", img.Get("prototype"), "loading").Bool()
}

type jsObserver struct{ v js.Value }

func (o *jsObserver) Observe(el Element) {
	if e, ok := el.(*jsElement); ok {
		o.v.Call("observe", e.v)
	}
}

func (o *jsObserver) Unobserve(el Element) {
	if e, ok := el.(*jsElement); ok {
		o.v.Call("unobserve", e.v)
	}
}

type jsStorage struct{ v js.Value }

func (s *jsStorage) GetItem(key string) (value string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			value, ok = "", false
		}
	}()
	v := s.v.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", false
	}
	return v.String(), true
}

// SetItem surfaces QuotaExceededError and friends as errors.
func (s *jsStorage) SetItem(key, value string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dom: localStorage.setItem(%q): %v", key, r)
		}
	}()
	s.v.Call("setItem", key, value)
	return nil
}
