//go:build js && wasm

// Package jsdom adapts browser DOM values to the interfaces of package site.
package jsdom

import (
	"syscall/js"

	"github.com/sngm3741/contact-site/internal/site"
)

// Element wraps a DOM element.
type Element struct {
	v js.Value
}

var (
	_ site.ClassList       = (*Element)(nil)
	_ site.AttributeSetter = (*Element)(nil)
	_ site.TextNode        = (*Element)(nil)
)

// Wrap returns nil for null or undefined values.
func Wrap(v js.Value) *Element {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &Element{v: v}
}

func (e *Element) JSValue() js.Value { return e.v }

func (e *Element) Add(class string)    { e.v.Get("classList").Call("add", class) }
func (e *Element) Remove(class string) { e.v.Get("classList").Call("remove", class) }

func (e *Element) Toggle(class string) bool {
	return e.v.Get("classList").Call("toggle", class).Bool()
}

func (e *Element) SetAttribute(name, value string) { e.v.Call("setAttribute", name, value) }

// Attribute returns "" when the attribute is missing.
func (e *Element) Attribute(name string) string {
	v := e.v.Call("getAttribute", name)
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}

func (e *Element) SetText(text string) { e.v.Set("textContent", text) }

// On registers listener for event type and returns the js.Func so callers can
// release it. Pages keep their listeners for their whole lifetime.
func (e *Element) On(event string, listener func(ev js.Value)) js.Func {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) > 0 {
			listener(args[0])
		}
		return nil
	})
	e.v.Call("addEventListener", event, fn)
	return fn
}

// Form reads fields through FormData at the moment of the call.
type Form struct {
	*Element
}

var _ site.Form = (*Form)(nil)

func (f *Form) Value(name string) string {
	data := js.Global().Get("FormData").New(f.v)
	v := data.Call("get", name)
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}

func (f *Form) Reset() { f.v.Call("reset") }

// Event wraps a DOM event.
type Event struct {
	v js.Value
}

func WrapEvent(v js.Value) Event { return Event{v: v} }

func (e Event) PreventDefault() { e.v.Call("preventDefault") }

// TargetIsAnchor reports whether the event target is an <a> element.
func (e Event) TargetIsAnchor() bool {
	anchor := js.Global().Get("HTMLAnchorElement")
	if anchor.IsUndefined() {
		return false
	}
	return e.v.Get("target").InstanceOf(anchor)
}

func document() js.Value { return js.Global().Get("document") }

// Query returns the first element matching selector, or nil.
func Query(selector string) *Element {
	return Wrap(document().Call("querySelector", selector))
}

// QueryAll returns all elements matching selector.
func QueryAll(selector string) []*Element {
	list := document().Call("querySelectorAll", selector)
	out := make([]*Element, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		if el := Wrap(list.Index(i)); el != nil {
			out = append(out, el)
		}
	}
	return out
}

// ByID returns the element with the given id, or nil.
func ByID(id string) *Element {
	return Wrap(document().Call("getElementById", id))
}

// QueryForm returns the first form matching selector, or nil.
func QueryForm(selector string) *Form {
	el := Query(selector)
	if el == nil {
		return nil
	}
	return &Form{Element: el}
}
