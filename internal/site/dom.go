// Package site holds the page enhancements of the marketing site: the contact form
// submitter, the mobile navigation toggle, scroll reveal and the footer year stamp.
//
// Nothing here touches a browser directly. Every element the components act on is
// passed in through the small interfaces below so the same code runs under js/wasm
// (see package jsdom), from the CLI, and in tests.
package site

import (
	"net/http"
	"time"
)

// Form is the contact form element.
type Form interface {
	// Value returns the current value of the named field, "" when absent.
	Value(name string) string
	// Reset restores every field to its initial (empty) value.
	Reset()
}

// TextNode is an element whose text content can be replaced.
type TextNode interface {
	SetText(text string)
}

// ClassList mirrors Element.classList.
type ClassList interface {
	Add(class string)
	Remove(class string)
	// Toggle flips class and reports whether it is now present.
	Toggle(class string) bool
}

// AttributeSetter sets a single attribute on an element.
type AttributeSetter interface {
	SetAttribute(name, value string)
}

// Event is the DOM event delivered to a handler.
type Event interface {
	PreventDefault()
}

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Clock schedules delayed callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func())
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// RealClock returns a Clock backed by time.AfterFunc.
func RealClock() Clock { return realClock{} }
