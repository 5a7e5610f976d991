//go:build js && wasm

package jsdom

import (
	"syscall/js"

	"github.com/sngm3741/contact-site/internal/site"
)

type observer struct {
	v js.Value
}

func (o observer) Unobserve(target site.RevealTarget) {
	if el, ok := target.(*Element); ok {
		o.v.Call("unobserve", el.v)
	}
}

// ObserveReveal watches targets with an IntersectionObserver and forwards entries to
// r. It reports false when the browser has no IntersectionObserver.
func ObserveReveal(r *site.Revealer, targets []*Element) bool {
	ctor := js.Global().Get("IntersectionObserver")
	if ctor.IsUndefined() {
		return false
	}

	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 2 {
			return nil
		}
		list := args[0]
		entries := make([]site.Intersection, 0, list.Length())
		for i := 0; i < list.Length(); i++ {
			entry := list.Index(i)
			entries = append(entries, site.Intersection{
				Target:       &Element{v: entry.Get("target")},
				Intersecting: entry.Get("isIntersecting").Bool(),
			})
		}
		r.Observe(entries, observer{v: args[1]})
		return nil
	})

	opts := js.Global().Get("Object").New()
	opts.Set("threshold", r.Options.Threshold)
	opts.Set("rootMargin", r.Options.RootMargin)

	obs := ctor.New(cb, opts)
	for _, t := range targets {
		obs.Call("observe", t.v)
	}
	return true
}
