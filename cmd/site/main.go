//go:build js && wasm

// Command site is the browser build of the page enhancements. Build with
//
//	make site-wasm
//
// The contact endpoint is read from the form's data-endpoint attribute; the
// link-time default below is used when the attribute is absent.
package main

import (
	"context"
	"net/http"
	"os"
	"syscall/js"
	"time"

	"github.com/sngm3741/contact-site/internal/logger"
	"github.com/sngm3741/contact-site/internal/site"
	"github.com/sngm3741/contact-site/internal/site/jsdom"
)

var defaultEndpoint = "/submit"

func main() {
	log := logger.New(os.Stdout, logger.Options{NoColor: true})

	if year := jsdom.ByID("year"); year != nil {
		site.StampYear(year, time.Now())
	}

	toggle := jsdom.Query(".nav-toggle")
	menu := jsdom.ByID("nav-menu")
	if toggle != nil && menu != nil {
		nav := site.NewNavToggle(menu, toggle)
		toggle.On("click", func(js.Value) { nav.Toggle() })
		menu.On("click", func(ev js.Value) {
			nav.MenuClicked(jsdom.WrapEvent(ev).TargetIsAnchor())
		})
	}

	revealer := site.NewRevealer()
	items := jsdom.QueryAll("[" + site.RevealAttribute + "]")
	if !jsdom.ObserveReveal(revealer, items) {
		targets := make([]site.RevealTarget, 0, len(items))
		for _, el := range items {
			targets = append(targets, el)
		}
		revealer.RevealAll(targets)
	}

	form := jsdom.QueryForm(".contact-form")
	note := jsdom.Query(".form-note")
	if form != nil && note != nil {
		endpoint := form.Attribute("data-endpoint")
		if endpoint == "" {
			endpoint = defaultEndpoint
		}
		submitter := site.NewSubmitter(site.SubmitterConfig{
			Endpoint: endpoint,
			Client:   http.DefaultClient,
			Form:     form,
			Status:   note,
			Logger:   log,
		})
		form.On("submit", func(ev js.Value) {
			submitter.HandleSubmitAsync(context.Background(), jsdom.WrapEvent(ev))
		})
	}

	log.Debug().Msg("site enhancements ready")
	select {}
}
