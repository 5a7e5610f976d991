package site

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.906 generate -f page.templ

import "github.com/a-h/templ"

// PageData is everything the landing page renders.
type PageData struct {
	Content  Content
	Endpoint string
	// StaticPrefix is the URL path the assets are served under.
	StaticPrefix string
}

// wasmBoot is the inline script that starts the browser module.
func wasmBoot(prefix string) templ.Component {
	src, err := templ.JSONString(prefix + "/site.wasm")
	return templ.Raw(`<script>const go = new Go();WebAssembly.instantiateStreaming(fetch(`+src+
		`), go.importObject).then((r) => go.run(r.instance));</script>`, err)
}
