package site

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadContentDefault(t *testing.T) {
	c, err := LoadContent("")
	require.NoError(t, err)
	assert.Equal(t, "Northwind Studio", c.Title)
	assert.NotEmpty(t, c.Nav)
	assert.NotEmpty(t, c.Sections)
	assert.Equal(t, "Send", c.Contact.SubmitLabel)
}

func TestLoadContentFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Acme\nsections:\n  - heading: One\n    body: Two\n"), 0o600))

	c, err := LoadContent(path)
	require.NoError(t, err)
	assert.Equal(t, "Acme", c.Brand)
	assert.Equal(t, "Acme", c.Footer)
	assert.Equal(t, "Contact", c.Contact.Heading)

	_, err = LoadContent(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseContentRequiresTitle(t *testing.T) {
	_, err := ParseContent([]byte("brand: x\n"))
	assert.Error(t, err)
	_, err = ParseContent([]byte("title: [unterminated"))
	assert.Error(t, err)
}

func TestPageMarkup(t *testing.T) {
	c, err := LoadContent("")
	require.NoError(t, err)
	c.Sections = append(c.Sections, Section{Heading: "<script>", Body: "a & b"})

	var buf bytes.Buffer
	require.NoError(t, Page(PageData{Content: c, Endpoint: "https://api.example/submit", StaticPrefix: "/static"}).Render(context.Background(), &buf))
	html := buf.String()

	assert.Contains(t, html, `class="nav-toggle"`)
	assert.Contains(t, html, `id="nav-menu"`)
	assert.Contains(t, html, `data-reveal`)
	assert.Contains(t, html, `class="contact-form" data-endpoint="https://api.example/submit"`)
	assert.Contains(t, html, `name="name"`)
	assert.Contains(t, html, `name="email"`)
	assert.Contains(t, html, `name="message"`)
	assert.Contains(t, html, `class="form-note"`)
	assert.Contains(t, html, `id="year"`)
	assert.Contains(t, html, `/static/site.wasm`)
	assert.Contains(t, html, `&lt;script&gt;`)
	assert.Contains(t, html, `a &amp; b`)
}

func TestPageKeepsNativeFormValidation(t *testing.T) {
	c, err := LoadContent("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Page(PageData{Content: c, Endpoint: "/submit", StaticPrefix: StaticPrefix}).Render(context.Background(), &buf))
	html := buf.String()

	assert.NotContains(t, html, "novalidate")
	assert.Contains(t, html, `<form class="contact-form" data-endpoint="/submit">`)
	assert.Contains(t, html, `type="text" name="name" required`)
	assert.Contains(t, html, `type="email" name="email" required`)
	assert.Contains(t, html, `name="message" rows="5" required`)
}

func TestPageSanitizesNavLinks(t *testing.T) {
	c, err := LoadContent("")
	require.NoError(t, err)
	c.Nav = []NavLink{{Label: "Bad", Href: "javascript:alert(1)"}, {Label: "About", Href: "#about"}}

	var buf bytes.Buffer
	require.NoError(t, Page(PageData{Content: c, Endpoint: "/submit", StaticPrefix: StaticPrefix}).Render(context.Background(), &buf))
	html := buf.String()

	assert.NotContains(t, html, "javascript:alert")
	assert.Contains(t, html, `<a href="#about">About</a>`)
	assert.Contains(t, html, `<script src="/static/wasm_exec.js"></script>`)
	assert.Contains(t, html, `fetch("/static/site.wasm")`)
}

func TestHandlerServesPageAndStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site.css"), []byte("body{}"), 0o600))

	c, err := LoadContent("")
	require.NoError(t, err)
	r := chi.NewRouter()
	NewHandler(Config{Logger: zerolog.Nop(), Content: c, StaticDir: dir}).Register(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `data-endpoint="/submit"`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body{}", rec.Body.String())
}

func TestHandlerServesRepositoryStylesheet(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "..", "web", "static")
	c, err := LoadContent("")
	require.NoError(t, err)
	r := chi.NewRouter()
	NewHandler(Config{Logger: zerolog.Nop(), Content: c, StaticDir: dir}).Register(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, ".nav-menu.open")
	assert.Contains(t, body, "[data-reveal].revealed")
	assert.Contains(t, body, ".form-note")
}
