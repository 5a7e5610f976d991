// Package site serves the landing page and its static assets.
package site

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// StaticPrefix is where the built assets are mounted.
const StaticPrefix = "/static"

// Config provides dependencies for Handler.
type Config struct {
	Logger    zerolog.Logger
	Content   Content
	Endpoint  string
	StaticDir string
}

// Handler renders the landing page.
type Handler struct {
	logger    zerolog.Logger
	page      templ.Component
	staticDir string
}

func NewHandler(cfg Config) *Handler {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = "/submit"
	}
	return &Handler{
		logger: cfg.Logger.With().Str("component", "site_http").Logger(),
		page: Page(PageData{
			Content:      cfg.Content,
			Endpoint:     endpoint,
			StaticPrefix: StaticPrefix,
		}),
		staticDir: strings.TrimSpace(cfg.StaticDir),
	}
}

// Register mounts the page and, when a directory is configured, the assets.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.pageHandler())
	if h.staticDir != "" {
		fs := http.StripPrefix(StaticPrefix+"/", http.FileServer(http.Dir(h.staticDir)))
		r.Get(StaticPrefix+"/*", fs.ServeHTTP)
	}
}

func (h *Handler) pageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.page.Render(r.Context(), w); err != nil {
			h.logger.Error().Err(err).Msg("landing page render failed")
			http.Error(w, "render failed", http.StatusInternalServerError)
		}
	}
}
