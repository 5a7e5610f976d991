package admin

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	adminapp "github.com/sngm3741/contact-site/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger   zerolog.Logger
	messages adminapp.MessageService
}

// Config provides dependencies for Handler.
type Config struct {
	Logger   zerolog.Logger
	Messages adminapp.MessageService
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:   cfg.Logger.With().Str("component", "admin_http").Logger(),
		messages: cfg.Messages,
	}
}

// Register mounts admin routes onto router. Authentication is applied by the caller.
func (h *Handler) Register(r chi.Router) {
	r.Get("/messages", h.messageListHandler())
	r.Get("/messages/{id}", h.messageDetailHandler())
	r.Get("/auth/verify", h.authVerifyHandler())
}
