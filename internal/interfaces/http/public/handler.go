package public

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	publicapp "github.com/sngm3741/contact-site/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger             zerolog.Logger
	contacts           publicapp.ContactCommandService
	notifications      publicapp.NotificationService
	failures           publicapp.FailedNotificationRepository
	httpClient         *http.Client
	messengerEndpoint  string
	discordDestination string
	slackDestination   string
	adminBaseURL       string
	notifyTimeout      time.Duration
	retryDelay         time.Duration

	// async runs detached work; tests replace it to run inline.
	async func(func())
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger             zerolog.Logger
	Contacts           publicapp.ContactCommandService
	Notifications      publicapp.NotificationService
	Failures           publicapp.FailedNotificationRepository
	HTTPClient         *http.Client
	MessengerEndpoint  string
	DiscordDestination string
	SlackDestination   string
	// AdminBaseURL links chat notifications to the admin message view.
	AdminBaseURL string
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 3 * time.Second}
	}
	return &Handler{
		logger:             cfg.Logger.With().Str("component", "public_http").Logger(),
		contacts:           cfg.Contacts,
		notifications:      cfg.Notifications,
		failures:           cfg.Failures,
		httpClient:         client,
		messengerEndpoint:  strings.TrimSpace(cfg.MessengerEndpoint),
		discordDestination: strings.TrimSpace(cfg.DiscordDestination),
		slackDestination:   strings.TrimSpace(cfg.SlackDestination),
		adminBaseURL:       strings.TrimSpace(cfg.AdminBaseURL),
		notifyTimeout:      15 * time.Second,
		retryDelay:         200 * time.Millisecond,
		async:              func(f func()) { go f() },
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/submit", h.submitHandler())
}
