package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreMongo    = "mongo"
	StoreDynamoDB = "dynamodb"
)

// Mail drivers.
const (
	MailSES = "ses"
	MailLog = "log"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr string

	StoreDriver                  string
	MongoURI                     string
	MongoDatabase                string
	Timeout                      time.Duration
	MessageCollection            string
	FailedNotificationCollection string
	TableName                    string
	FailedNotificationTable      string
	AWSRegion                    string
	AWSEndpoint                  string

	MailDriver  string
	SenderEmail string
	OwnerEmail  string

	JWTConfigs  []JWTConfig
	JWTAudience string

	MessengerEndpoint  string
	DiscordDestination string
	SlackDestination   string
	MessengerTimeout   time.Duration
	// AdminBaseURL prefixes the message id in chat notification links.
	AdminBaseURL       string

	AllowedOrigins  []string
	SiteContentPath string
	StaticDir       string
	PublicSubmitURL string
}

// ChatEnabled reports whether any messenger destination is configured.
func (c Config) ChatEnabled() bool {
	return c.MessengerEndpoint != "" && (c.DiscordDestination != "" || c.SlackDestination != "")
}

// Load reads environment variables (seeded from .env when present) and returns a
// validated Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	timeout := 10 * time.Second
	if v := os.Getenv("MONGO_CONNECT_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	messengerTimeout := 3 * time.Second
	if raw := strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			messengerTimeout = parsed
		}
	}

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: envOrDefault("AUTH_JWT_ISSUER", "contact-site-auth"),
			Secret: []byte(secret),
		})
	}

	cfg := Config{
		Addr:                         envOrDefault("HTTP_ADDR", ":8080"),
		StoreDriver:                  strings.ToLower(envOrDefault("STORE_DRIVER", StoreMongo)),
		MongoURI:                     envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:                envOrDefault("MONGO_DB", "contact-site"),
		Timeout:                      timeout,
		MessageCollection:            envOrDefault("MESSAGE_COLLECTION", "contact_messages"),
		FailedNotificationCollection: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
		TableName:                    strings.TrimSpace(os.Getenv("TABLE_NAME")),
		FailedNotificationTable:      strings.TrimSpace(os.Getenv("FAILED_NOTIFICATION_TABLE")),
		AWSRegion:                    envOrDefault("AWS_REGION", "ap-northeast-1"),
		AWSEndpoint:                  strings.TrimSpace(os.Getenv("AWS_ENDPOINT_URL")),
		MailDriver:                   strings.ToLower(envOrDefault("MAIL_DRIVER", MailLog)),
		SenderEmail:                  strings.TrimSpace(os.Getenv("SENDER_EMAIL")),
		OwnerEmail:                   strings.TrimSpace(os.Getenv("OWNER_EMAIL")),
		JWTConfigs:                   jwtConfigs,
		JWTAudience:                  strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),
		MessengerEndpoint:            strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_URL")),
		AdminBaseURL:                 strings.TrimSpace(os.Getenv("ADMIN_BASE_URL")),
		DiscordDestination:           strings.TrimSpace(os.Getenv("MESSENGER_DISCORD_INCOMING_DESTINATION")),
		SlackDestination:             strings.TrimSpace(os.Getenv("MESSENGER_SLACK_DESTINATION")),
		MessengerTimeout:             messengerTimeout,
		AllowedOrigins:               parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		SiteContentPath:              strings.TrimSpace(os.Getenv("SITE_CONTENT_PATH")),
		StaticDir:                    envOrDefault("STATIC_DIR", "web/static"),
		PublicSubmitURL:              envOrDefault("PUBLIC_SUBMIT_URL", "/submit"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the driver-dependent required values.
func (c Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI must be configured"))
		}
	case StoreDynamoDB:
		if c.TableName == "" {
			errs = append(errs, errors.New("TABLE_NAME must be configured for the dynamodb store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver))
	}

	switch c.MailDriver {
	case MailSES:
		if c.SenderEmail == "" {
			errs = append(errs, errors.New("SENDER_EMAIL must be configured for the ses mail driver"))
		}
		if c.OwnerEmail == "" {
			errs = append(errs, errors.New("OWNER_EMAIL must be configured for the ses mail driver"))
		}
	case MailLog:
	default:
		errs = append(errs, fmt.Errorf("unsupported MAIL_DRIVER %q", c.MailDriver))
	}

	if len(c.JWTConfigs) == 0 {
		errs = append(errs, errors.New("JWT secret not configured. Set AUTH_JWT_SECRET"))
	}

	return errors.Join(errs...)
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
