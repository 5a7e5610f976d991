// Package logger builds the zerolog logger shared by the server, the CLI and the
// browser build.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Options controls the logger shape. Zero values fall back to info level, console
// output and RFC 3339 timestamps.
type Options struct {
	Level      string
	Format     string // "json" or "console"
	TimeFormat string
	NoColor    bool
	Caller     bool
}

// OptionsFromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_TIME_FORMAT, LOG_COLOR and LOG_CALLER.
func OptionsFromEnv() Options {
	return Options{
		Level:      strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		Format:     strings.TrimSpace(os.Getenv("LOG_FORMAT")),
		TimeFormat: strings.TrimSpace(os.Getenv("LOG_TIME_FORMAT")),
		NoColor:    strings.TrimSpace(os.Getenv("LOG_COLOR")) == "0",
		Caller:     strings.TrimSpace(os.Getenv("LOG_CALLER")) == "1",
	}
}

// New returns a logger writing to w and installs it as the zerolog global logger.
func New(w io.Writer, opts Options) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	timeFormat := opts.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	var base zerolog.Logger
	if strings.EqualFold(opts.Format, "json") {
		base = zerolog.New(w)
	} else {
		base = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: timeFormat,
			NoColor:    opts.NoColor,
		})
	}

	l := base.With().Timestamp().Logger().Level(level)
	if opts.Caller {
		l = l.With().Caller().Logger()
	}

	zlog.Logger = l
	return l
}

// FromEnv is New(os.Stdout, OptionsFromEnv()).
func FromEnv() zerolog.Logger {
	return New(os.Stdout, OptionsFromEnv())
}
