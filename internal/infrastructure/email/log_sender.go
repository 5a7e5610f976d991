package email

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sngm3741/contact-site/internal/public/domain"
)

// LogSender is a development sender. It writes each mail to the log and keeps a copy.
//
// MAIL_FAKE_FAIL=1 makes every send fail, for exercising the failure path locally.
type LogSender struct {
	lg zerolog.Logger

	mu   sync.Mutex
	sent []domain.Email
}

func NewLogSender(lg zerolog.Logger) *LogSender {
	return &LogSender{
		lg: lg.With().Str("component", "log_sender").Logger(),
	}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) Send(ctx context.Context, mail domain.Email) error {
	s.lg.Info().
		Str("to", mail.To).
		Str("subject", mail.Subject).
		Str("body", mail.Body).
		Msg("FAKE send email")

	if fail := strings.TrimSpace(os.Getenv("MAIL_FAKE_FAIL")); fail == "1" || strings.EqualFold(fail, "true") {
		return fmt.Errorf("fake failure sending to %s", mail.To)
	}

	s.mu.Lock()
	s.sent = append(s.sent, mail)
	s.mu.Unlock()
	return nil
}

// Sent returns the mails delivered so far.
func (s *LogSender) Sent() []domain.Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Email, len(s.sent))
	copy(out, s.sent)
	return out
}
