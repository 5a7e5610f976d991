package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sngm3741/contact-site/internal/metrics"
	"github.com/sngm3741/contact-site/internal/public/domain"
)

// NotificationConfig wires the notification use-case.
type NotificationConfig struct {
	Mailer   Mailer
	Failures FailedNotificationRepository
	// OwnerEmail receives the owner notice. Empty disables it.
	OwnerEmail string
	Logger     zerolog.Logger
}

// NewNotificationService returns a NotificationService. Failures may be nil.
func NewNotificationService(cfg NotificationConfig) NotificationService {
	return &notificationService{
		mailer:   cfg.Mailer,
		failures: cfg.Failures,
		owner:    strings.TrimSpace(cfg.OwnerEmail),
		logger:   cfg.Logger.With().Str("component", "notification_service").Logger(),
		now:      time.Now,
	}
}

type notificationService struct {
	mailer   Mailer
	failures FailedNotificationRepository
	owner    string
	logger   zerolog.Logger
	now      func() time.Time
}

// Notify sends both mails even when the first fails and returns the joined errors.
func (s *notificationService) Notify(ctx context.Context, msg domain.ContactMessage) error {
	var errs []error
	if err := s.send(ctx, msg, domain.NotificationAcknowledgement, domain.AcknowledgementEmail(msg)); err != nil {
		errs = append(errs, err)
	}
	if s.owner != "" {
		if err := s.send(ctx, msg, domain.NotificationOwnerNotice, domain.OwnerNoticeEmail(msg, s.owner)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *notificationService) send(ctx context.Context, msg domain.ContactMessage, kind string, mail domain.Email) error {
	provider := s.mailer.Name()
	start := s.now()
	err := s.mailer.Send(ctx, mail)
	elapsed := s.now().Sub(start)
	if err == nil {
		metrics.RecordEmailSent(kind, provider, elapsed)
		s.logger.Info().Str("kind", kind).Str("message_id", msg.ID).Str("provider", provider).Msg("email sent")
		return nil
	}

	metrics.RecordEmailFailed(kind, provider, elapsed)
	s.logger.Error().Err(err).Str("kind", kind).Str("message_id", msg.ID).Str("provider", provider).Msg("email send failed")
	s.recordFailure(ctx, domain.FailedNotification{
		Target:    kind,
		MessageID: msg.ID,
		Recipient: mail.To,
		Error:     err.Error(),
		Attempts:  1,
		CreatedAt: s.now().UTC(),
	})
	return fmt.Errorf("send %s: %w", kind, err)
}

func (s *notificationService) recordFailure(ctx context.Context, failure domain.FailedNotification) {
	if s.failures == nil {
		return
	}
	if err := s.failures.Record(ctx, failure); err != nil {
		s.logger.Error().Err(err).Str("message_id", failure.MessageID).Msg("failed to record notification failure")
	}
}
