package application

import (
	"context"

	"github.com/sngm3741/contact-site/internal/public/domain"
)

// MessageRepository persists contact messages.
// MessageRepository は Public コンテキストでお問い合わせを書き込むためのポート。
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) error
}

// FailedNotificationRepository keeps undelivered notifications for later follow-up.
type FailedNotificationRepository interface {
	Record(ctx context.Context, failure domain.FailedNotification) error
}

// Mailer delivers a single plain-text email.
type Mailer interface {
	Send(ctx context.Context, mail domain.Email) error
	Name() string
}

// SubmitContactCommand captures the submitted form.
type SubmitContactCommand struct {
	Name    string
	Email   string
	Message string
}

// ContactCommandService handles the contact form write use-case.
type ContactCommandService interface {
	Submit(ctx context.Context, cmd SubmitContactCommand) (*domain.ContactMessage, error)
}

// NotificationService sends the acknowledgement and owner notice for a stored message.
type NotificationService interface {
	Notify(ctx context.Context, msg domain.ContactMessage) error
}
