package mongo

import (
	"time"

	"github.com/sngm3741/contact-site/internal/public/domain"
)

// ContactMessageDocument は MongoDB 上でのお問い合わせスキーマを Go 構造体として表現したもの。
type ContactMessageDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Message   string    `bson:"message"`
	Timestamp string    `bson:"timestamp"`
	CreatedAt time.Time `bson:"createdAt"`
}

// FailedNotificationDocument は送信できなかった通知を後追いするためのドキュメント。
type FailedNotificationDocument struct {
	Target      string    `bson:"target"`
	MessageID   string    `bson:"messageId"`
	Recipient   string    `bson:"recipient,omitempty"`
	Error       string    `bson:"error"`
	Attempts    int       `bson:"attempts"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"createdAt"`
	LastTriedAt time.Time `bson:"lastTriedAt"`
}

func newContactMessageDocument(msg domain.ContactMessage) ContactMessageDocument {
	return ContactMessageDocument{
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Message:   msg.Message,
		Timestamp: msg.Timestamp(),
		CreatedAt: msg.CreatedAt.UTC(),
	}
}

func mapContactMessageDocument(doc ContactMessageDocument) domain.ContactMessage {
	return domain.ContactMessage{
		ID:        doc.ID,
		Name:      doc.Name,
		Email:     doc.Email,
		Message:   doc.Message,
		CreatedAt: doc.CreatedAt.UTC(),
	}
}

func newFailedNotificationDocument(f domain.FailedNotification) FailedNotificationDocument {
	createdAt := f.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	return FailedNotificationDocument{
		Target:      f.Target,
		MessageID:   f.MessageID,
		Recipient:   f.Recipient,
		Error:       f.Error,
		Attempts:    f.Attempts,
		Status:      "pending",
		CreatedAt:   createdAt,
		LastTriedAt: createdAt,
	}
}
