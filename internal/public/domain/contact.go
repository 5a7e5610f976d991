package domain

import (
	"fmt"
	"time"
)

// ContactMessage is a stored contact form submission.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

// Timestamp is the wire and storage form of CreatedAt.
func (m ContactMessage) Timestamp() string {
	return m.CreatedAt.UTC().Format(time.RFC3339Nano)
}

// Email is a plain-text mail.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Notification kinds.
const (
	NotificationAcknowledgement = "acknowledgement"
	NotificationOwnerNotice     = "owner_notice"
	NotificationChat            = "chat"
)

// FailedNotification records a mail or chat message that could not be delivered.
type FailedNotification struct {
	Target    string
	MessageID string
	Recipient string
	Error     string
	Attempts  int
	CreatedAt time.Time
}

// AcknowledgementEmail is sent to the submitter.
func AcknowledgementEmail(msg ContactMessage) Email {
	return Email{
		To:      msg.Email,
		Subject: "Thank you for contacting us",
		Body:    fmt.Sprintf("Hello %s,\n\nWe received your message and will reply soon.\n\nBest regards", msg.Name),
	}
}

// OwnerNoticeEmail forwards the submission to the site owner.
func OwnerNoticeEmail(msg ContactMessage, owner string) Email {
	return Email{
		To:      owner,
		Subject: fmt.Sprintf("New contact from %s", msg.Name),
		Body:    fmt.Sprintf("From: %s\nEmail: %s\n\n%s", msg.Name, msg.Email, msg.Message),
	}
}
