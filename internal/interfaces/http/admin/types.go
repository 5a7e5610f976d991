package admin

import (
	"time"

	"github.com/sngm3741/contact-site/internal/public/domain"
)

type messageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Timestamp string    `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
}

type messageListResponse struct {
	Items []messageResponse `json:"items"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// messageToResponse は ContactMessage を Admin UI 用レスポンスへ変換する。
func messageToResponse(msg domain.ContactMessage) messageResponse {
	return messageResponse{
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Message:   msg.Message,
		Timestamp: msg.Timestamp(),
		CreatedAt: msg.CreatedAt.UTC(),
	}
}
