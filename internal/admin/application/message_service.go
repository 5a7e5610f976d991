package application

import (
	"context"
	"strings"

	"github.com/sngm3741/contact-site/internal/public/domain"
)

// NewMessageService returns the admin read model over repo.
func NewMessageService(repo MessageRepository) MessageService {
	return &messageService{repo: repo}
}

type messageService struct {
	repo MessageRepository
}

func (s *messageService) List(ctx context.Context, paging Paging) ([]domain.ContactMessage, error) {
	return s.repo.Find(ctx, paging.Normalize())
}

func (s *messageService) Detail(ctx context.Context, id string) (*domain.ContactMessage, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	return s.repo.FindByID(ctx, id)
}
