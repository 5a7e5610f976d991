package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sngm3741/contact-site/internal/public/domain"
)

// NewContactCommandService returns a ContactCommandService storing into repo.
func NewContactCommandService(repo MessageRepository) ContactCommandService {
	return &contactCommandService{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

type contactCommandService struct {
	repo  MessageRepository
	now   func() time.Time
	newID func() string
}

func (s *contactCommandService) Submit(ctx context.Context, cmd SubmitContactCommand) (*domain.ContactMessage, error) {
	msg := &domain.ContactMessage{
		ID:        s.newID(),
		Name:      strings.TrimSpace(cmd.Name),
		Email:     strings.TrimSpace(cmd.Email),
		Message:   cmd.Message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("save contact message: %w", err)
	}
	return msg, nil
}
