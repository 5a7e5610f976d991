package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/contact-site/internal/public/domain"
)

func TestContactCommandService_Submit(t *testing.T) {
	repo := &mockRepository{}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(msg *domain.ContactMessage) bool {
		return msg.ID == "id-1" && msg.Name == "Alice" && msg.Email == "a@x.com" && msg.Message == " hi "
	})).Return(nil)

	jst := time.FixedZone("JST", 9*60*60)
	svc := &contactCommandService{
		repo:  repo,
		now:   func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, jst) },
		newID: func() string { return "id-1" },
	}

	msg, err := svc.Submit(context.Background(), SubmitContactCommand{Name: " Alice ", Email: "a@x.com ", Message: " hi "})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, msg.CreatedAt.Location())
	assert.Equal(t, 0, msg.CreatedAt.Hour())
	repo.AssertExpectations(t)
}

func TestContactCommandService_SubmitRepositoryError(t *testing.T) {
	repo := &mockRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	svc := NewContactCommandService(repo)
	msg, err := svc.Submit(context.Background(), SubmitContactCommand{Name: "Alice", Email: "a@x.com", Message: "hi"})

	assert.Nil(t, msg)
	assert.ErrorContains(t, err, "save contact message")
	assert.ErrorContains(t, err, "disk full")
}

func TestNewContactCommandServiceGeneratesIDs(t *testing.T) {
	repo := &mockRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewContactCommandService(repo)
	a, err := svc.Submit(context.Background(), SubmitContactCommand{Name: "A"})
	require.NoError(t, err)
	b, err := svc.Submit(context.Background(), SubmitContactCommand{Name: "B"})
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}
