package application

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sngm3741/contact-site/internal/public/domain"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, mail domain.Email) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}

func (m *mockMailer) Name() string { return "mock" }

type mockFailures struct {
	mock.Mock
}

func (m *mockFailures) Record(ctx context.Context, failure domain.FailedNotification) error {
	args := m.Called(ctx, failure)
	return args.Error(0)
}
