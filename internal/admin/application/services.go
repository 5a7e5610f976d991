package application

import (
	"context"
	"errors"
	"math"

	"github.com/sngm3741/contact-site/internal/public/domain"
)

// ErrNotFound is returned when a message id does not exist.
var ErrNotFound = errors.New("not found")

// MessageRepository exposes admin reads on contact messages.
type MessageRepository interface {
	// Find returns messages newest first.
	Find(ctx context.Context, paging Paging) ([]domain.ContactMessage, error)
	FindByID(ctx context.Context, id string) (*domain.ContactMessage, error)
}

// Paging controls pagination.
type Paging struct {
	Page  int
	Limit int
}

// Offset is the number of records skipped before this page. It saturates
// at math.MaxInt instead of wrapping.
func (p Paging) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Default and maximum page sizes, and the highest page number served.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	MaxPage          = 100000
)

// Normalize clamps Page and Limit into range.
func (p Paging) Normalize() Paging {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// MessageService describes admin message use-cases.
type MessageService interface {
	List(ctx context.Context, paging Paging) ([]domain.ContactMessage, error)
	Detail(ctx context.Context, id string) (*domain.ContactMessage, error)
}
