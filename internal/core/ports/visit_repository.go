package ports

import (
	"context"
	"io"
	"time"

	"github.com/fieldtrack/visits-api/internal/core/domain"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// NewPage applies defaults and the size cap: number < 1 becomes 1, size < 1
// becomes DefaultPageSize, size > MaxPageSize becomes MaxPageSize.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// Skip returns the number of rows preceding the page.
func (p Page) Skip() int64 {
	if p.Number < 1 {
		return 0
	}
	return int64((p.Number - 1) * p.Size)
}

// VisitRepository defines persistence operations for visits.
type VisitRepository interface {
	// FindByID returns domain.ErrVisitNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.Visit, error)
	Create(ctx context.Context, v *domain.Visit) error
	// UpdateStatus atomically moves the visit owned by ownerID from one status
	// to another. It returns domain.ErrVisitNotFound when no document matches
	// id, owner and from status together.
	UpdateStatus(ctx context.Context, id, ownerID string, from, to domain.VisitStatus, at time.Time) (*domain.Visit, error)
	// ListByOwner filters by owner in the query itself.
	ListByOwner(ctx context.Context, ownerID string, page Page) ([]*domain.Visit, error)
	ListAll(ctx context.Context, page Page) ([]*domain.Visit, error)
}

// PhotoRepository persists photo metadata.
type PhotoRepository interface {
	Create(ctx context.Context, p *domain.Photo) error
}

// PhotoStorage stores photo payloads.
type PhotoStorage interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore remembers which visit a client-supplied Idempotency-Key
// produced. Keys are scoped per user.
type IdempotencyStore interface {
	Lookup(ctx context.Context, userID, key string) (visitID string, found bool, err error)
	Remember(ctx context.Context, userID, key, visitID string) error
}
