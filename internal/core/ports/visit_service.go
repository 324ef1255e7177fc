package ports

import (
	"context"
	"time"

	"github.com/fieldtrack/visits-api/internal/core/domain"
)

// CreateVisitInput carries all data needed to create a visit.
type CreateVisitInput struct {
	// UserID is optional. When set it must equal the acting principal.
	UserID         string
	StoreID        string
	VisitDate      time.Time
	Status         domain.VisitStatus
	IdempotencyKey string
}

// CreateVisitResult wraps the created visit.
type CreateVisitResult struct {
	Visit *domain.Visit
	// AlreadyExisted is true when the Idempotency-Key matched an earlier visit.
	AlreadyExisted bool
}

// AttachPhotoInput carries a base64 encoded image for a visit.
type AttachPhotoInput struct {
	VisitID     string
	ProductID   string
	Base64Image string
}

// VisitService is the Visit Lifecycle Manager.
type VisitService interface {
	CreateVisit(ctx context.Context, principal domain.Principal, in CreateVisitInput) (*CreateVisitResult, error)
	CompleteVisit(ctx context.Context, principal domain.Principal, visitID string) (*domain.Visit, error)
	ListVisits(ctx context.Context, principal domain.Principal, page, pageSize int) ([]*domain.Visit, error)
	AttachPhoto(ctx context.Context, principal domain.Principal, in AttachPhotoInput) (*domain.Photo, error)
}
