package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fieldtrack/visits-api/internal/infrastructure/metrics"
	"github.com/fieldtrack/visits-api/internal/core/domain"
	"github.com/fieldtrack/visits-api/internal/core/ports"
)

// VisitDeps groups the collaborators of VisitService.
type VisitDeps struct {
	Visits      ports.VisitRepository
	Photos      ports.PhotoRepository
	Blobs       ports.PhotoStorage
	Stores      ports.StoreRepository
	Products    ports.ProductRepository
	Idempotency ports.IdempotencyStore // optional
}

// VisitService owns visit state transitions and photo attachment. Every
// mutation is checked against the acting principal before it is applied.
type VisitService struct {
	visits      ports.VisitRepository
	photos      ports.PhotoRepository
	blobs       ports.PhotoStorage
	stores      ports.StoreRepository
	products    ports.ProductRepository
	idempotency ports.IdempotencyStore
	logger      zerolog.Logger
	now         func() time.Time
}

func NewVisitService(deps VisitDeps, logger zerolog.Logger) *VisitService {
	return &VisitService{
		visits:      deps.Visits,
		photos:      deps.Photos,
		blobs:       deps.Blobs,
		stores:      deps.Stores,
		products:    deps.Products,
		idempotency: deps.Idempotency,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateVisit records a visit owned by the principal. A caller-supplied
// UserID naming someone else is rejected, never overridden.
func (s *VisitService) CreateVisit(ctx context.Context, principal domain.Principal, in ports.CreateVisitInput) (*ports.CreateVisitResult, error) {
	if err := s.requireRole(principal, domain.RoleStandard); err != nil {
		return nil, err
	}
	if in.UserID != "" {
		if err := s.requireOwnership(principal, in.UserID); err != nil {
			s.logger.Warn().Str("user_id", principal.UserID).Str("requested_owner", in.UserID).Msg("visit creation on behalf of another user rejected")
			return nil, err
		}
	}

	status := in.Status
	if status == "" {
		status = domain.VisitCreated
	}
	if status != domain.VisitCreated {
		return nil, fmt.Errorf("visits must start as %s: %w", domain.VisitCreated, domain.ErrInvalidTransition)
	}
	if in.StoreID == "" || in.VisitDate.IsZero() {
		return nil, fmt.Errorf("store id and visit date are required: %w", domain.ErrInvalidInput)
	}

	if existing := s.replay(ctx, principal.UserID, in.IdempotencyKey); existing != nil {
		return &ports.CreateVisitResult{Visit: existing, AlreadyExisted: true}, nil
	}

	if _, err := s.stores.FindByID(ctx, in.StoreID); err != nil {
		return nil, fmt.Errorf("create visit: %w", err)
	}

	now := s.now()
	visit := &domain.Visit{
		ID:        uuid.NewString(),
		UserID:    principal.UserID,
		StoreID:   in.StoreID,
		VisitDate: in.VisitDate.UTC(),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.visits.Create(ctx, visit); err != nil {
		s.logger.Error().Err(err).Msg("failed to create visit")
		return nil, fmt.Errorf("create visit: %w", err)
	}

	if in.IdempotencyKey != "" && s.idempotency != nil {
		if err := s.idempotency.Remember(ctx, principal.UserID, in.IdempotencyKey, visit.ID); err != nil {
			s.logger.Warn().Err(err).Str("visit_id", visit.ID).Msg("failed to store idempotency key")
		}
	}

	metrics.VisitsCreatedTotal.Inc()
	s.logger.Info().Str("visit_id", visit.ID).Str("user_id", visit.UserID).Str("store_id", visit.StoreID).Msg("visit created")

	return &ports.CreateVisitResult{Visit: visit}, nil
}

// replay returns the visit an earlier request with the same key produced, or
// nil. Store failures fall through to a normal create.
func (s *VisitService) replay(ctx context.Context, userID, key string) *domain.Visit {
	if key == "" || s.idempotency == nil {
		return nil
	}
	visitID, found, err := s.idempotency.Lookup(ctx, userID, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !found {
		return nil
	}
	visit, err := s.visits.FindByID(ctx, visitID)
	if err != nil || !visit.OwnedBy(userID) {
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Str("visit_id", visit.ID).Msg("idempotent replay")
	return visit
}

// CompleteVisit moves a visit to Completed. Ownership is verified before the
// write, and the write itself is conditional on owner and current status.
// Completing an already completed visit is a no-op for its owner.
func (s *VisitService) CompleteVisit(ctx context.Context, principal domain.Principal, visitID string) (*domain.Visit, error) {
	if err := s.requireRole(principal, domain.RoleStandard); err != nil {
		return nil, err
	}

	visit, err := s.visits.FindByID(ctx, visitID)
	if err != nil {
		return nil, fmt.Errorf("complete visit: %w", err)
	}
	if err := s.requireOwnership(principal, visit.UserID); err != nil {
		s.logger.Warn().Str("user_id", principal.UserID).Str("visit_id", visitID).Msg("ownership check failed")
		return nil, err
	}

	if visit.Status == domain.VisitCompleted {
		return visit, nil
	}
	if !visit.Status.CanTransitionTo(domain.VisitCompleted) {
		return nil, fmt.Errorf("complete visit: %w (from %s)", domain.ErrInvalidTransition, visit.Status)
	}

	updated, err := s.visits.UpdateStatus(ctx, visit.ID, principal.UserID, visit.Status, domain.VisitCompleted, s.now())
	if errors.Is(err, domain.ErrVisitNotFound) {
		// Lost a race: another request completed or removed it in between.
		current, findErr := s.visits.FindByID(ctx, visitID)
		if findErr != nil {
			return nil, fmt.Errorf("complete visit: %w", findErr)
		}
		if current.OwnedBy(principal.UserID) && current.Status == domain.VisitCompleted {
			return current, nil
		}
		return nil, fmt.Errorf("complete visit: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("complete visit: %w", err)
	}

	metrics.VisitsCompletedTotal.Inc()
	s.logger.Info().Str("visit_id", updated.ID).Str("user_id", principal.UserID).Msg("visit completed")
	return updated, nil
}

// ListVisits returns every visit to an Admin and only owned visits to anyone
// else. The owner filter is pushed down to the repository query.
func (s *VisitService) ListVisits(ctx context.Context, principal domain.Principal, page, pageSize int) ([]*domain.Visit, error) {
	if err := RequireAuthenticated(principal); err != nil {
		return nil, err
	}

	p := ports.NewPage(page, pageSize)

	var (
		visits []*domain.Visit
		err    error
	)
	if principal.Role == domain.RoleAdmin {
		visits, err = s.visits.ListAll(ctx, p)
	} else {
		visits, err = s.visits.ListByOwner(ctx, principal.UserID, p)
	}
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	return visits, nil
}

// AttachPhoto stores a product photo against a visit owned by the principal.
func (s *VisitService) AttachPhoto(ctx context.Context, principal domain.Principal, in ports.AttachPhotoInput) (*domain.Photo, error) {
	if err := s.requireRole(principal, domain.RoleStandard); err != nil {
		return nil, err
	}
	if in.Base64Image == "" {
		return nil, fmt.Errorf("base64 photo data is required: %w", domain.ErrInvalidInput)
	}
	payload, err := base64.StdEncoding.DecodeString(in.Base64Image)
	if err != nil || len(payload) == 0 {
		return nil, fmt.Errorf("photo data is not valid base64: %w", domain.ErrInvalidInput)
	}

	visit, err := s.visits.FindByID(ctx, in.VisitID)
	if err != nil {
		return nil, fmt.Errorf("attach photo: %w", err)
	}
	if err := s.requireOwnership(principal, visit.UserID); err != nil {
		s.logger.Warn().Str("user_id", principal.UserID).Str("visit_id", visit.ID).Msg("photo upload to foreign visit rejected")
		return nil, err
	}
	if _, err := s.products.FindByID(ctx, in.ProductID); err != nil {
		return nil, fmt.Errorf("attach photo: %w", err)
	}

	photoID := uuid.NewString()
	photo := &domain.Photo{
		ID:          photoID,
		VisitID:     visit.ID,
		ProductID:   in.ProductID,
		ObjectKey:   fmt.Sprintf("visits/%s/photos/%s", visit.ID, photoID),
		ContentType: http.DetectContentType(payload),
		SizeBytes:   int64(len(payload)),
		UploadedAt:  s.now(),
	}

	if err := s.blobs.Upload(ctx, photo.ObjectKey, bytes.NewReader(payload), photo.SizeBytes, photo.ContentType); err != nil {
		return nil, fmt.Errorf("attach photo: %w", err)
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		if delErr := s.blobs.Delete(ctx, photo.ObjectKey); delErr != nil {
			s.logger.Warn().Err(delErr).Str("object_key", photo.ObjectKey).Msg("failed to remove orphaned photo blob")
		}
		return nil, fmt.Errorf("attach photo: %w", err)
	}

	metrics.PhotosUploadedBytes.Observe(float64(photo.SizeBytes))
	s.logger.Info().Str("photo_id", photo.ID).Str("visit_id", visit.ID).Int64("size_bytes", photo.SizeBytes).Msg("photo attached")
	return photo, nil
}

func (s *VisitService) requireRole(p domain.Principal, role domain.Role) error {
	if err := RequireRole(p, role); err != nil {
		metrics.AccessDeniedTotal.WithLabelValues("role").Inc()
		return err
	}
	return nil
}

func (s *VisitService) requireOwnership(p domain.Principal, ownerID string) error {
	if err := RequireOwnership(p, ownerID); err != nil {
		metrics.AccessDeniedTotal.WithLabelValues("ownership").Inc()
		return err
	}
	return nil
}
