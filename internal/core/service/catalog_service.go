package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fieldtrack/visits-api/internal/core/domain"
	"github.com/fieldtrack/visits-api/internal/core/ports"
)

// StoreService manages the store catalogue. Role gating happens at the route.
type StoreService struct {
	repo   ports.StoreRepository
	logger zerolog.Logger
}

func NewStoreService(repo ports.StoreRepository, logger zerolog.Logger) *StoreService {
	return &StoreService{repo: repo, logger: logger}
}

func (s *StoreService) List(ctx context.Context, page, pageSize int) ([]*domain.Store, error) {
	stores, err := s.repo.List(ctx, ports.NewPage(page, pageSize))
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

func (s *StoreService) Create(ctx context.Context, name, location string) (*domain.Store, error) {
	name, location = strings.TrimSpace(name), strings.TrimSpace(location)
	if name == "" || location == "" {
		return nil, fmt.Errorf("name and location are required: %w", domain.ErrInvalidInput)
	}

	store := &domain.Store{
		ID:        uuid.NewString(),
		Name:      name,
		Location:  location,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	s.logger.Info().Str("store_id", store.ID).Msg("store created")
	return store, nil
}

func (s *StoreService) Update(ctx context.Context, id, name, location string) (*domain.Store, error) {
	name, location = strings.TrimSpace(name), strings.TrimSpace(location)
	if name == "" || location == "" {
		return nil, fmt.Errorf("name and location are required: %w", domain.ErrInvalidInput)
	}

	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}
	store.Name = name
	store.Location = location

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}
	return store, nil
}

func (s *StoreService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	s.logger.Info().Str("store_id", id).Msg("store deleted")
	return nil
}

// ProductService manages the product catalogue.
type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, name, category string) (*domain.Product, error) {
	name, category = strings.TrimSpace(name), strings.TrimSpace(category)
	if name == "" || category == "" {
		return nil, fmt.Errorf("name and category are required: %w", domain.ErrInvalidInput)
	}

	product := &domain.Product{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.Info().Str("product_id", product.ID).Msg("product created")
	return product, nil
}

func (s *ProductService) List(ctx context.Context, page, pageSize int) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx, ports.NewPage(page, pageSize))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
