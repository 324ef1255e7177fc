package ports

import (
	"context"

	"github.com/fieldtrack/visits-api/internal/core/domain"
)

type StoreRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	Create(ctx context.Context, s *domain.Store) error
	Update(ctx context.Context, s *domain.Store) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page Page) ([]*domain.Store, error)
}

type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	List(ctx context.Context, page Page) ([]*domain.Product, error)
}

type StoreService interface {
	List(ctx context.Context, page, pageSize int) ([]*domain.Store, error)
	Create(ctx context.Context, name, location string) (*domain.Store, error)
	Update(ctx context.Context, id, name, location string) (*domain.Store, error)
	Delete(ctx context.Context, id string) error
}

type ProductService interface {
	Create(ctx context.Context, name, category string) (*domain.Product, error)
	List(ctx context.Context, page, pageSize int) ([]*domain.Product, error)
}
