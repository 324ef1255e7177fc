package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fieldtrack/visits-api/internal/core/domain"
)

func TestStoreService_CRUD(t *testing.T) {
	repo := newStubStoreRepo()
	svc := NewStoreService(repo, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Create(ctx, "  Corner Shop ", "Main St 1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.Name != "Corner Shop" {
		t.Fatalf("unexpected store: %+v", created)
	}

	updated, err := svc.Update(ctx, created.ID, "Corner Shop 2", "Main St 2")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Location != "Main St 2" || updated.CreatedAt != created.CreatedAt {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	stores, err := svc.List(ctx, 1, 10)
	if err != nil || len(stores) != 1 {
		t.Fatalf("list: %v (%d stores)", err, len(stores))
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound on second delete, got %v", err)
	}
}

func TestStoreService_Validation(t *testing.T) {
	svc := NewStoreService(newStubStoreRepo("s1"), zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "", "somewhere"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Update(ctx, "s1", "name", "   "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Update(ctx, "missing", "name", "loc"); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
}

func TestProductService_CreateAndList(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "Cola", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	p, err := svc.Create(ctx, "Cola", "Drinks")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" || p.Category != "Drinks" {
		t.Fatalf("unexpected product: %+v", p)
	}

	products, err := svc.List(ctx, 0, 0)
	if err != nil || len(products) != 1 {
		t.Fatalf("list: %v (%d products)", err, len(products))
	}
}
