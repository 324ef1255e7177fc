package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/fieldtrack/visits-api/internal/core/domain"
)

type memStores struct {
	stores map[string]*domain.Store
}

func (m *memStores) List(context.Context, int, int) ([]*domain.Store, error) {
	out := make([]*domain.Store, 0, len(m.stores))
	for _, s := range m.stores {
		out = append(out, s)
	}
	return out, nil
}

func (m *memStores) Create(_ context.Context, name, location string) (*domain.Store, error) {
	s := &domain.Store{ID: "s-new", Name: name, Location: location}
	m.stores[s.ID] = s
	return s, nil
}

func (m *memStores) Update(_ context.Context, id, name, location string) (*domain.Store, error) {
	s, ok := m.stores[id]
	if !ok {
		return nil, domain.ErrStoreNotFound
	}
	s.Name, s.Location = name, location
	return s, nil
}

func (m *memStores) Delete(_ context.Context, id string) error {
	if _, ok := m.stores[id]; !ok {
		return domain.ErrStoreNotFound
	}
	delete(m.stores, id)
	return nil
}

type memProducts struct {
	created []*domain.Product
}

func (m *memProducts) Create(_ context.Context, name, category string) (*domain.Product, error) {
	p := &domain.Product{ID: "p-new", Name: name, Category: category}
	m.created = append(m.created, p)
	return p, nil
}

func (m *memProducts) List(context.Context, int, int) ([]*domain.Product, error) {
	return m.created, nil
}

func newCatalogHandler() (*CatalogHandler, *memStores, *memProducts) {
	stores := &memStores{stores: map[string]*domain.Store{"s1": {ID: "s1", Name: "Corner", Location: "Main St"}}}
	products := &memProducts{}
	return NewCatalogHandler(stores, products), stores, products
}

func TestCatalogHandler_StoreLifecycle(t *testing.T) {
	h, stores, _ := newCatalogHandler()

	c, rec := newTestContext(http.MethodPost, "/api/stores", `{"name":"Kiosk","location":"Station"}`)
	if err := h.CreateStore(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	c, rec = newTestContext(http.MethodPut, "/api/stores/s1", `{"name":"Corner 2","location":"Main St 2"}`)
	c.SetParamNames("storeId")
	c.SetParamValues("s1")
	if err := h.UpdateStore(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	var resp storeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Name != "Corner 2" {
		t.Fatalf("unexpected update payload: %s", rec.Body.String())
	}

	c, rec = newTestContext(http.MethodDelete, "/api/stores/s1", "")
	c.SetParamNames("storeId")
	c.SetParamValues("s1")
	if err := h.DeleteStore(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if _, ok := stores.stores["s1"]; ok {
		t.Fatalf("store s1 still present")
	}

	c, _ = newTestContext(http.MethodDelete, "/api/stores/s1", "")
	c.SetParamNames("storeId")
	c.SetParamValues("s1")
	if err := h.DeleteStore(c); !errors.Is(err, domain.ErrStoreNotFound) {
		t.Fatalf("expected ErrStoreNotFound, got %v", err)
	}
}

func TestCatalogHandler_StoreValidation(t *testing.T) {
	h, _, _ := newCatalogHandler()

	c, _ := newTestContext(http.MethodPost, "/api/stores", `{"name":"Kiosk"}`)
	err := h.CreateStore(c)
	if code := httpCode(t, err); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
	if msg := err.Error(); !strings.Contains(msg, "location is required") {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestCatalogHandler_Products(t *testing.T) {
	h, _, products := newCatalogHandler()

	c, rec := newTestContext(http.MethodPost, "/api/products", `{"name":"Cola","category":"Drinks"}`)
	if err := h.CreateProduct(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated || len(products.created) != 1 {
		t.Fatalf("product not created: %d", rec.Code)
	}

	c, rec = newTestContext(http.MethodGet, "/api/products", "")
	if err := h.ListProducts(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	var resp listProductsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 1 || resp.Pagination.Page != 1 || resp.Pagination.PageSize != 10 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
