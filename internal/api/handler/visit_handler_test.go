package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/fieldtrack/visits-api/internal/api/middleware"
	"github.com/fieldtrack/visits-api/internal/core/domain"
	"github.com/fieldtrack/visits-api/internal/core/ports"
)

type stubVisitService struct {
	createFn   func(ctx context.Context, p domain.Principal, in ports.CreateVisitInput) (*ports.CreateVisitResult, error)
	completeFn func(ctx context.Context, p domain.Principal, id string) (*domain.Visit, error)
	listFn     func(ctx context.Context, p domain.Principal, page, size int) ([]*domain.Visit, error)
	attachFn   func(ctx context.Context, p domain.Principal, in ports.AttachPhotoInput) (*domain.Photo, error)
}

func (s *stubVisitService) CreateVisit(ctx context.Context, p domain.Principal, in ports.CreateVisitInput) (*ports.CreateVisitResult, error) {
	return s.createFn(ctx, p, in)
}

func (s *stubVisitService) CompleteVisit(ctx context.Context, p domain.Principal, id string) (*domain.Visit, error) {
	return s.completeFn(ctx, p, id)
}

func (s *stubVisitService) ListVisits(ctx context.Context, p domain.Principal, page, size int) ([]*domain.Visit, error) {
	return s.listFn(ctx, p, page, size)
}

func (s *stubVisitService) AttachPhoto(ctx context.Context, p domain.Principal, in ports.AttachPhotoInput) (*domain.Photo, error) {
	return s.attachFn(ctx, p, in)
}

var standard = domain.Principal{UserID: "alice-id", Role: domain.RoleStandard, Username: "alice"}

func TestVisitHandler_Create(t *testing.T) {
	var got ports.CreateVisitInput
	stub := &stubVisitService{createFn: func(_ context.Context, p domain.Principal, in ports.CreateVisitInput) (*ports.CreateVisitResult, error) {
		got = in
		return &ports.CreateVisitResult{Visit: &domain.Visit{ID: "v1", UserID: p.UserID, StoreID: in.StoreID, Status: domain.VisitCreated}}, nil
	}}

	c, rec := newTestContext(http.MethodPost, "/api/visits", `{"storeId":"1","visitDate":"2026-03-14T10:00:00Z","status":"Created"}`)
	c.Request().Header.Set("Idempotency-Key", "k-1")
	c.Set(middleware.PrincipalKey, standard)

	if err := NewVisitHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.StoreID != "1" || got.IdempotencyKey != "k-1" || got.Status != domain.VisitCreated {
		t.Fatalf("unexpected input: %+v", got)
	}
	if !got.VisitDate.Equal(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", got.VisitDate)
	}
	if rec.Header().Get("Location") != "/api/visits/v1" {
		t.Fatalf("unexpected location: %q", rec.Header().Get("Location"))
	}

	var resp visitResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.UserID != "alice-id" || resp.Links.Complete != "/api/visits/v1/complete" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestVisitHandler_Create_ReplayReturns200(t *testing.T) {
	stub := &stubVisitService{createFn: func(context.Context, domain.Principal, ports.CreateVisitInput) (*ports.CreateVisitResult, error) {
		return &ports.CreateVisitResult{Visit: &domain.Visit{ID: "v1"}, AlreadyExisted: true}, nil
	}}
	c, rec := newTestContext(http.MethodPost, "/api/visits", `{"storeId":"1","visitDate":"2026-03-14T10:00:00Z"}`)
	c.Set(middleware.PrincipalKey, standard)

	if err := NewVisitHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestVisitHandler_Create_Rejections(t *testing.T) {
	stub := &stubVisitService{createFn: func(context.Context, domain.Principal, ports.CreateVisitInput) (*ports.CreateVisitResult, error) {
		return nil, domain.ErrNotOwner
	}}
	h := NewVisitHandler(stub)

	c, _ := newTestContext(http.MethodPost, "/api/visits", `{"storeId":"1","visitDate":"2026-03-14T10:00:00Z"}`)
	if code := httpCode(t, h.Create(c)); code != 401 {
		t.Fatalf("expected 401 without principal, got %d", code)
	}

	c, _ = newTestContext(http.MethodPost, "/api/visits", `{"visitDate":"2026-03-14T10:00:00Z"}`)
	c.Set(middleware.PrincipalKey, standard)
	if code := httpCode(t, h.Create(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for missing storeId, got %d", code)
	}

	c, _ = newTestContext(http.MethodPost, "/api/visits", `{"storeId":"1","visitDate":"2026-03-14T10:00:00Z","status":"Archived"}`)
	c.Set(middleware.PrincipalKey, standard)
	if code := httpCode(t, h.Create(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown status, got %d", code)
	}

	c, _ = newTestContext(http.MethodPost, "/api/visits", `{"userId":"bob-id","storeId":"1","visitDate":"2026-03-14T10:00:00Z"}`)
	c.Set(middleware.PrincipalKey, standard)
	if err := h.Create(c); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}

func TestVisitHandler_Complete(t *testing.T) {
	stub := &stubVisitService{completeFn: func(_ context.Context, p domain.Principal, id string) (*domain.Visit, error) {
		if id != "v1" {
			return nil, domain.ErrVisitNotFound
		}
		return &domain.Visit{ID: id, UserID: p.UserID, Status: domain.VisitCompleted}, nil
	}}
	h := NewVisitHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/api/visits/v1/complete", "")
	c.SetParamNames("visitId")
	c.SetParamValues("v1")
	c.Set(middleware.PrincipalKey, standard)
	if err := h.Complete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp visitResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Status != "Completed" {
		t.Fatalf("expected Completed, got %+v", resp)
	}

	c, _ = newTestContext(http.MethodPut, "/api/visits/missing/complete", "")
	c.SetParamNames("visitId")
	c.SetParamValues("missing")
	c.Set(middleware.PrincipalKey, standard)
	if err := h.Complete(c); !errors.Is(err, domain.ErrVisitNotFound) {
		t.Fatalf("expected ErrVisitNotFound, got %v", err)
	}
}

func TestVisitHandler_List(t *testing.T) {
	var gotPage, gotSize int
	stub := &stubVisitService{listFn: func(_ context.Context, _ domain.Principal, page, size int) ([]*domain.Visit, error) {
		gotPage, gotSize = page, size
		return []*domain.Visit{{ID: "v1"}, {ID: "v2"}}, nil
	}}

	c, rec := newTestContext(http.MethodGet, "/api/visits?page=2&pageSize=500", "")
	c.Set(middleware.PrincipalKey, standard)
	if err := NewVisitHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotPage != 2 || gotSize != 500 {
		t.Fatalf("query not forwarded: page=%d size=%d", gotPage, gotSize)
	}

	var resp listVisitsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 2 || resp.Pagination.Page != 2 || resp.Pagination.PageSize != 100 {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	c, _ = newTestContext(http.MethodGet, "/api/visits?page=abc", "")
	c.Set(middleware.PrincipalKey, standard)
	if code := httpCode(t, NewVisitHandler(stub).List(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad page, got %d", code)
	}
}

func TestVisitHandler_AttachPhoto(t *testing.T) {
	var got ports.AttachPhotoInput
	stub := &stubVisitService{attachFn: func(_ context.Context, _ domain.Principal, in ports.AttachPhotoInput) (*domain.Photo, error) {
		got = in
		return &domain.Photo{ID: "p1", VisitID: in.VisitID, ProductID: in.ProductID, ContentType: "image/png", SizeBytes: 4}, nil
	}}
	h := NewVisitHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/visits/v1/photos", `{"productId":"prod-1","base64Image":"aGVsbG8="}`)
	c.SetParamNames("visitId")
	c.SetParamValues("v1")
	c.Set(middleware.PrincipalKey, standard)
	if err := h.AttachPhoto(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.VisitID != "v1" || got.ProductID != "prod-1" || got.Base64Image != "aGVsbG8=" {
		t.Fatalf("unexpected input: %+v", got)
	}

	// A missing image is reported like any other missing field.
	for _, body := range []string{`{"productId":"prod-1"}`, `{"productId":"prod-1","base64Image":""}`} {
		c, _ = newTestContext(http.MethodPost, "/api/visits/v1/photos", body)
		c.SetParamNames("visitId")
		c.SetParamValues("v1")
		c.Set(middleware.PrincipalKey, standard)
		err := h.AttachPhoto(c)
		if code := httpCode(t, err); code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422 for missing image, got %d", body, code)
		}
		if !strings.Contains(err.Error(), "base64Image is required") {
			t.Fatalf("%s: unexpected message: %v", body, err)
		}
	}
}
