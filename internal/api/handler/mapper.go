package handler

import (
	"github.com/fieldtrack/visits-api/internal/core/domain"
	"github.com/fieldtrack/visits-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateVisitInput(req createVisitRequest, idempotencyKey string) ports.CreateVisitInput {
	return ports.CreateVisitInput{
		UserID:         req.UserID,
		StoreID:        req.StoreID,
		VisitDate:      req.VisitDate,
		Status:         domain.VisitStatus(req.Status),
		IdempotencyKey: idempotencyKey,
	}
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func toVisitResponse(v *domain.Visit) visitResponse {
	self := "/api/visits/" + v.ID
	return visitResponse{
		ID:        v.ID,
		UserID:    v.UserID,
		StoreID:   v.StoreID,
		VisitDate: v.VisitDate,
		Status:    string(v.Status),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
		Links: visitLinks{
			Self:     self,
			Complete: self + "/complete",
			Photos:   self + "/photos",
		},
	}
}

func toPhotoResponse(p *domain.Photo) photoResponse {
	return photoResponse{
		ID:          p.ID,
		VisitID:     p.VisitID,
		ProductID:   p.ProductID,
		ContentType: p.ContentType,
		SizeBytes:   p.SizeBytes,
		UploadedAt:  p.UploadedAt,
	}
}

func toStoreResponse(s *domain.Store) storeResponse {
	return storeResponse{ID: s.ID, Name: s.Name, Location: s.Location, CreatedAt: s.CreatedAt}
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{ID: p.ID, Name: p.Name, Category: p.Category, CreatedAt: p.CreatedAt}
}

// echoPage reports the page the service actually served, after defaults.
func echoPage(q pageQuery, count int) paginationResponse {
	p := ports.NewPage(q.Page, q.PageSize)
	return paginationResponse{Page: p.Number, PageSize: p.Size, Count: count}
}
