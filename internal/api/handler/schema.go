package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createVisitRequest struct {
	UserID    string    `json:"userId"`
	StoreID   string    `json:"storeId"   validate:"required"`
	VisitDate time.Time `json:"visitDate" validate:"required"`
	Status    string    `json:"status"    validate:"omitempty,oneof=Created Completed"`
}

type attachPhotoRequest struct {
	ProductID   string `json:"productId"   validate:"required"`
	Base64Image string `json:"base64Image" validate:"required"`
}

type storeRequest struct {
	Name     string `json:"name"     validate:"required,max=200"`
	Location string `json:"location" validate:"required,max=500"`
}

type productRequest struct {
	Name     string `json:"name"     validate:"required,max=200"`
	Category string `json:"category" validate:"required,max=100"`
}

type pageQuery struct {
	Page     int `query:"page"`
	PageSize int `query:"pageSize"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract does not follow domain
// changes.

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      userResponse `json:"user"`
}

type visitLinks struct {
	Self     string `json:"self"`
	Complete string `json:"complete"`
	Photos   string `json:"photos"`
}

type visitResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	StoreID   string     `json:"storeId"`
	VisitDate time.Time  `json:"visitDate"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Links     visitLinks `json:"_links"`
}

type photoResponse struct {
	ID          string    `json:"id"`
	VisitID     string    `json:"visitId"`
	ProductID   string    `json:"productId"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

type storeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"createdAt"`
}

type productResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

type paginationResponse struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Count    int `json:"count"`
}

type listVisitsResponse struct {
	Data       []visitResponse    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type listStoresResponse struct {
	Data       []storeResponse    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type listProductsResponse struct {
	Data       []productResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
