package domain

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")

	// ErrInvalidToken covers missing, malformed, expired and badly signed tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrForbidden is a role mismatch.
	ErrForbidden = errors.New("access forbidden")
	// ErrNotOwner is an ownership mismatch on an otherwise authenticated request.
	ErrNotOwner = errors.New("resource belongs to another user")

	ErrVisitNotFound     = errors.New("visit not found")
	ErrStoreNotFound     = errors.New("store not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidInput      = errors.New("invalid input")
)
