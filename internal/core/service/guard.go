package service

import "github.com/fieldtrack/visits-api/internal/core/domain"

// RequireRole passes only when the principal holds exactly role. Admin does
// not satisfy Standard and vice versa.
func RequireRole(p domain.Principal, role domain.Role) error {
	if p.Role != role {
		return domain.ErrForbidden
	}
	return nil
}

// RequireOwnership passes only when the principal is the resource owner.
func RequireOwnership(p domain.Principal, resourceOwnerID string) error {
	if p.UserID == "" || p.UserID != resourceOwnerID {
		return domain.ErrNotOwner
	}
	return nil
}

// RequireAuthenticated passes for any resolved principal.
func RequireAuthenticated(p domain.Principal) error {
	if p.UserID == "" || !p.Role.Valid() {
		return domain.ErrInvalidToken
	}
	return nil
}
