package domain

import "time"

// Role is the closed set of roles a user can hold. Roles are disjoint:
// holding one never implies the other.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleStandard Role = "Standard"
)

// Valid reports whether r is one of the known roles (case-sensitive).
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStandard
}

// User models an account in the Credential Store.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the identity resolved from a verified token. It lives for a
// single request and is never persisted.
type Principal struct {
	UserID   string
	Role     Role
	Username string
}
