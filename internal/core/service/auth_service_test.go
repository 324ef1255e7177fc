package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fieldtrack/visits-api/internal/core/domain"
)

type stubUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User // by username
	findCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrDuplicateUsername
	}
	r.users[user.Username] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

var testTokenConfig = TokenConfig{
	Secret:   "secret",
	Issuer:   "visits-api",
	Audience: "visits-api-clients",
	TTL:      time.Hour,
}

func newAuthSvc(t *testing.T, repo *stubUserRepo) (*AuthService, *TokenService) {
	t.Helper()
	tokens := NewTokenService(testTokenConfig)
	svc, err := NewAuthService(repo, tokens, bcrypt.MinCost, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return svc, tokens
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(t, repo)

	user, err := svc.Register(context.Background(), "alice", "pw1234", domain.RoleStandard)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected id to be assigned")
	}
	if user.PasswordHash == "pw1234" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1234")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleStandard {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(t, repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "pw1234", domain.RoleStandard); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty username, got %v", err)
	}
	if _, err := svc.Register(ctx, "bob", "", domain.RoleStandard); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
	if _, err := svc.Register(ctx, strings.Repeat("x", 65), "pw1234", domain.RoleStandard); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for long username, got %v", err)
	}
	for _, role := range []domain.Role{"", "admin", "standard", "Root"} {
		if _, err := svc.Register(ctx, "bob", "pw1234", role); !errors.Is(err, domain.ErrInvalidRole) {
			t.Fatalf("expected ErrInvalidRole for %q, got %v", role, err)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(t, repo)

	if _, err := svc.Register(context.Background(), "bob", "pw1234", domain.RoleStandard); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "other99", domain.RoleAdmin); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	// Case-sensitive: "Bob" is a different user.
	if _, err := svc.Register(context.Background(), "Bob", "pw1234", domain.RoleStandard); err != nil {
		t.Fatalf("expected distinct username to register, got %v", err)
	}
}

func TestAuthService_Authenticate_RoundTrip(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newAuthSvc(t, repo)

	user, err := svc.Register(context.Background(), "carol", "s3cret!", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Authenticate(context.Background(), "carol", "s3cret!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if res.User == nil || res.User.ID != user.ID {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if !res.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected expiry in the future, got %v", res.ExpiresAt)
	}

	p, err := tokens.Resolve(res.Token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if p.UserID != user.ID || p.Role != domain.RoleAdmin || p.Username != "carol" {
		t.Fatalf("unexpected principal: %+v", p)
	}

	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(res.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Subject != user.ID || claims.Issuer != "visits-api" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Authenticate_FailuresAreIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(t, repo)

	if _, err := svc.Register(context.Background(), "dave", "goodpass", domain.RoleStandard); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, wrongPw := svc.Authenticate(context.Background(), "dave", "badpass")
	_, unknown := svc.Authenticate(context.Background(), "ghost", "goodpass")
	_, wrongCase := svc.Authenticate(context.Background(), "Dave", "goodpass")

	for name, err := range map[string]error{"wrong password": wrongPw, "unknown user": unknown, "wrong case": wrongCase} {
		if err != domain.ErrInvalidCredentials {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", name, err)
		}
	}
	if wrongPw.Error() != unknown.Error() {
		t.Fatalf("error messages differ: %q vs %q", wrongPw, unknown)
	}
}

func TestAuthService_Authenticate_EmptyInput(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(t, repo)

	if _, err := svc.Authenticate(context.Background(), "", "x"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if repo.findCalls != 0 {
		t.Fatalf("expected no store lookup for empty username")
	}
}

func TestAuthService_ListUsers_AdminOnly(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(t, repo)
	_, _ = svc.Register(context.Background(), "erin", "pw1234", domain.RoleStandard)

	if _, err := svc.ListUsers(context.Background(), domain.Principal{UserID: "u1", Role: domain.RoleStandard}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	users, err := svc.ListUsers(context.Background(), domain.Principal{UserID: "u2", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}
