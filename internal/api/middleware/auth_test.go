package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fieldtrack/visits-api/internal/core/domain"
	"github.com/fieldtrack/visits-api/internal/core/service"
)

var testTokens = service.NewTokenService(service.TokenConfig{
	Secret:   "secret",
	Issuer:   "visits-api",
	Audience: "visits-api-clients",
	TTL:      time.Hour,
})

func issue(t *testing.T, role domain.Role) string {
	t.Helper()
	token, _, err := testTokens.Issue(&domain.User{ID: "u1", Username: "alice", Role: role})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func runAuth(t *testing.T, header string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Authenticate(testTokens)(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAuthenticate_ValidToken(t *testing.T) {
	called := false
	rec := runAuth(t, "Bearer "+issue(t, domain.RoleStandard), func(c echo.Context) error {
		called = true
		p, ok := PrincipalFrom(c)
		if !ok {
			t.Fatalf("principal not set")
		}
		if p.UserID != "u1" || p.Role != domain.RoleStandard || p.Username != "alice" {
			t.Fatalf("unexpected principal: %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_SchemeIsCaseInsensitive(t *testing.T) {
	rec := runAuth(t, "bearer "+issue(t, domain.RoleAdmin), func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	expired, _, err := testTokens.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).
		Issue(&domain.User{ID: "u1", Username: "alice", Role: domain.RoleStandard})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	cases := map[string]string{
		"missing header": "",
		"basic scheme":   "Basic dXNlcjpwYXNz",
		"empty bearer":   "Bearer ",
		"garbage token":  "Bearer abc.def.ghi",
		"expired token":  "Bearer " + expired,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec := runAuth(t, header, func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if rec.Header().Get(echo.HeaderWWWAuthenticate) == "" {
				t.Fatalf("expected WWW-Authenticate header")
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	if tok, ok := bearerToken("  Bearer   abc "); !ok || tok != "abc" {
		t.Fatalf("unexpected result: %q %v", tok, ok)
	}
	if _, ok := bearerToken("Bearer"); ok {
		t.Fatalf("scheme without token must be rejected")
	}
}
