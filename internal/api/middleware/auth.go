package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fieldtrack/visits-api/internal/infrastructure/metrics"
	"github.com/fieldtrack/visits-api/internal/core/domain"
	"github.com/fieldtrack/visits-api/internal/core/ports"
)

// PrincipalKey is the echo context key holding the resolved domain.Principal.
const PrincipalKey = "principal"

// Authenticate resolves the bearer token into a Principal and stores it in
// the context. A missing header, a non-Bearer scheme and a token the verifier
// rejects all produce the same 401.
func Authenticate(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return unauthorized(c)
			}

			principal, err := verifier.Resolve(raw)
			if err != nil {
				return unauthorized(c)
			}

			c.Set(PrincipalKey, principal)
			return next(c)
		}
	}
}

// PrincipalFrom returns the Principal stored by Authenticate.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(PrincipalKey).(domain.Principal)
	if !ok || p.UserID == "" {
		return domain.Principal{}, false
	}
	return p, true
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c echo.Context) error {
	metrics.AccessDeniedTotal.WithLabelValues("token").Inc()
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Bearer realm="visits-api"`)
	return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
}
