package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldtrack/visits-api/internal/infrastructure/metrics"
	"github.com/fieldtrack/visits-api/internal/core/domain"
	"github.com/fieldtrack/visits-api/internal/core/service"
)

// RequireRole gates a route on an exact role match. It must run after
// Authenticate.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if err := service.RequireRole(p, role); err != nil {
				metrics.AccessDeniedTotal.WithLabelValues("role").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}
