package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldtrack/visits-api/internal/api/middleware"
	"github.com/fieldtrack/visits-api/internal/core/domain"
)

// ctxPrincipal extracts the Principal injected by the Authenticate
// middleware. Its absence means the route was wired without it.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return p, nil
}
