package api

import (
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/fieldtrack/visits-api/internal/api/handler"
	"github.com/fieldtrack/visits-api/internal/api/middleware"
	"github.com/fieldtrack/visits-api/internal/core/domain"
	"github.com/fieldtrack/visits-api/internal/core/ports"
	"github.com/fieldtrack/visits-api/internal/infrastructure/http/handlers"

	_ "github.com/fieldtrack/visits-api/docs"
)

const maxBodySize = "10M"

// Deps carries everything the router wires into handlers.
type Deps struct {
	Logger   zerolog.Logger
	Tokens   ports.TokenVerifier
	Auth     ports.AuthService
	Visits   ports.VisitService
	Stores   ports.StoreService
	Products ports.ProductService
	Checks   []handlers.Check

	// Registerer and Gatherer default to the prometheus globals.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echomiddleware.BodyLimit(maxBodySize))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "visits_http",
		Registerer: d.Registerer,
		Skipper:    skipOperational,
	}))

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	readiness := handlers.NewHealthDependenciesHandler(d.Checks...)
	d.Logger.Debug().Strs("checks", readiness.Names()).Msg("readiness checks registered")
	e.GET("/health/ready", readiness.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	authn := middleware.Authenticate(d.Tokens)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	api := e.Group("/api")

	// --- Auth ---
	authHandler := handler.NewAuthHandler(d.Auth)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/users", authHandler.ListUsers, authn)

	secured := api.Group("", authn)

	// --- Visits: role and ownership are enforced by the service ---
	visitHandler := handler.NewVisitHandler(d.Visits)
	secured.GET("/visits", visitHandler.List)
	secured.POST("/visits", visitHandler.Create)
	secured.PUT("/visits/:visitId/complete", visitHandler.Complete)
	secured.POST("/visits/:visitId/photos", visitHandler.AttachPhoto)

	// --- Catalogue: reads for anyone signed in, writes for Admin ---
	catalog := handler.NewCatalogHandler(d.Stores, d.Products)
	secured.GET("/stores", catalog.ListStores)
	secured.POST("/stores", catalog.CreateStore, adminOnly)
	secured.PUT("/stores/:storeId", catalog.UpdateStore, adminOnly)
	secured.DELETE("/stores/:storeId", catalog.DeleteStore, adminOnly)
	secured.GET("/products", catalog.ListProducts)
	secured.POST("/products", catalog.CreateProduct, adminOnly)

	return e
}

func skipOperational(c echo.Context) bool {
	p := c.Path()
	return strings.HasPrefix(p, "/health") || p == "/metrics" || strings.HasPrefix(p, "/swagger")
}

// requestLogger feeds echo's request logger into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper:      skipOperational,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			} else if v.Status >= 400 {
				evt = log.Warn()
			}
			evt.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency.Round(time.Microsecond)).
				Msg("request")
			return nil
		},
	})
}
