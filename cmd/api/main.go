// @title                       Field Visits API
// @version                     1.0
// @description                 Store visits, product photos and the store/product catalogue for field staff.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldtrack/visits-api/internal/api"
	"github.com/fieldtrack/visits-api/internal/core/service"
	"github.com/fieldtrack/visits-api/internal/infrastructure/config"
	"github.com/fieldtrack/visits-api/internal/infrastructure/db/mongo"
	"github.com/fieldtrack/visits-api/internal/infrastructure/db/redis"
	"github.com/fieldtrack/visits-api/internal/infrastructure/http/handlers"
	"github.com/fieldtrack/visits-api/internal/infrastructure/storage/minio"
	"github.com/fieldtrack/visits-api/pkg/logger"
)

const (
	serviceName     = "visits-api"
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Service: serviceName})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(loggerOptions(cfg))

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// loggerOptions never enables the console writer in production.
func loggerOptions(cfg *config.Config) logger.Options {
	return logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty && !cfg.IsProduction(),
		Service: serviceName,
		Env:     cfg.Env,
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	blobs, err := minio.Connect(ctx, minio.Config{
		Endpoint:  cfg.MinIO.Endpoint,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		Bucket:    cfg.MinIO.Bucket,
		UseSSL:    cfg.MinIO.UseSSL,
	})
	if err != nil {
		return err
	}

	users := mongo.NewUserRepository(db)
	visits := mongo.NewVisitRepository(db)
	photos := mongo.NewPhotoRepository(db)
	stores := mongo.NewStoreRepository(db)
	products := mongo.NewProductRepository(db)

	if err := mongo.EnsureIndexes(ctx, users, visits, photos); err != nil {
		return err
	}

	tokens := service.NewTokenService(service.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      cfg.JWT.TTL(),
	})
	authService, err := service.NewAuthService(users, tokens, cfg.JWT.BcryptCost, log)
	if err != nil {
		return err
	}
	visitService := service.NewVisitService(service.VisitDeps{
		Visits:      visits,
		Photos:      photos,
		Blobs:       blobs,
		Stores:      stores,
		Products:    products,
		Idempotency: redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL),
	}, log)

	e := api.NewRouter(api.Deps{
		Logger:   log,
		Tokens:   tokens,
		Auth:     authService,
		Visits:   visitService,
		Stores:   service.NewStoreService(stores, log),
		Products: service.NewProductService(products, log),
		Checks: []handlers.Check{
			handlers.MongoCheck(db),
			handlers.RedisCheck(rdb),
			{Name: "minio", Fn: blobs.Ping},
		},
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
