package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/inventario/inventory-console/internal/api"
	"github.com/inventario/inventory-console/internal/api/handler"
	"github.com/inventario/inventory-console/internal/core/navigation"
	"github.com/inventario/inventory-console/internal/core/ports"
	"github.com/inventario/inventory-console/internal/core/service"
	"github.com/inventario/inventory-console/internal/core/session"
	"github.com/inventario/inventory-console/internal/infrastructure/apiclient"
	mongostore "github.com/inventario/inventory-console/internal/infrastructure/db/mongo"
	redisstore "github.com/inventario/inventory-console/internal/infrastructure/db/redis"
	"github.com/inventario/inventory-console/internal/infrastructure/storage"
	"github.com/inventario/inventory-console/internal/pkg/config"
	"github.com/inventario/inventory-console/pkg/logger"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "inventory-console",
		Env:     cfg.Env,
	})
	if envErr != nil {
		log.Debug().Msg("no .env file found; relying on existing environment")
	}

	ctx := context.Background()
	tokens, checks, closeStorage, err := openTokenStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Session.Storage).Msg("init session storage")
	}
	defer closeStorage()

	client := apiclient.New(cfg.API.BaseURL, nil,
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		apiclient.WithLogger(log),
	)

	e := api.NewRouter(api.Deps{
		Log:          log,
		Sessions:     session.NewManager(tokens, log),
		Table:        navigation.Default(),
		API:          client.Factory(),
		Auth:         service.NewAuthService(log),
		Reports:      service.NewReportService(log),
		Checks:       checks,
		CookieName:   cfg.Session.CookieName,
		SecureCookie: cfg.Session.Secure,
		Metrics:      true,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTPAddress()).Str("api", cfg.API.BaseURL).Msg("inventory console listening")
		if err := e.Start(cfg.HTTPAddress()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}

// openTokenStorage builds the configured session backend together with its
// readiness checks and a close func.
func openTokenStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.TokenStorage, map[string]handler.Checker, func(), error) {
	noop := func() {}

	switch cfg.Session.Storage {
	case config.StorageMemory:
		log.Warn().Msg("sessions are kept in memory and lost on restart")
		return storage.NewMemoryTokenStorage(), nil, noop, nil

	case config.StorageRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, noop, err
		}
		checks := map[string]handler.Checker{
			"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("close redis")
			}
		}
		return redisstore.NewTokenStorage(client, cfg.Session.TTL), checks, closeFn, nil

	case config.StorageMongo:
		db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, noop, err
		}
		tokens := mongostore.NewTokenStorage(db)
		if err := tokens.EnsureIndexes(ctx, cfg.Session.TTL); err != nil {
			log.Warn().Err(err).Msg("session token ttl index not created")
		}
		checks := map[string]handler.Checker{
			"mongo": func(ctx context.Context) error { return db.Client().Ping(ctx, nil) },
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mongostore.Disconnect(ctx, db); err != nil {
				log.Error().Err(err).Msg("disconnect mongo")
			}
		}
		return tokens, checks, closeFn, nil
	}

	tokens, err := storage.NewFileTokenStorage(cfg.Session.Dir, storage.WithMaxAge(cfg.Session.TTL))
	if err != nil {
		return nil, nil, noop, err
	}
	if n, err := tokens.Prune(ctx); err != nil {
		log.Warn().Err(err).Msg("prune stale session tokens")
	} else if n > 0 {
		log.Info().Int("removed", n).Msg("pruned stale session tokens")
	}
	return tokens, nil, noop, nil
}
