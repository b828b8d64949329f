package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/admarket/portal/internal/api"
	"github.com/admarket/portal/internal/core/service"
	"github.com/admarket/portal/internal/infrastructure/db/postgres"
	"github.com/admarket/portal/internal/infrastructure/db/redis"
	"github.com/admarket/portal/internal/pkg/config"
	"github.com/admarket/portal/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// ---- PostgreSQL ----
	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("schema bootstrap failed")
	}
	log.Info().Msg("postgres connected")

	// ---- Redis ----
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer func() { _ = rdb.Close() }()
	log.Info().Msg("redis connected")

	// ---- Admin bootstrap (one-shot, idempotent) ----
	userRepo := postgres.NewUserRepository(pool)
	if err := service.EnsureAdmin(ctx, userRepo, cfg.AdminEmail, cfg.AdminPassword, log); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	// ---- HTTP server ----
	e := api.NewRouter(pool, rdb, cfg.SecretKey, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Msg("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
