// Package main is the entrypoint for the HealthAssist prediction server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiranshivaraju/healthassist/internal/api"
	"github.com/kiranshivaraju/healthassist/internal/api/handler"
	mw "github.com/kiranshivaraju/healthassist/internal/api/middleware"
	"github.com/kiranshivaraju/healthassist/internal/api/response"
	"github.com/kiranshivaraju/healthassist/internal/cache"
	"github.com/kiranshivaraju/healthassist/internal/config"
	"github.com/kiranshivaraju/healthassist/internal/disease"
	"github.com/kiranshivaraju/healthassist/internal/inference"
	"github.com/kiranshivaraju/healthassist/internal/predict"
	"github.com/kiranshivaraju/healthassist/internal/store"
	"github.com/kiranshivaraju/healthassist/internal/web"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config, fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "env", cfg.Server.Env, "models_dir", cfg.Models.Dir)

	// 2. Load models before touching the network
	classifiers, err := inference.LoadCatalog(cfg.Models.Dir, disease.All())
	if err != nil {
		return fmt.Errorf("load models: %w", err)
	}
	slog.Info("models loaded", "count", len(classifiers))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Connect to database
	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	slog.Info("database connected")

	pgStore := store.NewPostgresStore(pool)

	// 4. Redis backs the submission rate limit when configured
	var (
		rateLimit *mw.RateLimit
		c         cache.Cache
	)
	if cfg.RateLimitEnabled() {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		slog.Info("redis connected")
		c = redisCache
		rateLimit = mw.NewRateLimit(redisCache, cfg.RateLimit.RequestsPerMinute)
	} else {
		slog.Info("rate limiting disabled, REDIS_URL not set")
	}

	// 5. Build service and router
	svc := predict.NewService(pgStore, classifiers)
	for _, d := range disease.All() {
		_ = svc.Prepare(ctx, d)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	router := api.NewRouter(api.Dependencies{
		RateLimit: rateLimit,
		Pages:     handler.NewPages(svc, renderer),

		HealthHandler:           healthHandler(pgStore, c, len(classifiers)),
		ListDiseasesHandler:     handler.NewListDiseasesHandler(),
		CreatePredictionHandler: handler.NewCreatePredictionHandler(svc),
		ListPredictionsHandler:  handler.NewListPredictionsHandler(svc),
	})

	// 6. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// healthHandler checks database and cache connectivity. A nil cache is
// reported as disabled and does not degrade the service.
func healthHandler(s store.Store, c cache.Cache, models int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"database": "ok",
			"cache":    "ok",
		}

		if err := s.Ping(r.Context()); err != nil {
			checks["database"] = "degraded"
		}
		if c == nil {
			checks["cache"] = "disabled"
		} else if err := c.Ping(r.Context()); err != nil {
			checks["cache"] = "degraded"
		}

		degraded := checks["database"] == "degraded" || checks["cache"] == "degraded"
		if degraded {
			response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
				"One or more services degraded", checks)
			return
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
			"models":   models,
		})
	}
}
