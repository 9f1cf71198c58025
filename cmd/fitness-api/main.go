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

	"github.com/rs/cors"

	"fitness-planner/internal/api"
	"fitness-planner/internal/auth"
	"fitness-planner/internal/cache"
	"fitness-planner/internal/config"
	"fitness-planner/internal/services"
	"fitness-planner/internal/storage"
	"fitness-planner/internal/telemetry"
)

// sharedCache backs rate limiting, plan caching and token revocation.
type sharedCache interface {
	api.Cache
	auth.RevocationStore
	Close() error
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("Server shutdown error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	slog.Info("Starting fitness API", "port", cfg.HTTPPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()
	slog.Info("Database ready", "path", cfg.DatabasePath)

	c, err := newCache(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	planner := services.NewPlanClient(cfg)
	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL, c)
	handler := api.NewHandler(store, c, planner, tokens, cfg.PlanCacheTTL)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           corsHandler.Handler(telemetry.Middleware(handler.Routes())),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return serve(ctx, srv)
}

func newCache(cfg *config.Config) (sharedCache, error) {
	if cfg.RedisAddr == "" {
		slog.Warn("REDIS_ADDR not set, using in-process cache")
		return cache.NewMemory(cfg.RateLimitPerMinute), nil
	}
	redisClient, err := cache.NewClient(cfg.RedisAddr, cfg.RateLimitPerMinute)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	slog.Info("Connected to Redis", "addr", cfg.RedisAddr)
	return redisClient, nil
}

func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
