// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/avetisov/modera/internal/api"
	"github.com/avetisov/modera/internal/auth"
	"github.com/avetisov/modera/internal/listingservice"
	"github.com/avetisov/modera/internal/metrics"
	"github.com/avetisov/modera/internal/models"
	"github.com/avetisov/modera/internal/moderation"
	"github.com/avetisov/modera/internal/notify"
	"github.com/avetisov/modera/internal/sse"
	"github.com/avetisov/modera/internal/store"
)

// BuildService constructs the repository, workflow, notification center, and
// listing service from configuration. The returned cleanup stops the
// notification timers. Shared by the HTTP server and the MCP command.
func BuildService(cfg *Config, onNotify func(kind string, n models.Notification)) (*listingservice.Service, func(), error) {
	listings := store.Seed()
	if cfg.Seed.Path != "" {
		loaded, err := store.LoadSeed(cfg.Seed.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("load seed: %w", err)
		}
		listings = loaded
	}

	repo := store.NewMemory(listings)
	workflow := moderation.New(repo, cfg.Moderation.Strict)

	opts := []notify.Option{notify.WithTTL(cfg.Notify.TTL())}
	if onNotify != nil {
		opts = append(opts, notify.WithEventCallback(onNotify))
	}
	center := notify.NewCenter(opts...)

	svc := listingservice.NewService(repo, workflow, center)
	return svc, center.Close, nil
}

// BuildAuth constructs the session gate from configuration, hashing a plain
// dev password when no bcrypt hash is configured.
func BuildAuth(cfg *Config) (*auth.Service, error) {
	hash := cfg.Auth.AdminPasswordHash
	if hash == "" {
		h, err := auth.HashPassword(cfg.Auth.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		hash = h
	}
	admin := models.User{
		ID:    "1",
		Email: cfg.Auth.AdminEmail,
		Name:  cfg.Auth.AdminName,
		Role:  "admin",
	}
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, "modera", cfg.Auth.SessionTTL())
	return auth.NewService(admin, hash, tokens), nil
}

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.Bool("strict_moderation", cfg.Moderation.Strict),
		slog.String("seed_path", cfg.Seed.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// SSE broker fed by notification lifecycle events.
	broker := sse.NewBroker()
	defer broker.Close()

	var activeNotifs atomic.Int64
	svc, stopNotify, err := BuildService(cfg, func(kind string, n models.Notification) {
		if kind == notify.EventCreated {
			metrics.SetActiveNotifications(int(activeNotifs.Add(1)))
		} else {
			metrics.SetActiveNotifications(int(activeNotifs.Add(-1)))
		}
		broker.PublishNotificationEvent(kind, n)
	})
	if err != nil {
		return err
	}
	defer stopNotify()

	authSvc, err := BuildAuth(cfg)
	if err != nil {
		return err
	}

	apiRouter := api.NewRouter(svc, authSvc, authSvc, broker, cfg.App.HTTP.SimulatedLatency())

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Prometheus metrics.
	r.Handle("/metrics", promhttp.Handler())

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
