// Package server boots the API from configuration and runs it until a
// shutdown signal.
package server

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

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/internal/kernel"
	"github.com/shashiranjanraj/pizzeria/pkg/cache"
	"github.com/shashiranjanraj/pizzeria/pkg/database"
	"github.com/shashiranjanraj/pizzeria/pkg/event"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
	"github.com/shashiranjanraj/pizzeria/pkg/middleware"
	"github.com/shashiranjanraj/pizzeria/pkg/storage"
	"github.com/shashiranjanraj/pizzeria/pkg/workerpool"
)

const shutdownTimeout = 10 * time.Second

// Start loads the config, connects the database, cache and storage, and
// serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives.
func Start(ctx context.Context) error {
	cfg, err := config.Build()
	if err != nil {
		return err
	}

	closeLogs := setupLogging(ctx, cfg)
	defer closeLogs()

	db, err := database.Connect(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("server: auto-migrate: %w", err)
	}

	var store *cache.Store
	if cfg.RedisAddr != "" {
		store, err = cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Warn("redis unavailable, serving without cache", "error", err)
			store = nil
		} else {
			defer func() { _ = store.Close() }()
		}
	}

	disks, err := storage.NewManager(ctx, storage.FromEnv())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter := middleware.NewIPLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Cleanup(ctx)

	pool := workerpool.New(4)
	defer pool.Shutdown()
	events := event.NewWithPool(pool)

	handler, err := kernel.NewHandler(kernel.Deps{
		Config:  cfg,
		DB:      db,
		Cache:   store,
		Storage: disks,
		Events:  events,
		Limiter: limiter,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return Serve(ctx, srv)
}

// Serve runs srv until ctx is done, then drains in-flight requests for up
// to shutdownTimeout.
func Serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", shutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

// setupLogging installs the stdout logger, teed to MongoDB when
// LOG_MONGO_URI is set. The returned func flushes the sink.
func setupLogging(ctx context.Context, cfg *config.App) func() {
	if cfg.LogMongoURI == "" {
		logger.Setup(cfg.Env)
		return func() {}
	}

	sink, err := logger.NewMongoHandler(ctx, cfg.LogMongoURI, cfg.LogMongoDB, cfg.LogMongoCollection, slog.LevelInfo)
	if err != nil {
		logger.Setup(cfg.Env)
		logger.Warn("mongo log sink unavailable", "error", err)
		return func() {}
	}
	logger.Setup(cfg.Env, sink)
	return sink.Close
}
