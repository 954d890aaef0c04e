package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"catalog-api/internal/config"
	"catalog-api/internal/logger"
	"catalog-api/internal/seed"
	"catalog-api/internal/server"

	"go.uber.org/zap"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("Catalog API stopped", zap.Error(err))
	}
	log.Info("Graceful shutdown complete")
}

func run(cfg *config.Config, log *zap.Logger) error {
	log.Info("Starting catalog API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Driver),
		zap.String("uploads", cfg.Upload.Driver),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// Postgres also runs its migrations here
	store, err := server.OpenStore(startCtx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	log.Info("Store health check", zap.Any("health", store.Health(startCtx)))

	blobs, err := server.OpenBlobStore(startCtx, cfg, log)
	if err != nil {
		store.Close(startCtx)
		return fmt.Errorf("failed to open upload store: %w", err)
	}

	srv := server.NewServer(cfg, log, store, blobs)
	defer srv.Close()

	if cfg.SeedData {
		if err := seed.New(store.Products, store.Categories, srv.ProductService(), log).Run(startCtx); err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	// Stop on SIGINT/SIGTERM; a second signal kills the process
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	log.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	return nil
}
