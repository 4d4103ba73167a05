// Package main is the entrypoint for the docproc web frontend.
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

	"github.com/kimocks-netizen/docproc-client/internal/backend"
	"github.com/kimocks-netizen/docproc-client/internal/config"
	"github.com/kimocks-netizen/docproc-client/internal/state"
	"github.com/kimocks-netizen/docproc-client/internal/storage"
	"github.com/kimocks-netizen/docproc-client/internal/web"
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
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The web surface serves localhost or a deployed domain; the hostname it
	// is reached through decides the backend per the resolution rules.
	baseURL := cfg.Backend.ResolveBaseURL(hostnameFromEnv())
	slog.Info("config loaded", "env", cfg.Web.Env, "backend_url", baseURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := backend.NewHTTPClient(baseURL, cfg.Backend.Timeout)

	var storageClient *storage.Client
	if cfg.Storage.Enabled {
		storageClient = storage.NewClient(cfg.Storage.URL, cfg.Storage.Key, cfg.Storage.Bucket, cfg.Backend.Timeout)
		slog.Info("storage downloads enabled", "bucket", cfg.Storage.Bucket)
	}

	store := state.NewStore()
	store.Dispatch(state.SetDarkMode{DarkMode: state.LoadDarkMode()})

	handlers := web.NewHandlers(client, store, storageClient, cfg.Poll.Interval)
	router := web.NewRouter(handlers)

	addr := fmt.Sprintf(":%d", cfg.Web.Port)
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

// hostnameFromEnv reports the public hostname the frontend is served under,
// when the deployment platform provides one. Empty means local.
func hostnameFromEnv() string {
	return os.Getenv("DOCPROC_PUBLIC_HOSTNAME")
}
