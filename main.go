package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bonube/padron/internal/config"
	"github.com/bonube/padron/internal/handler"
	"github.com/bonube/padron/internal/repository"
	"github.com/bonube/padron/internal/service"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, logOpts))
	slog.SetDefault(logger)

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		// Deferred condition: requests get 503 until DATABASE_URL is set.
		slog.Warn("DATABASE_URL not set, store requests will fail with service unavailable")
	}

	provider := repository.NewProvider(cfg.DatabaseURL)
	defer provider.Close()

	usuarioService := service.NewUsuarioService(provider)
	usuarioHandler := handler.NewUsuarioHandler(usuarioService)

	metricsHandler, err := handler.RegisterMetrics(nil)
	if err != nil {
		slog.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, usuarioHandler, metricsHandler)

	chain := handler.SecurityHeaders(
		handler.RequestID(
			handler.RequestLogger(
				handler.Instrument(
					handler.Recover(mux)))))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           chain,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
