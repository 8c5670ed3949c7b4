package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/RaiderT63/foodgram/config"
	"github.com/RaiderT63/foodgram/webserver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration failed", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)

	ws, err := webserver.NewWebServer(webserver.Settings{
		DocumentRoot:     cfg.DocumentRoot,
		IndexFileName:    cfg.IndexFileName,
		ErrorFileName:    cfg.ErrorFileName,
		ServerName:       cfg.ServerName,
		StaticPrefix:     cfg.StaticPrefix,
		StaticMaxAge:     cfg.StaticMaxAge,
		CacheEnabled:     cfg.CacheEnabled,
		CacheTTL:         cfg.CacheTTL,
		CacheMaxFileSize: cfg.CacheMaxFileSize,
		CacheMaxItems:    cfg.CacheMaxItems,
	})
	if err != nil {
		logger.Error("web server setup failed", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      ws,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.ListenAddr, "root", cfg.DocumentRoot)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			os.Exit(1)
		}

		logger.Info("server stopped")
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
