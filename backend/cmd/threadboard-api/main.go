package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/threadboard/threadboard/backend/internal/router"
	"github.com/threadboard/threadboard/backend/internal/setup"
	"github.com/threadboard/threadboard/shared/config"
	"github.com/threadboard/threadboard/shared/logger"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 35 * time.Second
	idleTimeout  = 60 * time.Second
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	deps, err := setup.SetupDependencies(ctx, cfg)
	cancel()
	if err != nil {
		logger.Log.Error("failed to set up dependencies", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.Log.Error("failed to close storage", "error", err)
		}
	}()

	server := &http.Server{
		Addr:         cfg.Public.HttpAddr,
		Handler:      router.New(deps),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	done := runGracefulShutdown(server, cfg.ShutdownTimeout())

	logger.Log.Info("server started", "addr", server.Addr, "storage", cfg.Public.StorageDriver)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Error("server failed", "error", err)
		return
	}
	<-done
	logger.Log.Info("server stopped")
}

func runGracefulShutdown(server *http.Server, timeout time.Duration) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer close(done)
		<-sigChan
		logger.Log.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("server shutdown error", "error", err)
		}
	}()
	return done
}
