package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"dispatchflow/internal/app"
	"dispatchflow/internal/platform/config"
	"dispatchflow/internal/platform/httpserver"
	"dispatchflow/internal/platform/logger"
)

// main loads configuration, assembles the service and keeps the server
// lifecycle small. Business logic lives in the internal service packages.
func main() {
	boot := logger.New("info")
	cfg, err := config.Load()
	if err != nil {
		boot.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	a, err := app.Build(ctx, cfg, log, reg)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("store close failed", "error", err)
		}
	}()

	go a.PruneSessions(ctx, app.PruneInterval, app.SessionIdle)

	srv := httpserver.New(cfg.Server.Addr, a.Handler)
	log.Info("starting dispatchflow", "addr", cfg.Server.Addr, "store", cfg.Store.Backend)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Error("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
