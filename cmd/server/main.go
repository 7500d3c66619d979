// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/tastemap/internal/api"
	"github.com/tomtom215/tastemap/internal/config"
	"github.com/tomtom215/tastemap/internal/logging"
	"github.com/tomtom215/tastemap/internal/metrics"
	"github.com/tomtom215/tastemap/internal/recommend"
	"github.com/tomtom215/tastemap/internal/supervisor"
	"github.com/tomtom215/tastemap/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("store", cfg.Data.Store).
		Str("data_dir", cfg.Data.Dir).
		Msg("Starting Tastemap with supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	data, err := openStore(ctx, cfg, logging.WithComponent("store"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open data store")
	}
	defer func() {
		if err := data.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close data store")
		}
	}()

	engine, err := recommend.NewEngine(cfg.EngineConfig(), logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	engine.SetDataProvider(data.provider)

	handler := api.NewHandler(engine, api.HandlerConfigFrom(cfg))
	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	// Data layer services
	if data.badger != nil && cfg.Badger.GCInterval > 0 {
		tree.AddDataService(services.NewBadgerGCService(
			data.badger, cfg.Badger.GCInterval, cfg.Badger.GCDiscardRatio, logging.WithComponent("badger-gc")))
		logging.Info().Dur("interval", cfg.Badger.GCInterval).Msg("Badger GC service added")
	}

	// API layer services
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.WithComponent("http")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
