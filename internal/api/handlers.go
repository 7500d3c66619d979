// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package api

import (
	"time"

	"github.com/tomtom215/tastemap/internal/cache"
	"github.com/tomtom215/tastemap/internal/config"
	"github.com/tomtom215/tastemap/internal/logging"
	"github.com/tomtom215/tastemap/internal/middleware"
	"github.com/tomtom215/tastemap/internal/recommend"
)

// HandlerConfig holds the handler settings that do not live in the engine.
type HandlerConfig struct {
	// StoreName is reported by the readiness probe.
	StoreName string

	// CacheEnabled turns on the rendered map cache.
	CacheEnabled    bool
	CacheTTL        time.Duration
	CacheMaxEntries int
}

// HandlerConfigFrom extracts the handler settings from the application config.
func HandlerConfigFrom(cfg *config.Config) HandlerConfig {
	return HandlerConfig{
		StoreName:       cfg.Data.Store,
		CacheEnabled:    cfg.Cache.Enabled,
		CacheTTL:        cfg.Cache.TTL,
		CacheMaxEntries: cfg.Cache.MaxEntries,
	}
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: liveness, readiness and latency stats
//   - handlers_catalog.go: restaurants, categories and users
//   - handlers_map.go: per-user ratings and the GeoJSON map
type Handler struct {
	engine    *recommend.Engine
	config    HandlerConfig
	mapCache  *cache.LRU[[]byte] // nil when disabled
	perfMon   *middleware.PerformanceMonitor
	startTime time.Time
}

// NewHandler creates the API handler around engine, which must already
// have a data provider.
//
// Example:
//
//	handler := api.NewHandler(engine, api.HandlerConfigFrom(cfg))
//	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(cfg.Security))
//	server := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
func NewHandler(engine *recommend.Engine, cfg HandlerConfig) *Handler {
	h := &Handler{
		engine:    engine,
		config:    cfg,
		perfMon:   middleware.NewPerformanceMonitor(1000, middleware.DefaultSlowThreshold, logging.Logger()),
		startTime: time.Now(),
	}
	if cfg.CacheEnabled {
		h.mapCache = cache.NewLRU[[]byte](cfg.CacheMaxEntries, cfg.CacheTTL)
	}
	return h
}

// ClearCache drops every cached map. Call it after the catalog or user
// data changes underneath a running server.
func (h *Handler) ClearCache() {
	if h.mapCache != nil {
		h.mapCache.Purge()
	}
}

// PerformanceMonitor returns the monitor fed by the router's middleware.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}
