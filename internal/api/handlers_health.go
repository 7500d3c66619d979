// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/tastemap/internal/models"
)

// HealthLive handles GET /api/v1/health/live. It reports 200 whenever the
// process can serve HTTP, regardless of the data store.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{
		"alive":          true,
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	}, newMetadata(r))
}

// HealthReady handles GET /api/v1/health/ready. It reports 200 only when
// the catalog and the user list can be read, and 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	restaurants, err := h.engine.Restaurants(r.Context(), "")
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, "catalog unavailable", err)
		return
	}
	users, err := h.engine.Users(r.Context())
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, "user store unavailable", err)
		return
	}

	meta := newMetadata(r)
	meta.QueryTimeMS = time.Since(start).Milliseconds()
	respondSuccess(w, r, models.HealthStatus{
		Status:      "ready",
		Store:       h.config.StoreName,
		Restaurants: len(restaurants),
		Users:       len(users),
		Uptime:      time.Since(h.startTime).Seconds(),
	}, meta)
}

// HealthPerformance handles GET /api/v1/health/performance with latency
// percentiles per endpoint, engine counters and map cache statistics.
func (h *Handler) HealthPerformance(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"endpoints": h.perfMon.Stats(),
		"engine":    h.engine.Stats(),
	}
	if h.mapCache != nil {
		data["map_cache"] = h.mapCache.Stats()
	}
	respondSuccess(w, r, data, newMetadata(r))
}
