// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

/*
Package metrics provides Prometheus metrics collection and export.

All collectors are registered with the default registry through promauto and
are exposed at /metrics by the API router:

	curl http://localhost:3857/metrics

# Available Metrics

Clustering:
  - tastemap_cluster_runs_total{outcome}: converged, max_iterations, error
  - tastemap_cluster_iterations: update steps per run (histogram)
  - tastemap_cluster_dropped_centroids_total: centroids that lost every point

Scoring:
  - tastemap_regression_fits_total{feature,outcome}: ok, degenerate, error
  - tastemap_feature_selected_total{feature}
  - tastemap_selected_r_squared (histogram)
  - tastemap_ratings_total{source}: review, model

Store and cache:
  - tastemap_store_load_duration_seconds{store,operation}
  - tastemap_store_errors_total{store,operation}
  - tastemap_store_gc_runs_total{result}
  - tastemap_map_cache_hits_total, tastemap_map_cache_misses_total

HTTP:
  - api_requests_total{method,endpoint,status}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests

The Record* helpers are safe for concurrent use.
*/
package metrics
