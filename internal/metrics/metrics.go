// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - k-means clustering runs
// - per-user regression fits and feature selection
// - rating sources (recorded vs predicted)
// - catalog store loads
// - API endpoint latency and throughput
// - map response cache

var (
	// Clustering Metrics
	ClusterRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastemap_cluster_runs_total",
			Help: "Total number of k-means runs by outcome",
		},
		[]string{"outcome"}, // "converged", "max_iterations", "error"
	)

	ClusterIterations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tastemap_cluster_iterations",
			Help:    "Number of k-means update steps per run",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34, 55, 100},
		},
	)

	ClusterDroppedCentroids = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tastemap_cluster_dropped_centroids_total",
			Help: "Total number of centroids dropped because no point was assigned to them",
		},
	)

	// Regression Metrics
	RegressionFits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastemap_regression_fits_total",
			Help: "Total number of single-feature regression fits",
		},
		[]string{"feature", "outcome"}, // outcome: "ok", "degenerate", "error"
	)

	FeatureSelected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastemap_feature_selected_total",
			Help: "Total number of times a feature won predictor selection",
		},
		[]string{"feature"},
	)

	SelectedRSquared = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tastemap_selected_r_squared",
			Help:    "Coefficient of determination of the selected predictor",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	Ratings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastemap_ratings_total",
			Help: "Total number of ratings produced by source",
		},
		[]string{"source"}, // "review", "model"
	)

	// Store Metrics
	StoreLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tastemap_store_load_duration_seconds",
			Help:    "Duration of catalog store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"store", "operation"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastemap_store_errors_total",
			Help: "Total number of catalog store errors",
		},
		[]string{"store", "operation"},
	)

	StoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastemap_store_gc_runs_total",
			Help: "Total number of value log GC passes by result",
		},
		[]string{"result"}, // "rewritten", "noop", "error"
	)

	// Cache Metrics
	MapCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tastemap_map_cache_hits_total",
			Help: "Total number of map response cache hits",
		},
	)

	MapCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tastemap_map_cache_misses_total",
			Help: "Total number of map response cache misses",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of active API requests",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordClusterRun records a finished k-means run.
func RecordClusterRun(iterations int, converged bool, dropped int) {
	outcome := "max_iterations"
	if converged {
		outcome = "converged"
	}
	ClusterRuns.WithLabelValues(outcome).Inc()
	ClusterIterations.Observe(float64(iterations))
	if dropped > 0 {
		ClusterDroppedCentroids.Add(float64(dropped))
	}
}

// RecordClusterError records a k-means run rejected before it started.
func RecordClusterError() {
	ClusterRuns.WithLabelValues("error").Inc()
}

// RecordRegressionFit records one feature fit
func RecordRegressionFit(feature, outcome string) {
	RegressionFits.WithLabelValues(feature, outcome).Inc()
}

// RecordFeatureSelection records the winning feature and its R².
func RecordFeatureSelection(feature string, rSquared float64) {
	FeatureSelected.WithLabelValues(feature).Inc()
	SelectedRSquared.Observe(rSquared)
}

// RecordRatings records how many ratings came from reviews and from the model.
func RecordRatings(reviewed, predicted int) {
	if reviewed > 0 {
		Ratings.WithLabelValues("review").Add(float64(reviewed))
	}
	if predicted > 0 {
		Ratings.WithLabelValues("model").Add(float64(predicted))
	}
}

// RecordStoreOperation records a store operation metric
func RecordStoreOperation(store, operation string, duration time.Duration, err error) {
	StoreLoadDuration.WithLabelValues(store, operation).Observe(duration.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(store, operation).Inc()
	}
}

// RecordStoreGC records the result of one value log GC pass.
func RecordStoreGC(result string) {
	StoreGCRuns.WithLabelValues(result).Inc()
}

// RecordMapCache records a map cache lookup
func RecordMapCache(hit bool) {
	if hit {
		MapCacheHits.Inc()
	} else {
		MapCacheMisses.Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
