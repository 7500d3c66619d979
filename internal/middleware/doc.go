// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

/*
Package middleware provides the HTTP middleware used by the API router.

All middleware has the chi signature func(http.Handler) http.Handler:

  - RequestID: X-Request-ID propagation and a request-scoped logger
  - PrometheusMetrics: request count, latency and in-flight gauge, labeled
    by chi route pattern
  - PerformanceMonitor: sliding window of request latencies with slow
    request logging, served at /api/v1/health/performance
  - Compression: gzip for clients that send Accept-Encoding: gzip

Route labels come from chi.RouteContext, so PrometheusMetrics and
PerformanceMonitor must run inside a chi router.
*/
package middleware
