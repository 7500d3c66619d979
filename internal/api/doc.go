// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

/*
Package api serves the restaurant ratings and cluster map over HTTP.

# Endpoints

	GET /api/v1/health/live                 liveness probe
	GET /api/v1/health/ready                readiness probe (catalog and users readable)
	GET /api/v1/health/performance          latency percentiles, engine and cache stats
	GET /api/v1/restaurants?query=          catalog, optionally filtered by category
	GET /api/v1/categories                  every category label, sorted
	GET /api/v1/users                       every user name, sorted
	GET /api/v1/users/{user}/ratings        ratings (query, predict)
	GET /api/v1/map                         GeoJSON map (user, k, query, predict, seed)
	GET /metrics                            Prometheus metrics

JSON endpoints answer with the models.APIResponse envelope. The map
endpoint answers with application/geo+json on success and the envelope on
error.

# Errors

	invalid parameters              400 VALIDATION_ERROR
	unknown user                    404 NOT_FOUND
	more clusters than restaurants  422 INSUFFICIENT_DATA
	no usable predictor feature     422 NO_USABLE_FEATURE
	computation timeout             504 TIMEOUT
	anything else                   500 INTERNAL_ERROR

# Caching

Rendered maps are cached in a cache.LRU keyed by the normalized request
parameters, so a repeated request with the same seed skips the regression
fits and k-means entirely. User files in the JSON store are read per
request, so edits become visible once the entry expires or
Handler.ClearCache is called.
*/
package api
