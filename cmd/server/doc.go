// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

/*
Package main is the entry point for the Tastemap server.

Tastemap predicts how much a user will like each restaurant from their
existing reviews, fitting one single-feature least-squares model per user,
and groups the results into k-means clusters rendered as GeoJSON.

# Architecture

	RootSupervisor ("tastemap")
	├── DataSupervisor ("data-layer")
	│   └── BadgerGCService (DATA_STORE=badger)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Startup order:

 1. Configuration: koanf with defaults, optional YAML file, then environment
 2. Logging: zerolog, level and format from LOG_LEVEL and LOG_FORMAT
 3. Store: JSON directory, or Badger with an optional import of DATA_DIR
 4. Engine: recommendation and clustering over the store
 5. HTTP: chi router with CORS, rate limiting and Prometheus metrics

# Shutdown

SIGINT and SIGTERM cancel the root context. The HTTP server drains within
SHUTDOWN_TIMEOUT and services that fail to stop are reported before exit.

# Environment

See internal/config for the full list. The most common settings:

	HTTP_HOST, HTTP_PORT      listen address (default 0.0.0.0:8080)
	DATA_DIR                  restaurants.json, reviews.json and users/
	DATA_STORE                json or badger
	RECOMMEND_DEFAULT_K       clusters when a request omits k
	LOG_LEVEL, LOG_FORMAT     zerolog level and json or console output
*/
package main
