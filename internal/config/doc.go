// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

/*
Package config provides centralized configuration management for Tastemap.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file (config.yaml, config.yml, /etc/tastemap/config.yaml or the path in
CONFIG_PATH), then environment variables. Later layers win.

# Environment Variables

Data:
  - DATA_DIR: catalog directory (default: ./data)
  - DATA_STORE: json or badger (default: json)
  - BADGER_PATH: Badger directory (default: ./data/badger)
  - DATA_IMPORT_ON_STARTUP: copy DATA_DIR into Badger at startup (default: true)

HTTP Server:
  - HTTP_HOST: bind address (default: 0.0.0.0)
  - HTTP_PORT: listen port (default: 8080)
  - HTTP_TIMEOUT: request timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: graceful shutdown timeout (default: 10s)

Security:
  - CORS_ORIGINS: comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS: requests per window per IP (default: 100)
  - RATE_LIMIT_WINDOW: rate limit window (default: 1m)
  - DISABLE_RATE_LIMIT: turn rate limiting off (default: false)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Recommendation and clustering:
  - RECOMMEND_FEATURES: comma-separated features (default: all five)
  - RECOMMEND_DEFAULT_K, RECOMMEND_MAX_K, RECOMMEND_TIMEOUT
  - KMEANS_MAX_ITERATIONS: k-means iteration cap (default: 100)
  - KMEANS_SEED: default centroid sampling seed (default: 42)

Map cache and Badger maintenance:
  - CACHE_ENABLED, CACHE_TTL, CACHE_MAX_ENTRIES
  - BADGER_GC_INTERVAL, BADGER_GC_DISCARD_RATIO

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	engine, err := recommend.NewEngine(cfg.EngineConfig(), logger)

# Validation

Struct tags are checked with go-playground/validator, followed by cross-field
checks (Badger path for the badger store, rate limit window, engine limits).
Load returns the first failure.
*/
package config
