// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/tastemap/internal/cluster"
	"github.com/tomtom215/tastemap/internal/recommend"
	"github.com/tomtom215/tastemap/internal/validation"
)

// Store backends.
const (
	StoreJSON   = "json"
	StoreBadger = "badger"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml or CONFIG_PATH)
//  3. Environment Variables: Override any mapped setting
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cluster   ClusterConfig   `koanf:"cluster"`
	Cache     CacheConfig     `koanf:"cache"`
	Badger    BadgerConfig    `koanf:"badger"`
}

// DataConfig selects where the catalog and users come from.
//
// Environment Variables:
//   - DATA_DIR: directory with restaurants.json, reviews.json and users/ (default: ./data)
//   - DATA_STORE: json or badger (default: json)
//   - BADGER_PATH: Badger directory when DATA_STORE=badger (default: ./data/badger)
//   - DATA_IMPORT_ON_STARTUP: import DATA_DIR into Badger at startup (default: true)
type DataConfig struct {
	Dir             string `koanf:"dir" validate:"required"`
	Store           string `koanf:"store" validate:"oneof=json badger"`
	BadgerPath      string `koanf:"badger_path"`
	ImportOnStartup bool   `koanf:"import_on_startup"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds rating and request limits.
//
// Environment Variables:
//   - RECOMMEND_FEATURES: comma-separated candidate features (default: all)
//   - RECOMMEND_DEFAULT_K: clusters when a request omits k (default: 5)
//   - RECOMMEND_MAX_K: upper bound on requested clusters (default: 50)
//   - RECOMMEND_TIMEOUT: per-request computation timeout (default: 10s)
type RecommendConfig struct {
	Features []string      `koanf:"features"`
	DefaultK int           `koanf:"default_k" validate:"gte=0"`
	MaxK     int           `koanf:"max_k" validate:"gte=1"`
	Timeout  time.Duration `koanf:"timeout" validate:"gte=0"`
}

// ClusterConfig holds k-means settings
type ClusterConfig struct {
	MaxIterations int   `koanf:"max_iterations" validate:"gte=1"`
	Seed          int64 `koanf:"seed"`
}

// CacheConfig controls the rendered map cache
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	TTL        time.Duration `koanf:"ttl" validate:"gte=0"`
	MaxEntries int           `koanf:"max_entries" validate:"gte=0"`
}

// BadgerConfig controls value log garbage collection
type BadgerConfig struct {
	GCInterval     time.Duration `koanf:"gc_interval" validate:"gte=0"`
	GCDiscardRatio float64       `koanf:"gc_discard_ratio" validate:"gt=0,lt=1"`
}

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if c.Data.Store == StoreBadger && c.Data.BadgerPath == "" {
		return fmt.Errorf("BADGER_PATH is required when DATA_STORE=badger")
	}
	if !c.Security.RateLimitDisabled && c.Security.RateLimitReqs > 0 && c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	if c.Cache.Enabled && c.Cache.MaxEntries == 0 {
		return fmt.Errorf("cache.max_entries must be positive when the cache is enabled")
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.EngineConfig().Validate()
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled", "":
	default:
		return fmt.Errorf("LOG_LEVEL %q is invalid", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console", "pretty", "":
	default:
		return fmt.Errorf("LOG_FORMAT %q is invalid (use json or console)", c.Logging.Format)
	}
	return nil
}

// EngineConfig converts the recommend and cluster sections into the engine's
// own configuration.
func (c *Config) EngineConfig() *recommend.Config {
	features := append([]string(nil), c.Recommend.Features...)
	if len(features) == 0 {
		features = recommend.FeatureNames()
	}
	return &recommend.Config{
		Features: features,
		Limits: recommend.LimitsConfig{
			DefaultK: c.Recommend.DefaultK,
			MaxK:     c.Recommend.MaxK,
			Timeout:  c.Recommend.Timeout,
		},
		Cluster: cluster.Config{
			MaxIterations: c.Cluster.MaxIterations,
			Seed:          c.Cluster.Seed,
		},
	}
}

// Addr returns the HTTP listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
