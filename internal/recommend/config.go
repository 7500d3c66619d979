// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/tastemap/internal/cluster"
)

// Config contains all configuration for the engine.
type Config struct {
	// Features lists candidate feature names in selection order.
	// Empty means every default feature.
	Features []string `json:"features"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cluster contains k-means parameters.
	Cluster cluster.Config `json:"cluster"`
}

// LimitsConfig bounds request parameters.
type LimitsConfig struct {
	// DefaultK is the cluster count used by callers that do not specify one.
	DefaultK int `json:"default_k"`

	// MaxK caps the requested cluster count.
	MaxK int `json:"max_k"`

	// Timeout bounds a single Visualize call.
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Features: FeatureNames(),
		Limits: LimitsConfig{
			DefaultK: 5,
			MaxK:     50,
			Timeout:  10 * time.Second,
		},
		Cluster: cluster.DefaultConfig(),
	}
}

// Validate checks that all configuration values are valid.
func (c *Config) Validate() error {
	if _, err := FeaturesByName(c.Features); err != nil {
		return fmt.Errorf("features: %w", err)
	}

	if c.Limits.DefaultK < 0 {
		return fmt.Errorf("limits.default_k must be non-negative, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < 1 {
		return fmt.Errorf("limits.max_k must be positive, got %d", c.Limits.MaxK)
	}
	if c.Limits.DefaultK > c.Limits.MaxK {
		return fmt.Errorf("limits.default_k (%d) must not exceed limits.max_k (%d)", c.Limits.DefaultK, c.Limits.MaxK)
	}
	if c.Limits.Timeout < 0 {
		return fmt.Errorf("limits.timeout must be non-negative, got %v", c.Limits.Timeout)
	}

	if err := c.Cluster.Validate(); err != nil {
		return fmt.Errorf("cluster.%w", err)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	return &Config{
		Features: append([]string(nil), c.Features...),
		Limits:   c.Limits,
		Cluster:  c.Cluster,
	}
}
