// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package cluster

import "fmt"

// DefaultMaxIterations caps the number of update steps when not configured.
const DefaultMaxIterations = 100

// Config holds k-means configuration.
type Config struct {
	// MaxIterations bounds the number of assignment/update steps.
	MaxIterations int `json:"max_iterations"`

	// Seed seeds the centroid sampler when the caller does not supply one.
	Seed int64 `json:"seed"`
}

// DefaultConfig returns the default clustering configuration.
func DefaultConfig() Config {
	return Config{
		MaxIterations: DefaultMaxIterations,
		Seed:          42,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.MaxIterations < 1 {
		return fmt.Errorf("max_iterations must be at least 1, got %d", c.MaxIterations)
	}
	return nil
}
