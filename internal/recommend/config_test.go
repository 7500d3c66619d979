// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package recommend

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("validates", func(t *testing.T) {
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})

	t.Run("all features enabled", func(t *testing.T) {
		if len(cfg.Features) != 5 {
			t.Errorf("len(Features) = %d, want 5", len(cfg.Features))
		}
	})

	t.Run("limits config has valid defaults", func(t *testing.T) {
		if cfg.Limits.MaxK < cfg.Limits.DefaultK {
			t.Errorf("Limits.MaxK = %d, want >= DefaultK (%d)", cfg.Limits.MaxK, cfg.Limits.DefaultK)
		}
	})

	t.Run("cluster defaults", func(t *testing.T) {
		if cfg.Cluster.MaxIterations != 100 {
			t.Errorf("Cluster.MaxIterations = %d, want 100", cfg.Cluster.MaxIterations)
		}
		if cfg.Cluster.Seed == 0 {
			t.Error("Cluster.Seed = 0, want non-zero for determinism")
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{name: "valid default config", modify: func(c *Config) {}},
		{name: "empty features means all", modify: func(c *Config) { c.Features = nil }},
		{name: "subset of features", modify: func(c *Config) { c.Features = []string{"price"} }},
		{name: "unknown feature", modify: func(c *Config) { c.Features = []string{"vibes"} }, wantError: true},
		{name: "negative default k", modify: func(c *Config) { c.Limits.DefaultK = -1 }, wantError: true},
		{name: "zero max k", modify: func(c *Config) { c.Limits.MaxK = 0 }, wantError: true},
		{name: "default k above max k", modify: func(c *Config) { c.Limits.DefaultK = 60 }, wantError: true},
		{name: "negative timeout", modify: func(c *Config) { c.Limits.Timeout = -time.Second }, wantError: true},
		{name: "zero max iterations", modify: func(c *Config) { c.Cluster.MaxIterations = 0 }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()

	clone.Features[0] = "changed"
	clone.Limits.MaxK = 1

	if cfg.Features[0] == "changed" {
		t.Error("Clone() shares Features slice with original")
	}
	if cfg.Limits.MaxK == 1 {
		t.Error("Clone() shares Limits with original")
	}
}
