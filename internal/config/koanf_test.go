// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Data.Dir != "./data" || cfg.Data.Store != StoreJSON {
		t.Errorf("Data = %+v, want ./data with json store", cfg.Data)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Server.Timeout = %v, want 30s", cfg.Server.Timeout)
	}
	if cfg.Security.RateLimitReqs != 100 {
		t.Errorf("Security.RateLimitReqs = %d, want 100", cfg.Security.RateLimitReqs)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}
	if cfg.Recommend.DefaultK != 5 || cfg.Recommend.MaxK != 50 {
		t.Errorf("Recommend = %+v, want default_k 5 max_k 50", cfg.Recommend)
	}
	if len(cfg.Recommend.Features) != 5 {
		t.Errorf("Recommend.Features = %v, want all five features", cfg.Recommend.Features)
	}
	if cfg.Cluster.MaxIterations != 100 || cfg.Cluster.Seed != 42 {
		t.Errorf("Cluster = %+v, want 100 iterations seed 42", cfg.Cluster)
	}
	if !cfg.Cache.Enabled || cfg.Cache.MaxEntries != 256 {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DATA_DIR", "data.dir"},
		{"DATA_STORE", "data.store"},
		{"BADGER_PATH", "data.badger_path"},
		{"HTTP_PORT", "server.port"},
		{"HTTP_HOST", "server.host"},
		{"LOG_LEVEL", "logging.level"},
		{"LOG_FORMAT", "logging.format"},
		{"KMEANS_MAX_ITERATIONS", "cluster.max_iterations"},
		{"KMEANS_SEED", "cluster.seed"},
		{"RECOMMEND_FEATURES", "recommend.features"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"cache_ttl", "cache.ttl"},

		// Unknown (should return empty)
		{"RANDOM_VAR", ""},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := envTransformFunc(tt.input); result != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// TestFindConfigFile verifies config file discovery
func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(origDir); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Run("no config file exists", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})

	t.Run("config.yml exists", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")
		if err := os.WriteFile("config.yml", []byte("server:\n  port: 1\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		defer os.Remove("config.yml")
		if result := findConfigFile(); result != "config.yml" {
			t.Errorf("findConfigFile() = %q, want config.yml", result)
		}
	})

	t.Run("CONFIG_PATH wins", func(t *testing.T) {
		custom := filepath.Join(tmpDir, "custom.yaml")
		if err := os.WriteFile(custom, []byte("{}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Setenv(ConfigPathEnvVar, custom)
		if result := findConfigFile(); result != custom {
			t.Errorf("findConfigFile() = %q, want %q", result, custom)
		}
	})

	t.Run("CONFIG_PATH missing falls back", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, filepath.Join(tmpDir, "absent.yaml"))
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})
}

func TestLoadEnvVars(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/tastemap")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("KMEANS_SEED", "7")
	t.Setenv("KMEANS_MAX_ITERATIONS", "25")
	t.Setenv("RECOMMEND_FEATURES", "price, mean_score")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.Data.Dir != "/srv/tastemap" {
		t.Errorf("Data.Dir = %q", cfg.Data.Dir)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Cluster.Seed != 7 || cfg.Cluster.MaxIterations != 25 {
		t.Errorf("Cluster = %+v, want seed 7 iterations 25", cfg.Cluster)
	}
	if want := []string{"price", "mean_score"}; !reflect.DeepEqual(cfg.Recommend.Features, want) {
		t.Errorf("Recommend.Features = %v, want %v", cfg.Recommend.Features, want)
	}
	if len(cfg.Security.CORSOrigins) != 2 {
		t.Errorf("Security.CORSOrigins = %v, want 2 origins", cfg.Security.CORSOrigins)
	}
	if cfg.Cache.TTL != 30*time.Second {
		t.Errorf("Cache.TTL = %v, want 30s", cfg.Cache.TTL)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
data:
  dir: /var/lib/tastemap
  store: badger
  badger_path: /var/lib/tastemap/badger
server:
  port: 7000
recommend:
  features: [latitude, longitude]
  default_k: 3
cluster:
  seed: 99
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Data.Store != StoreBadger || cfg.Data.BadgerPath != "/var/lib/tastemap/badger" {
		t.Errorf("Data = %+v", cfg.Data)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if want := []string{"latitude", "longitude"}; !reflect.DeepEqual(cfg.Recommend.Features, want) {
		t.Errorf("Recommend.Features = %v, want %v", cfg.Recommend.Features, want)
	}
	if cfg.Recommend.DefaultK != 3 || cfg.Recommend.MaxK != 50 {
		t.Errorf("Recommend = %+v, want default_k 3 and default max_k", cfg.Recommend)
	}
	if cfg.Cluster.Seed != 99 || cfg.Cluster.MaxIterations != 100 {
		t.Errorf("Cluster = %+v", cfg.Cluster)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7000\nlogging:\n  level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HTTP_PORT", "7100")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Server.Port != 7100 {
		t.Errorf("Server.Port = %d, want env value 7100", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want file value debug", cfg.Logging.Level)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantSub string
	}{
		{"bad store", map[string]string{"DATA_STORE": "sqlite"}, "Store"},
		{"bad port", map[string]string{"HTTP_PORT": "70000"}, "Port"},
		{"unknown feature", map[string]string{"RECOMMEND_FEATURES": "stars"}, "stars"},
		{"zero iterations", map[string]string{"KMEANS_MAX_ITERATIONS": "0"}, "MaxIterations"},
		{"bad log level", map[string]string{"LOG_LEVEL": "loud"}, "LOG_LEVEL"},
		{"default k above max", map[string]string{"RECOMMEND_DEFAULT_K": "60"}, "max_k"},
		{"badger without path", map[string]string{"DATA_STORE": "badger", "BADGER_PATH": ""}, "BADGER_PATH"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadFile("")
			if err == nil {
				t.Fatal("LoadFile() error = nil, want validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("LoadFile() error = %v, want substring %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() with malformed YAML error = nil")
	}
}
