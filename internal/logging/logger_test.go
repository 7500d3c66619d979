// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// restoreGlobal resets the global logger after a test that calls Init.
func restoreGlobal(t *testing.T) {
	t.Helper()
	prev := Logger()
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != "info" || cfg.Format != "json" || cfg.Caller || cfg.Output == nil {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestInit(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer

	Init(Config{Level: "debug", Format: "json", Output: &buf})
	Info().Str("k", "v").Msg("test message")
	Debug().Msg("debug message")

	out := buf.String()
	for _, want := range []string{"test message", `"level":"info"`, `"k":"v"`, "debug message", `"time"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestInit_LevelFilters(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer

	Init(Config{Level: "warn", Output: &buf})
	Info().Msg("hidden")
	Warn().Msg("shown")
	Err(errors.New("boom")).Msg("failed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message written at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "boom") {
		t.Errorf("warn/error messages missing: %s", out)
	}
}

func TestInit_Console(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer

	Init(Config{Level: "info", Format: "console", Output: &buf})
	Info().Msg("console message")

	out := buf.String()
	if !strings.Contains(out, "console message") || strings.HasPrefix(out, "{") {
		t.Errorf("console output = %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWithComponent(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer
	Init(Config{Output: &buf})

	l := WithComponent("store")
	l.Info().Msg("loaded")

	if !strings.Contains(buf.String(), `"component":"store"`) {
		t.Errorf("component field missing: %s", buf.String())
	}
}
