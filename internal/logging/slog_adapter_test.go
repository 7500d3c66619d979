// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newSlog(buf *bytes.Buffer) *slog.Logger {
	return slog.New(NewSlogHandler(zerolog.New(buf)))
}

func TestSlogHandler_Levels(t *testing.T) {
	restoreGlobal(t)
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	tests := []struct {
		name  string
		log   func(*slog.Logger)
		level string
	}{
		{"debug", func(l *slog.Logger) { l.Debug("m") }, "debug"},
		{"info", func(l *slog.Logger) { l.Info("m") }, "info"},
		{"warn", func(l *slog.Logger) { l.Warn("m") }, "warn"},
		{"error", func(l *slog.Logger) { l.Error("m") }, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(newSlog(&buf))
			if !strings.Contains(buf.String(), `"level":"`+tt.level+`"`) {
				t.Errorf("output = %s, want level %s", buf.String(), tt.level)
			}
		})
	}
}

func TestSlogHandler_Attrs(t *testing.T) {
	var buf bytes.Buffer
	l := newSlog(&buf).With("service", "http")

	l.Info("restarting",
		"attempt", 3,
		"healthy", false,
		"backoff", 2*time.Second,
		"ratio", 0.5,
		"error", errors.New("listen failed"),
		slog.Group("event", slog.String("type", "terminate")),
	)

	out := buf.String()
	for _, want := range []string{
		`"service":"http"`,
		`"attempt":3`,
		`"healthy":false`,
		`"ratio":0.5`,
		`"error":"listen failed"`,
		`"event.type":"terminate"`,
		`"message":"restarting"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	l := newSlog(&buf).WithGroup("supervisor").WithGroup("tree")
	l.Info("m", "name", "tastemap")

	if !strings.Contains(buf.String(), `"supervisor.tree.name":"tastemap"`) {
		t.Errorf("grouped key missing: %s", buf.String())
	}

	h := NewSlogHandler(zerolog.Nop())
	if h.WithGroup("") != h {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	h := NewSlogHandler(zerolog.New(nil).Level(zerolog.WarnLevel))
	ctx := context.Background()

	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("info enabled on a warn logger")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("error disabled on a warn logger")
	}
}

func TestNewSlogLogger(t *testing.T) {
	restoreGlobal(t)
	var buf bytes.Buffer
	Init(Config{Output: &buf})

	NewSlogLogger("supervisor").Info("started")

	if !strings.Contains(buf.String(), `"component":"supervisor"`) {
		t.Errorf("component missing: %s", buf.String())
	}
}
