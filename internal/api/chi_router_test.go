// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/tastemap/internal/config"
	"github.com/tomtom215/tastemap/internal/middleware"
)

func TestRouter_NotFoundAndMethod(t *testing.T) {
	h, _ := newTestRouter(t)

	expectError(t, doGet(t, h, "/api/v1/nope"), http.StatusNotFound, ErrCodeNotFound)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/users", nil))
	expectError(t, rec, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed)
}

func TestRouter_Metrics(t *testing.T) {
	h, _ := newTestRouter(t)
	doGet(t, h, "/api/v1/users")

	rec := doGet(t, h, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"api_requests_total", `endpoint="/api/v1/users"`} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}

func TestRouter_RequestID(t *testing.T) {
	h, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(middleware.RequestIDHeader); got != "trace-42" {
		t.Errorf("response header = %q", got)
	}
	if env := decodeEnvelope(t, rec); env.Metadata.RequestID != "trace-42" {
		t.Errorf("metadata.request_id = %q", env.Metadata.RequestID)
	}
}

func TestRouter_ETag(t *testing.T) {
	h, _ := newTestRouter(t)
	ok := doGet(t, h, "/api/v1/categories")
	if etag := ok.Header().Get("ETag"); !strings.HasPrefix(etag, `"`) || !strings.HasSuffix(etag, `"`) {
		t.Errorf("ETag = %q, want a quoted value", etag)
	}

	notFound := doGet(t, h, "/api/v1/users/nobody/ratings")
	if notFound.Header().Get("ETag") != "" || notFound.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("error headers = %v", notFound.Header())
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	handler := NewHandler(newTestEngine(t, newJSONStore(t)), testHandlerConfig())
	mw := NewChiMiddlewareFromConfig(config.SecurityConfig{CORSOrigins: []string{"https://maps.example.com"}})
	h := NewRouter(handler, mw).SetupChi()

	tests := []struct {
		origin string
		want   string
	}{
		{"https://maps.example.com", "https://maps.example.com"},
		{"https://evil.example.com", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/map", nil)
		req.Header.Set("Origin", tt.origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("origin %s: Allow-Origin = %q, want %q", tt.origin, got, tt.want)
		}
	}
}

func TestRouter_RateLimit(t *testing.T) {
	handler := NewHandler(newTestEngine(t, newJSONStore(t)), testHandlerConfig())
	mw := NewChiMiddlewareFromConfig(config.SecurityConfig{RateLimitReqs: 2, RateLimitWindow: time.Minute})
	h := NewRouter(handler, mw).SetupChi()

	for i := 0; i < 2; i++ {
		if rec := doGet(t, h, "/api/v1/users"); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
	expectError(t, doGet(t, h, "/api/v1/users"), http.StatusTooManyRequests, ErrCodeRateLimited)

	// Health endpoints have their own, larger budget.
	if rec := doGet(t, h, "/api/v1/health/live"); rec.Code != http.StatusOK {
		t.Errorf("health status = %d", rec.Code)
	}
}

func TestChiMiddleware_RateLimitDisabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  ChiMiddlewareConfig
	}{
		{"flag", ChiMiddlewareConfig{RateLimitDisabled: true, RateLimitRequests: 1, RateLimitWindow: time.Minute}},
		{"zero requests", ChiMiddlewareConfig{RateLimitRequests: 0, RateLimitWindow: time.Minute}},
		{"zero window", ChiMiddlewareConfig{RateLimitRequests: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			limited := NewChiMiddleware(&cfg).RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			for i := 0; i < 5; i++ {
				rec := httptest.NewRecorder()
				limited.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
				if rec.Code != http.StatusOK {
					t.Fatalf("request %d status = %d", i, rec.Code)
				}
			}
		})
	}
}

func TestAPISecurityHeaders(t *testing.T) {
	h := APISecurityHeaders()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	want := map[string]string{
		"X-Content-Type-Options":    "nosniff",
		"X-Frame-Options":           "DENY",
		"Referrer-Policy":           "strict-origin-when-cross-origin",
		"Strict-Transport-Security": "",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}
