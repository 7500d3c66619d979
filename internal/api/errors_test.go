// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/tomtom215/tastemap/internal/cluster"
	"github.com/tomtom215/tastemap/internal/recommend"
	"github.com/tomtom215/tastemap/internal/store"
	"github.com/tomtom215/tastemap/internal/validation"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validation.NewRequestValidationError("k", "type", "x", "k must be an integer"), http.StatusBadRequest, ErrCodeValidation},
		{"not found", fmt.Errorf("load user %q: %w", "bob", store.ErrNotFound), http.StatusNotFound, ErrCodeNotFound},
		{"insufficient data", fmt.Errorf("cluster restaurants: %w", &cluster.InsufficientDataError{K: 5, N: 2}), http.StatusUnprocessableEntity, ErrCodeInsufficientData},
		{"no usable feature", fmt.Errorf("rate restaurants: %w", recommend.ErrNoUsableFeature), http.StatusUnprocessableEntity, ErrCodeNoUsableFeature},
		{"timeout", fmt.Errorf("load: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, ErrCodeTimeout},
		{"other", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, msg := errorResponse(tt.err)
			if status != tt.status || code != tt.code {
				t.Errorf("errorResponse() = (%d, %s), want (%d, %s)", status, code, tt.status, tt.code)
			}
			if msg == "" {
				t.Error("empty message")
			}
			if tt.status == http.StatusInternalServerError && msg == tt.err.Error() {
				t.Error("internal error text must not be exposed")
			}
		})
	}
}

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"line\nbreak", "line\\x0abreak"},
		{"tab\there", "tab\\x09here"},
		{"del\x7f", "del\\x7f"},
		{"ünïcode", "ünïcode"},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateETag(t *testing.T) {
	a := generateETag([]byte(`{"status":"success"}`))
	if a != generateETag([]byte(`{"status":"success"}`)) {
		t.Error("ETag is not stable for identical bodies")
	}
	if a == generateETag([]byte(`{"status":"error"}`)) {
		t.Error("different bodies share an ETag")
	}
}
