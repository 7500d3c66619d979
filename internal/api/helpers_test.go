// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tastemap/internal/models"
	"github.com/tomtom215/tastemap/internal/recommend"
	"github.com/tomtom215/tastemap/internal/store"
)

const testDataDir = "../store/testdata"

// envelope decodes an APIResponse keeping data raw.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func newTestEngine(t *testing.T, dp recommend.DataProvider) *recommend.Engine {
	t.Helper()
	engine, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	engine.SetDataProvider(dp)
	return engine
}

func newJSONStore(t *testing.T) *store.JSONStore {
	t.Helper()
	s, err := store.OpenJSON(testDataDir, zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenJSON: %v", err)
	}
	return s
}

func testHandlerConfig() HandlerConfig {
	return HandlerConfig{
		StoreName:       "json",
		CacheEnabled:    true,
		CacheTTL:        time.Minute,
		CacheMaxEntries: 16,
	}
}

// newTestRouter serves the test data with rate limiting disabled.
func newTestRouter(t *testing.T) (http.Handler, *Handler) {
	t.Helper()
	handler := NewHandler(newTestEngine(t, newJSONStore(t)), testHandlerConfig())
	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitDisabled = true
	return NewRouter(handler, NewChiMiddleware(mw)).SetupChi(), handler
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v\n%s", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v\n%s", err, env.Data)
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d\n%s", rec.Code, status, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Status != models.StatusError || env.Error == nil || env.Error.Code != code {
		t.Errorf("envelope = %+v, want error code %s", env, code)
	}
}

// brokenProvider fails every call.
type brokenProvider struct{}

var errBroken = errors.New("disk on fire")

func (brokenProvider) Restaurants(context.Context) ([]recommend.Restaurant, error) {
	return nil, errBroken
}
func (brokenProvider) Categories(context.Context) ([]string, error) { return nil, errBroken }
func (brokenProvider) User(context.Context, string) (*recommend.User, error) {
	return nil, errBroken
}
func (brokenProvider) UserNames(context.Context) ([]string, error) { return nil, errBroken }
