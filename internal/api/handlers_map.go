// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/tastemap/internal/cache"
	"github.com/tomtom215/tastemap/internal/logging"
	"github.com/tomtom215/tastemap/internal/metrics"
	"github.com/tomtom215/tastemap/internal/models"
	"github.com/tomtom215/tastemap/internal/recommend"
	"github.com/tomtom215/tastemap/internal/render"
	"github.com/tomtom215/tastemap/internal/validation"
)

// GeoJSONContentType is the media type of /api/v1/map responses.
const GeoJSONContentType = "application/geo+json"

// visualizeParams are the query parameters shared by the ratings and map
// endpoints. Its JSON form is the map cache key.
type visualizeParams struct {
	User    string `json:"user" validate:"required,username"`
	Query   string `json:"query" validate:"max=128"`
	K       int    `json:"k" validate:"gte=0"`
	Predict bool   `json:"predict"`
	Seed    int64  `json:"seed"`
}

func (p *visualizeParams) request(r *http.Request) recommend.Request {
	return recommend.Request{
		User:      p.User,
		Query:     p.Query,
		K:         p.K,
		Predict:   p.Predict,
		Seed:      p.Seed,
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
}

// parseVisualizeParams reads query, predict and, when withClusters is
// set, k and seed. A missing k means the configured default.
func (h *Handler) parseVisualizeParams(r *http.Request, user string, withClusters bool) (*visualizeParams, error) {
	p := &visualizeParams{
		User:  user,
		Query: r.URL.Query().Get("query"),
	}

	var err error
	if p.Predict, err = boolParam(r, "predict"); err != nil {
		return nil, err
	}
	if withClusters {
		if p.K, err = intParam(r, "k", h.engine.Config().Limits.DefaultK); err != nil {
			return nil, err
		}
		if p.Seed, err = int64Param(r, "seed", 0); err != nil {
			return nil, err
		}
	}

	if verr := validation.ValidateStruct(p); verr != nil {
		return nil, verr
	}
	return p, nil
}

// Ratings handles GET /api/v1/users/{user}/ratings?query=&predict=.
//
// Without predict only restaurants the user reviewed are listed, with the
// user's own scores. With predict every restaurant is scored; reviewed ones
// keep their recorded score and the rest come from the best single-feature
// predictor, which is reported together with every candidate's R².
func (h *Handler) Ratings(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseVisualizeParams(r, chi.URLParam(r, "user"), false)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	ctx := logging.ContextWithUser(r.Context(), p.User)
	resp, err := h.engine.Visualize(ctx, p.request(r))
	if err != nil {
		respondEngineError(w, r.WithContext(ctx), err)
		return
	}

	meta := newMetadata(r)
	meta.QueryTimeMS = resp.LatencyMS
	respondSuccess(w, r, models.NewRatingsResponse(resp, p.Predict), meta)
}

// Map handles GET /api/v1/map?user=&k=&query=&predict=&seed= and returns
// a GeoJSON FeatureCollection with one feature per centroid followed by
// one feature per restaurant. Errors use the JSON envelope.
func (h *Handler) Map(w http.ResponseWriter, r *http.Request) {
	p, err := h.parseVisualizeParams(r, r.URL.Query().Get("user"), true)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	key := cache.Key("map", p)
	if h.mapCache != nil {
		if body, ok := h.mapCache.Get(key); ok {
			metrics.RecordMapCache(true)
			writeGeoJSON(w, body, true)
			return
		}
		metrics.RecordMapCache(false)
	}

	ctx := logging.ContextWithUser(r.Context(), p.User)
	start := time.Now()
	resp, err := h.engine.Visualize(ctx, p.request(r))
	if err != nil {
		respondEngineError(w, r.WithContext(ctx), err)
		return
	}

	var buf bytes.Buffer
	if err := render.Write(&buf, resp); err != nil {
		respondEngineError(w, r.WithContext(ctx), err)
		return
	}
	body := buf.Bytes()
	if h.mapCache != nil {
		h.mapCache.Add(key, body)
	}

	logging.Ctx(ctx).Debug().
		Int("restaurants", len(resp.Restaurants)).
		Int("centroids", len(resp.Centroids)).
		Str("feature", resp.Feature).
		Dur("duration", time.Since(start)).
		Msg("Map rendered")
	writeGeoJSON(w, body, false)
}

func writeGeoJSON(w http.ResponseWriter, body []byte, cached bool) {
	h := w.Header()
	h.Set("Content-Type", GeoJSONContentType)
	h.Set("Cache-Control", "private, max-age=60")
	if cached {
		h.Set("X-Cache", "HIT")
	} else {
		h.Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
