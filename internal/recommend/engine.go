// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tastemap/internal/cluster"
	"github.com/tomtom215/tastemap/internal/metrics"
)

// Engine ties the catalog, the per-user scorer and k-means together.
// It is safe for concurrent use: requests share no mutable state beyond
// atomic counters, and each request gets its own random source.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	features []Feature
	kmeans   *cluster.KMeans

	dataProvider DataProvider

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests int64 `json:"requests"`
	Errors   int64 `json:"errors"`
}

// NewEngine creates a new engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	features, err := FeaturesByName(cfg.Features)
	if err != nil {
		return nil, err
	}

	km, err := cluster.New(cfg.Cluster, logger)
	if err != nil {
		return nil, fmt.Errorf("create k-means: %w", err)
	}

	return &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		features: features,
		kmeans:   km,
	}, nil
}

// SetDataProvider sets the catalog and user source.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.dataProvider = dp
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Stats returns request and error counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests: e.requestCount.Load(),
		Errors:   e.errorCount.Load(),
	}
}

// Restaurants returns the catalog, filtered by category when query is set.
func (e *Engine) Restaurants(ctx context.Context, query string) ([]Restaurant, error) {
	if e.dataProvider == nil {
		return nil, ErrNoDataProvider
	}
	all, err := e.dataProvider.Restaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("load restaurants: %w", err)
	}
	if query == "" {
		return all, nil
	}
	return Search(query, all), nil
}

// RestaurantNames returns every restaurant name sorted alphabetically.
func (e *Engine) RestaurantNames(ctx context.Context) ([]string, error) {
	all, err := e.Restaurants(ctx, "")
	if err != nil {
		return nil, err
	}
	names := make([]string, len(all))
	for i := range all {
		names[i] = all[i].Name
	}
	sort.Strings(names)
	return names, nil
}

// Categories returns all known category labels.
func (e *Engine) Categories(ctx context.Context) ([]string, error) {
	if e.dataProvider == nil {
		return nil, ErrNoDataProvider
	}
	return e.dataProvider.Categories(ctx)
}

// Users returns all known user names.
func (e *Engine) Users(ctx context.Context) ([]string, error) {
	if e.dataProvider == nil {
		return nil, ErrNoDataProvider
	}
	return e.dataProvider.UserNames(ctx)
}

// Visualize computes the ratings and clusters behind the map view:
//
//  1. load the catalog and filter it by Query
//  2. load the user
//  3. with Predict, rate every restaurant (model trained on the full
//     catalog); otherwise keep only reviewed restaurants and their scores
//  4. with K > 0, run k-means with min(K, restaurants); otherwise every
//     restaurant location is a centroid
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Visualize(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req, err := e.prepareRequest(req)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}
	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Str("user", req.User).
		Str("query", req.Query).
		Int("k", req.K).
		Bool("predict", req.Predict).
		Logger()
	logger.Debug().Msg("processing visualize request")

	if e.config.Limits.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Limits.Timeout)
		defer cancel()
	}

	resp, err := e.visualize(ctx, req, logger)
	if err != nil {
		e.errorCount.Add(1)
		logger.Debug().Err(err).Msg("visualize failed")
		return nil, err
	}

	resp.LatencyMS = time.Since(start).Milliseconds()
	logger.Debug().
		Int("restaurants", len(resp.Restaurants)).
		Int("centroids", len(resp.Centroids)).
		Str("feature", resp.Feature).
		Int64("latency_ms", resp.LatencyMS).
		Msg("visualize complete")
	return resp, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, error) {
	if req.User == "" {
		return req, fmt.Errorf("a user is required")
	}
	if req.K < 0 {
		return req, fmt.Errorf("k must be non-negative, got %d", req.K)
	}
	if req.K > e.config.Limits.MaxK {
		req.K = e.config.Limits.MaxK
	}
	if req.Seed == 0 {
		req.Seed = e.config.Cluster.Seed
	}
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	return req, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) visualize(ctx context.Context, req Request, logger zerolog.Logger) (*Response, error) {
	if e.dataProvider == nil {
		return nil, ErrNoDataProvider
	}

	universe, err := e.dataProvider.Restaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("load restaurants: %w", err)
	}
	restaurants := universe
	if req.Query != "" {
		restaurants = Search(req.Query, universe)
	}

	user, err := e.dataProvider.User(ctx, req.User)
	if err != nil {
		return nil, fmt.Errorf("load user %q: %w", req.User, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ratings *Ratings
	if req.Predict {
		ratings, err = Rate(user, universe, restaurants, e.features)
		if err != nil {
			return nil, fmt.Errorf("rate restaurants: %w", err)
		}
		e.recordSelection(ratings.Selection, logger)
	} else {
		restaurants, ratings = ReviewedRatings(user, restaurants)
	}
	metrics.RecordRatings(ratings.counts())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp := &Response{
		RequestID:   req.RequestID,
		User:        user.Name,
		Query:       req.Query,
		Restaurants: restaurants,
		Ratings:     ratings.Scores,
		Reviewed:    ratings.Reviewed,
		GeneratedAt: time.Now(),
	}
	if sel := ratings.Selection; sel != nil {
		resp.Feature = sel.Best.Feature.Name
		resp.RSquared = sel.Best.RSquared()
		resp.Candidates = sel.Candidates
	}

	if err := e.clusterInto(resp, req); err != nil {
		return nil, err
	}
	return resp, nil
}

// clusterInto fills the centroid fields of resp.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) clusterInto(resp *Response, req Request) error {
	points := make([]orb.Point, len(resp.Restaurants))
	for i := range resp.Restaurants {
		points[i] = resp.Restaurants[i].Location
	}

	k := min(req.K, len(points))
	if req.K == 0 || k == 0 {
		resp.Centroids = points
		resp.Assignments = make([]int, len(points))
		for i := range resp.Assignments {
			resp.Assignments[i] = i
		}
		resp.Converged = true
		return nil
	}

	rng := rand.New(rand.NewSource(req.Seed)) //nolint:gosec // clustering does not need crypto randomness
	result, err := e.kmeans.Cluster(points, k, rng)
	if err != nil {
		return fmt.Errorf("cluster restaurants: %w", err)
	}
	resp.Centroids = result.Centroids
	resp.Assignments = result.Assignments
	resp.Iterations = result.Iterations
	resp.Converged = result.Converged
	return nil
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func (e *Engine) recordSelection(sel *Selection, logger zerolog.Logger) {
	for _, c := range sel.Candidates {
		outcome := "ok"
		if c.Skipped {
			outcome = "degenerate"
			logger.Debug().Str("feature", c.Feature).Str("reason", c.Reason).Msg("feature skipped")
		}
		metrics.RecordRegressionFit(c.Feature, outcome)
	}
	metrics.RecordFeatureSelection(sel.Best.Feature.Name, sel.Best.RSquared())
	logger.Debug().
		Str("feature", sel.Best.Feature.Name).
		Float64("r_squared", sel.Best.RSquared()).
		Msg("predictor selected")
}
