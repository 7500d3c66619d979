// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package cluster

import (
	"fmt"
	"math/rand"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tastemap/internal/geo"
	"github.com/tomtom215/tastemap/internal/metrics"
)

// KMeans groups locations into spatial clusters using Lloyd's algorithm.
// A KMeans holds only configuration and is safe for concurrent use as long
// as callers do not share a *rand.Rand between goroutines.
type KMeans struct {
	config Config
	logger zerolog.Logger
}

// Result is the outcome of one clustering run.
type Result struct {
	// Centroids are the final cluster centers. May hold fewer than k
	// entries when a centroid lost all of its points during an update.
	Centroids []orb.Point `json:"centroids"`

	// Assignments maps each input point index to an index into Centroids.
	Assignments []int `json:"assignments"`

	// Iterations is the number of assignment/update steps performed.
	Iterations int `json:"iterations"`

	// Converged is true when the centroids reached a fixed point before
	// the iteration cap.
	Converged bool `json:"converged"`
}

// New creates a KMeans with the given configuration.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(cfg Config, logger zerolog.Logger) (*KMeans, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &KMeans{
		config: cfg,
		logger: logger.With().Str("component", "cluster").Logger(),
	}, nil
}

// Config returns a copy of the clustering configuration.
func (km *KMeans) Config() Config {
	return km.config
}

// Cluster partitions points into at most k clusters.
//
// Initial centroids are k distinct points sampled without replacement from
// rng. A nil rng uses a source seeded with Config.Seed so runs are
// reproducible. Each step assigns every point to its nearest centroid,
// groups points by centroid in order of first appearance and replaces each
// centroid with the mean of its group. The loop stops when the ordered
// centroid list is unchanged or MaxIterations steps have run.
func (km *KMeans) Cluster(points []orb.Point, k int, rng *rand.Rand) (*Result, error) {
	if k < 1 || k > len(points) {
		metrics.RecordClusterError()
		return nil, &InsufficientDataError{K: k, N: len(points)}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(km.config.Seed)) //nolint:gosec // clustering does not need crypto randomness
	}

	centroids := sample(points, k, rng)
	var previous []orb.Point
	iterations := 0

	for !geo.Equal(previous, centroids) && iterations < km.config.MaxIterations {
		previous = centroids
		next, err := update(points, centroids)
		if err != nil {
			return nil, err
		}
		centroids = next
		iterations++
	}

	result := &Result{
		Centroids:   centroids,
		Assignments: assign(points, centroids),
		Iterations:  iterations,
		Converged:   geo.Equal(previous, centroids),
	}

	dropped := k - len(centroids)
	metrics.RecordClusterRun(iterations, result.Converged, dropped)
	km.logger.Debug().
		Int("points", len(points)).
		Int("k", k).
		Int("centroids", len(centroids)).
		Int("iterations", iterations).
		Bool("converged", result.Converged).
		Msg("k-means finished")

	return result, nil
}

// Run is a convenience wrapper returning only the final centroids.
func Run(points []orb.Point, k, maxIterations int, rng *rand.Rand) ([]orb.Point, error) {
	cfg := DefaultConfig()
	cfg.MaxIterations = maxIterations
	km, err := New(cfg, zerolog.Nop())
	if err != nil {
		return nil, err
	}
	result, err := km.Cluster(points, k, rng)
	if err != nil {
		return nil, err
	}
	return result.Centroids, nil
}

// GroupByCentroid assigns each point to its nearest centroid and returns the
// point indices of each non-empty group. Groups are ordered by the first
// point that lands in them, and indices within a group keep input order.
func GroupByCentroid(points, centroids []orb.Point) [][]int {
	slot := make(map[int]int, len(centroids))
	var groups [][]int
	for i, p := range points {
		c := geo.Nearest(p, centroids)
		if c < 0 {
			continue
		}
		g, ok := slot[c]
		if !ok {
			g = len(groups)
			slot[c] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}
	return groups
}

// update performs one assignment and recomputation step.
// Centroids that attract no points are dropped.
func update(points, centroids []orb.Point) ([]orb.Point, error) {
	groups := GroupByCentroid(points, centroids)
	next := make([]orb.Point, 0, len(groups))
	members := make([]orb.Point, 0, len(points))
	for _, group := range groups {
		members = members[:0]
		for _, i := range group {
			members = append(members, points[i])
		}
		c, err := geo.Centroid(members)
		if err != nil {
			return nil, fmt.Errorf("recompute centroid: %w", err)
		}
		next = append(next, c)
	}
	return next, nil
}

func assign(points, centroids []orb.Point) []int {
	out := make([]int, len(points))
	for i, p := range points {
		out[i] = geo.Nearest(p, centroids)
	}
	return out
}

// sample draws k distinct points uniformly without replacement using a
// partial Fisher-Yates shuffle over the indices.
func sample(points []orb.Point, k int, rng *rand.Rand) []orb.Point {
	idx := make([]int, len(points))
	for i := range idx {
		idx[i] = i
	}
	out := make([]orb.Point, k)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = points[idx[i]]
	}
	return out
}
