// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

// Package geo provides the planar geometry used by clustering: distances
// between locations, nearest-centroid lookup and centroid computation.
//
// Locations are orb.Point values with X holding longitude and Y holding
// latitude. All distances are plain Euclidean distances on those two
// coordinates; no spherical correction is applied because clusters are
// city-scale.
package geo

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/stat"
)

// ErrEmpty is returned when an operation needs at least one input value.
var ErrEmpty = errors.New("geo: empty input")

// Distance returns the Euclidean distance between p and q.
func Distance(p, q orb.Point) float64 {
	return planar.Distance(p, q)
}

// Nearest returns the index of the centroid closest to p.
// When several centroids are equally close the earliest one wins.
// Returns -1 if centroids is empty.
func Nearest(p orb.Point, centroids []orb.Point) int {
	best := -1
	bestDist := 0.0
	for i, c := range centroids {
		// Squared distance preserves ordering and avoids the sqrt in the hot loop.
		d := planar.DistanceSquared(p, c)
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Closest returns the centroid closest to p, with the same tie rule as Nearest.
func Closest(p orb.Point, centroids []orb.Point) (orb.Point, error) {
	i := Nearest(p, centroids)
	if i < 0 {
		return orb.Point{}, ErrEmpty
	}
	return centroids[i], nil
}

// Centroid returns the component-wise mean of points.
func Centroid(points []orb.Point) (orb.Point, error) {
	if len(points) == 0 {
		return orb.Point{}, ErrEmpty
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X()
		ys[i] = p.Y()
	}
	return orb.Point{stat.Mean(xs, nil), stat.Mean(ys, nil)}, nil
}

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	return stat.Mean(values, nil), nil
}

// Equal reports whether two ordered point slices hold the same values.
func Equal(a, b []orb.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
