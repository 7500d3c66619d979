// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

/*
Package cluster implements k-means clustering of restaurant locations.

# Algorithm

	1. Sample k distinct points as the initial centroids.
	2. Assign each point to its nearest centroid (ties go to the earliest).
	3. Group points by centroid in order of first appearance.
	4. Replace each centroid by the mean of its group.
	5. Repeat 2-4 until the centroid list is unchanged or MaxIterations is hit.

A centroid that attracts no points is dropped, so a run may return fewer
than k centroids. Requesting more clusters than there are points fails with
an *InsufficientDataError.

# Usage

	km, err := cluster.New(cluster.DefaultConfig(), logger)
	if err != nil {
	    return err
	}
	result, err := km.Cluster(points, 5, rand.New(rand.NewSource(7)))

Results depend only on the input order and the random source, so a fixed
seed gives identical centroids across runs.
*/
package cluster
