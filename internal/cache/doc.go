// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

// Package cache provides a generic TTL-bounded LRU cache.
//
// The API layer uses it to hold rendered map and ratings responses keyed by
// the request parameters:
//
//	maps := cache.NewLRU[[]byte](cfg.Cache.MaxEntries, cfg.Cache.TTL)
//	key := cache.Key("map", req)
//	if body, ok := maps.Get(key); ok {
//	    ...
//	}
//
// Computations are deterministic for a fixed seed, so a cached body is
// identical to a recomputed one until the catalog or user data changes.
package cache
