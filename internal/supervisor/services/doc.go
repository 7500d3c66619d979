// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

// Package services adapts long-running components to suture.Service.
//
//   - HTTPServerService: runs the API server and shuts it down gracefully
//   - BadgerGCService: periodic Badger value log garbage collection
//
// Each service returns ctx.Err() on cancellation and a wrapped error on
// failure, which lets the supervisor restart it with backoff.
package services
