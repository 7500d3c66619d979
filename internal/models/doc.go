// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

// Package models defines the JSON shapes of the HTTP API: the response
// envelope shared by every endpoint and the payloads built from
// recommend.Response and the catalog.
package models
