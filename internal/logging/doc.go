// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

// Package logging provides centralized zerolog-based structured logging for Tastemap.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("Server starting")
//
// Components receive a zerolog.Logger and add their own component field:
//
//	engine, err := recommend.NewEngine(cfg, logging.Logger())
//
// # Context-Aware Logging
//
// The HTTP layer stores the request ID and user in the request context;
// Ctx(ctx) returns a logger that carries both:
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("Map request failed")
//
// # slog Adapter
//
// SlogHandler routes log/slog records into zerolog. The supervisor tree uses
// it through sutureslog.
//
// # Output
//
// JSON is written to stderr by default. Console format is meant for local
// runs; the recommend CLI uses it so GeoJSON on stdout stays clean.
package logging
