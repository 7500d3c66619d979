// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package main

import (
	"context"

	"github.com/tomtom215/tastemap/internal/logging"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		logging.Fatal().Err(err).Msg("recommend failed")
	}
}
