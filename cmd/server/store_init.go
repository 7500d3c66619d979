// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/tastemap/internal/config"
	"github.com/tomtom215/tastemap/internal/recommend"
	"github.com/tomtom215/tastemap/internal/store"
)

// dataStore is the opened catalog. badger is nil for the JSON store.
type dataStore struct {
	provider recommend.DataProvider
	badger   *store.BadgerStore
}

// Close releases the Badger database, if any.
func (d *dataStore) Close() error {
	if d.badger == nil {
		return nil
	}
	return d.badger.Close()
}

// openStore opens the configured store. With DATA_STORE=badger and
// DATA_IMPORT_ON_STARTUP the JSON data directory is imported first, which
// replaces the stored catalog and upserts every user.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*dataStore, error) {
	switch cfg.Data.Store {
	case config.StoreJSON:
		js, err := store.OpenJSON(cfg.Data.Dir, logger)
		if err != nil {
			return nil, err
		}
		return &dataStore{provider: js}, nil

	case config.StoreBadger:
		bs, err := store.OpenBadger(cfg.Data.BadgerPath, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Data.ImportOnStartup {
			if err := importJSON(ctx, bs, cfg.Data.Dir, logger); err != nil {
				_ = bs.Close()
				return nil, err
			}
		}
		return &dataStore{provider: bs, badger: bs}, nil

	default:
		return nil, fmt.Errorf("unknown data store %q", cfg.Data.Store)
	}
}

//nolint:gocritic // zerolog.Logger is designed to be passed by value
func importJSON(ctx context.Context, bs *store.BadgerStore, dir string, logger zerolog.Logger) error {
	src, err := store.OpenJSON(dir, logger)
	if err != nil {
		return fmt.Errorf("open import source: %w", err)
	}
	stats, err := bs.Import(ctx, src)
	if err != nil {
		return fmt.Errorf("import %s: %w", dir, err)
	}
	logger.Info().
		Str("dir", dir).
		Int("restaurants", stats.Restaurants).
		Int("users", stats.Users).
		Dur("duration", stats.Duration).
		Msg("Imported data directory into Badger")
	return nil
}
