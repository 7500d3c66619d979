// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tastemap/internal/metrics"
	"github.com/tomtom215/tastemap/internal/recommend"
	"github.com/tomtom215/tastemap/internal/validation"
)

// Key prefixes for BadgerDB storage
const (
	restaurantKeyPrefix = "restaurant:"
	userKeyPrefix       = "user:"
)

// BadgerStore implements recommend.DataProvider on top of BadgerDB.
// Restaurants are keyed by their catalog position so iteration returns them
// in catalog order.
type BadgerStore struct {
	db     *badger.DB
	owned  bool
	logger zerolog.Logger
}

var _ recommend.DataProvider = (*BadgerStore)(nil)

// ImportStats summarizes an Import call.
type ImportStats struct {
	Restaurants int           `json:"restaurants"`
	Users       int           `json:"users"`
	Duration    time.Duration `json:"duration"`
}

// OpenBadger opens (or creates) a Badger database at path. An empty path
// opens an in-memory database.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func OpenBadger(path string, logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}
	s := NewBadgerStore(db, logger)
	s.owned = true
	return s, nil
}

// NewBadgerStore wraps an already open database. The caller keeps
// ownership and must close db.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBadgerStore(db *badger.DB, logger zerolog.Logger) *BadgerStore {
	return &BadgerStore{
		db:     db,
		logger: logger.With().Str("component", "store").Str("store", "badger").Logger(),
	}
}

// Close closes the database if it was opened by OpenBadger.
func (s *BadgerStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

// ReplaceRestaurants drops the stored catalog and writes restaurants in order.
func (s *BadgerStore) ReplaceRestaurants(ctx context.Context, restaurants []recommend.Restaurant) error {
	start := time.Now()
	err := s.replaceRestaurants(restaurants)
	metrics.RecordStoreOperation("badger", "replace_restaurants", time.Since(start), err)
	return err
}

func (s *BadgerStore) replaceRestaurants(restaurants []recommend.Restaurant) error {
	seen := make(map[string]struct{}, len(restaurants))
	for i := range restaurants {
		if _, dup := seen[restaurants[i].Name]; dup {
			return fmt.Errorf("duplicate restaurant name %q", restaurants[i].Name)
		}
		seen[restaurants[i].Name] = struct{}{}
	}

	if err := s.db.DropPrefix([]byte(restaurantKeyPrefix)); err != nil {
		return fmt.Errorf("drop restaurants: %w", err)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for i := range restaurants {
		data, err := json.Marshal(&restaurants[i])
		if err != nil {
			return fmt.Errorf("marshal restaurant %q: %w", restaurants[i].Name, err)
		}
		if err := wb.Set(restaurantKey(i), data); err != nil {
			return fmt.Errorf("set restaurant %q: %w", restaurants[i].Name, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush restaurants: %w", err)
	}
	return nil
}

// PutUser stores or replaces a user.
func (s *BadgerStore) PutUser(ctx context.Context, u *recommend.User) error {
	rec := userRecordFrom(u)
	if verr := validation.ValidateStruct(rec); verr != nil {
		return fmt.Errorf("user %q: %w", u.Name, verr)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(userKeyPrefix+u.Name), data)
	})
}

// Restaurants implements recommend.DataProvider.
func (s *BadgerStore) Restaurants(ctx context.Context) ([]recommend.Restaurant, error) {
	start := time.Now()
	var restaurants []recommend.Restaurant

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(restaurantKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var r recommend.Restaurant
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			restaurants = append(restaurants, r)
		}
		return nil
	})

	metrics.RecordStoreOperation("badger", "restaurants", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return restaurants, nil
}

// Categories implements recommend.DataProvider.
func (s *BadgerStore) Categories(ctx context.Context) ([]string, error) {
	restaurants, err := s.Restaurants(ctx)
	if err != nil {
		return nil, err
	}
	return categoriesOf(restaurants), nil
}

// User implements recommend.DataProvider.
func (s *BadgerStore) User(ctx context.Context, name string) (*recommend.User, error) {
	start := time.Now()
	var rec userRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKeyPrefix + name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("user %q: %w", name, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})

	metrics.RecordStoreOperation("badger", "user", time.Since(start), ignoreNotFound(err))
	if err != nil {
		return nil, err
	}
	return rec.toUser(), nil
}

// UserNames implements recommend.DataProvider. Keys iterate in byte order,
// so names come back sorted.
func (s *BadgerStore) UserNames(ctx context.Context) ([]string, error) {
	names := []string{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(userKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			names = append(names, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return names, nil
}

// Import copies the catalog and every user from src, replacing the stored catalog.
func (s *BadgerStore) Import(ctx context.Context, src recommend.DataProvider) (ImportStats, error) {
	start := time.Now()
	var stats ImportStats

	restaurants, err := src.Restaurants(ctx)
	if err != nil {
		return stats, fmt.Errorf("read source restaurants: %w", err)
	}
	if err := s.ReplaceRestaurants(ctx, restaurants); err != nil {
		return stats, err
	}
	stats.Restaurants = len(restaurants)

	names, err := src.UserNames(ctx)
	if err != nil {
		return stats, fmt.Errorf("read source users: %w", err)
	}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		u, err := src.User(ctx, name)
		if err != nil {
			return stats, fmt.Errorf("read source user %q: %w", name, err)
		}
		if err := s.PutUser(ctx, u); err != nil {
			return stats, err
		}
		stats.Users++
	}

	stats.Duration = time.Since(start)
	s.logger.Info().
		Int("restaurants", stats.Restaurants).
		Int("users", stats.Users).
		Dur("duration", stats.Duration).
		Msg("import complete")
	return stats, nil
}

// RunGC runs one value log garbage collection pass. It reports whether a
// file was rewritten; a pass with nothing to collect is not an error.
func (s *BadgerStore) RunGC(discardRatio float64) (bool, error) {
	err := s.db.RunValueLogGC(discardRatio)
	switch {
	case err == nil:
		metrics.RecordStoreGC("rewritten")
		return true, nil
	case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode):
		metrics.RecordStoreGC("noop")
		return false, nil
	default:
		metrics.RecordStoreGC("error")
		return false, fmt.Errorf("value log gc: %w", err)
	}
}

func restaurantKey(i int) []byte {
	return []byte(fmt.Sprintf("%s%08d", restaurantKeyPrefix, i))
}
