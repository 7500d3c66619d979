// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/tastemap/internal/metrics"
	"github.com/tomtom215/tastemap/internal/recommend"
	"github.com/tomtom215/tastemap/internal/validation"
)

// File names inside a data directory.
const (
	RestaurantsFile = "restaurants.json"
	ReviewsFile     = "reviews.json"
	UsersDir        = "users"
)

// JSONStore serves the catalog from a data directory. The catalog is read
// once by OpenJSON; user files are read on every lookup so edits show up
// without a restart.
type JSONStore struct {
	dir         string
	logger      zerolog.Logger
	restaurants []recommend.Restaurant
	categories  []string
}

var _ recommend.DataProvider = (*JSONStore)(nil)

// OpenJSON loads the catalog from dir.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func OpenJSON(dir string, logger zerolog.Logger) (*JSONStore, error) {
	start := time.Now()
	s := &JSONStore{
		dir:    dir,
		logger: logger.With().Str("component", "store").Str("store", "json").Logger(),
	}

	restaurants, err := readJSONLines[restaurantRecord](filepath.Join(dir, RestaurantsFile))
	if err != nil {
		metrics.RecordStoreOperation("json", "open", time.Since(start), err)
		return nil, fmt.Errorf("read %s: %w", RestaurantsFile, err)
	}
	reviews, err := readJSONLines[reviewRecord](filepath.Join(dir, ReviewsFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		metrics.RecordStoreOperation("json", "open", time.Since(start), err)
		return nil, fmt.Errorf("read %s: %w", ReviewsFile, err)
	}

	catalog, orphans, err := buildCatalog(restaurants, reviews)
	if err != nil {
		metrics.RecordStoreOperation("json", "open", time.Since(start), err)
		return nil, fmt.Errorf("build catalog: %w", err)
	}
	s.restaurants = catalog
	s.categories = categoriesOf(catalog)

	metrics.RecordStoreOperation("json", "open", time.Since(start), nil)
	s.logger.Info().
		Str("dir", dir).
		Int("restaurants", len(catalog)).
		Int("reviews", len(reviews)-orphans).
		Int("orphan_reviews", orphans).
		Int("categories", len(s.categories)).
		Msg("catalog loaded")
	return s, nil
}

// Restaurants implements recommend.DataProvider.
func (s *JSONStore) Restaurants(ctx context.Context) ([]recommend.Restaurant, error) {
	return s.restaurants, nil
}

// Categories implements recommend.DataProvider.
func (s *JSONStore) Categories(ctx context.Context) ([]string, error) {
	return s.categories, nil
}

// User implements recommend.DataProvider.
func (s *JSONStore) User(ctx context.Context, name string) (*recommend.User, error) {
	start := time.Now()
	u, err := s.readUser(name)
	metrics.RecordStoreOperation("json", "user", time.Since(start), ignoreNotFound(err))
	return u, err
}

func (s *JSONStore) readUser(name string) (*recommend.User, error) {
	if !validation.ValidUsername(name) {
		return nil, fmt.Errorf("user %q: %w", name, ErrNotFound)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, UsersDir, name+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("user %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read user %q: %w", name, err)
	}

	var rec userRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode user %q: %w", name, err)
	}
	if rec.Name == "" {
		rec.Name = name
	}
	if verr := validation.ValidateStruct(&rec); verr != nil {
		return nil, fmt.Errorf("user %q: %w", name, verr)
	}
	return rec.toUser(), nil
}

// UserNames implements recommend.DataProvider.
func (s *JSONStore) UserNames(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, UsersDir))
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".json")
		if validation.ValidUsername(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// readJSONLines decodes a file holding a stream of JSON objects.
func readJSONLines[T any](path string) ([]T, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only file

	var out []T
	dec := json.NewDecoder(f)
	for line := 1; ; line++ {
		var rec T
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func ignoreNotFound(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
