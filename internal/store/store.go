// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

// Package store loads the restaurant catalog and user reviews.
//
// Two implementations of recommend.DataProvider are provided:
//
//   - JSONStore reads a data directory of JSON-lines catalog files and
//     per-user review files.
//   - BadgerStore keeps the same records in an embedded BadgerDB and can be
//     seeded from any other provider with Import.
//
// # Data Directory Layout
//
//	restaurants.json   one object per line:
//	                   {"business_id","name","latitude","longitude","categories","price"}
//	reviews.json       one object per line: {"business_id","stars"}
//	users/<name>.json  {"name":"...","reviews":[{"restaurant_name":"...","score":4}]}
//
// Reviews are joined to restaurants by business_id. Restaurants keep the
// order of restaurants.json.
package store

import (
	"errors"
	"fmt"
	"sort"

	"github.com/paulmach/orb"

	"github.com/tomtom215/tastemap/internal/recommend"
	"github.com/tomtom215/tastemap/internal/validation"
)

// ErrNotFound is returned when a requested user does not exist.
var ErrNotFound = errors.New("not found")

// restaurantRecord is one line of restaurants.json.
type restaurantRecord struct {
	BusinessID string   `json:"business_id" validate:"required"`
	Name       string   `json:"name" validate:"required"`
	Latitude   float64  `json:"latitude" validate:"latitude"`
	Longitude  float64  `json:"longitude" validate:"longitude"`
	Categories []string `json:"categories"`
	Price      int      `json:"price" validate:"gte=0"`
}

// reviewRecord is one line of reviews.json.
type reviewRecord struct {
	BusinessID string  `json:"business_id" validate:"required"`
	Stars      float64 `json:"stars" validate:"gte=0,lte=5"`
}

// userRecord is the content of a users/<name>.json file and of a Badger user value.
type userRecord struct {
	Name    string             `json:"name" validate:"required,username"`
	Reviews []recommend.Review `json:"reviews" validate:"dive"`
}

func (u *userRecord) toUser() *recommend.User {
	return recommend.NewUser(u.Name, u.Reviews)
}

func userRecordFrom(u *recommend.User) *userRecord {
	rec := &userRecord{Name: u.Name, Reviews: make([]recommend.Review, 0, len(u.Reviews))}
	for _, r := range u.Reviews {
		rec.Reviews = append(rec.Reviews, r)
	}
	sort.Slice(rec.Reviews, func(i, j int) bool {
		return rec.Reviews[i].RestaurantName < rec.Reviews[j].RestaurantName
	})
	return rec
}

// buildCatalog joins restaurant and review records. Duplicate restaurant
// names are rejected; reviews of unknown businesses are ignored.
func buildCatalog(restaurants []restaurantRecord, reviews []reviewRecord) ([]recommend.Restaurant, int, error) {
	byID := make(map[string]int, len(restaurants))
	names := make(map[string]struct{}, len(restaurants))
	out := make([]recommend.Restaurant, 0, len(restaurants))

	for i := range restaurants {
		rec := &restaurants[i]
		if verr := validation.ValidateStruct(rec); verr != nil {
			return nil, 0, fmt.Errorf("restaurant %d (%s): %w", i+1, rec.BusinessID, verr)
		}
		if _, dup := names[rec.Name]; dup {
			return nil, 0, fmt.Errorf("duplicate restaurant name %q", rec.Name)
		}
		if _, dup := byID[rec.BusinessID]; dup {
			return nil, 0, fmt.Errorf("duplicate business_id %q", rec.BusinessID)
		}
		names[rec.Name] = struct{}{}
		byID[rec.BusinessID] = len(out)
		out = append(out, recommend.Restaurant{
			Name:       rec.Name,
			Location:   orb.Point{rec.Longitude, rec.Latitude},
			Categories: rec.Categories,
			Price:      rec.Price,
		})
	}

	orphans := 0
	for i := range reviews {
		rv := &reviews[i]
		if verr := validation.ValidateStruct(rv); verr != nil {
			return nil, 0, fmt.Errorf("review %d: %w", i+1, verr)
		}
		idx, ok := byID[rv.BusinessID]
		if !ok {
			orphans++
			continue
		}
		out[idx].Reviews = append(out[idx].Reviews, recommend.Review{
			RestaurantName: out[idx].Name,
			Score:          rv.Stars,
		})
	}
	return out, orphans, nil
}

// categoriesOf returns the sorted set of categories across restaurants.
func categoriesOf(restaurants []recommend.Restaurant) []string {
	set := make(map[string]struct{})
	for i := range restaurants {
		for _, c := range restaurants[i].Categories {
			set[c] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
