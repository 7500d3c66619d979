// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package recommend

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/paulmach/orb"
)

// Review is a single user's score for a restaurant.
type Review struct {
	// RestaurantName identifies the reviewed restaurant.
	RestaurantName string `json:"restaurant_name" validate:"required"`

	// Score is the star rating given by the reviewer.
	Score float64 `json:"score" validate:"gte=0,lte=5"`
}

// Restaurant is a catalog item with a location and descriptive attributes.
type Restaurant struct {
	// Name uniquely identifies the restaurant.
	Name string `json:"name" validate:"required"`

	// Location holds longitude in X and latitude in Y.
	Location orb.Point `json:"location"`

	// Categories are the cuisine/category labels. Treated as a set.
	Categories []string `json:"categories"`

	// Price is the ordinal price tier (1 = cheapest).
	Price int `json:"price" validate:"gte=0"`

	// Reviews are all reviews of this restaurant across users.
	Reviews []Review `json:"reviews,omitempty"`
}

// MeanScore returns the average review score, or 0 when unreviewed.
func (r *Restaurant) MeanScore() float64 {
	if len(r.Reviews) == 0 {
		return 0
	}
	var sum float64
	for _, rv := range r.Reviews {
		sum += rv.Score
	}
	return sum / float64(len(r.Reviews))
}

// NumScores returns the number of reviews.
func (r *Restaurant) NumScores() int {
	return len(r.Reviews)
}

// HasCategory reports whether the restaurant is tagged with category.
func (r *Restaurant) HasCategory(category string) bool {
	for _, c := range r.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// User is a reviewer. Reviews are keyed by restaurant name so each
// restaurant has at most one review per user.
type User struct {
	Name    string            `json:"name" validate:"required"`
	Reviews map[string]Review `json:"reviews"`
}

// NewUser builds a user from a review list. A later review of the same
// restaurant replaces an earlier one.
func NewUser(name string, reviews []Review) *User {
	u := &User{Name: name, Reviews: make(map[string]Review, len(reviews))}
	for _, r := range reviews {
		u.Reviews[r.RestaurantName] = r
	}
	return u
}

// Score returns the user's recorded score for the named restaurant.
func (u *User) Score(restaurant string) (float64, bool) {
	r, ok := u.Reviews[restaurant]
	return r.Score, ok
}

// ReviewedRestaurants returns the restaurants the user has reviewed,
// preserving input order.
func (u *User) ReviewedRestaurants(restaurants []Restaurant) []Restaurant {
	out := make([]Restaurant, 0, len(restaurants))
	for i := range restaurants {
		if _, ok := u.Reviews[restaurants[i].Name]; ok {
			out = append(out, restaurants[i])
		}
	}
	return out
}

// Score is a rating value. Integral scores render without a fractional
// part ("4", not "4.0"); other values render with the shortest exact form.
type Score float64

// String implements fmt.Stringer.
func (s Score) String() string {
	return strconv.FormatFloat(float64(s), 'f', -1, 64)
}

// MarshalJSON encodes the score as a bare JSON number.
func (s Score) MarshalJSON() ([]byte, error) {
	f := float64(s)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("score %v is not a finite number", f)
	}
	return []byte(s.String()), nil
}

// IsIntegral reports whether the score has no fractional part.
func (s Score) IsIntegral() bool {
	return float64(s) == math.Trunc(float64(s))
}

// Request describes one map/ratings computation.
type Request struct {
	// User is the name of the user whose ratings are shown.
	User string `json:"user" validate:"required"`

	// Query restricts restaurants to a category. Empty means all.
	Query string `json:"query,omitempty"`

	// K is the requested number of clusters. Zero disables clustering and
	// every restaurant location becomes its own centroid.
	K int `json:"k" validate:"gte=0"`

	// Predict rates every restaurant, predicting unreviewed ones. When false
	// only restaurants the user reviewed are kept.
	Predict bool `json:"predict"`

	// Seed seeds centroid sampling. Zero uses the configured seed.
	Seed int64 `json:"seed,omitempty"`

	// RequestID correlates log lines; generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Response is the result of a Visualize call.
type Response struct {
	RequestID string `json:"request_id"`
	User      string `json:"user"`
	Query     string `json:"query,omitempty"`

	// Restaurants are the restaurants shown, in catalog order.
	Restaurants []Restaurant `json:"restaurants"`

	// Ratings maps restaurant name to its recorded or predicted score.
	Ratings map[string]Score `json:"ratings"`

	// Reviewed marks ratings that came from the user's own reviews.
	Reviewed map[string]bool `json:"reviewed"`

	// Centroids are the cluster centers to draw.
	Centroids []orb.Point `json:"centroids"`

	// Assignments maps each entry of Restaurants to an index into Centroids.
	Assignments []int `json:"assignments"`

	// Feature and RSquared describe the selected predictor (predict mode only).
	Feature  string  `json:"feature,omitempty"`
	RSquared float64 `json:"r_squared,omitempty"`

	// Candidates lists every evaluated feature (predict mode only).
	Candidates []Candidate `json:"candidates,omitempty"`

	Iterations  int       `json:"iterations"`
	Converged   bool      `json:"converged"`
	LatencyMS   int64     `json:"latency_ms"`
	GeneratedAt time.Time `json:"generated_at"`
}

// DataProvider supplies the catalog and users.
// Implemented by the store package.
type DataProvider interface {
	// Restaurants returns every restaurant in catalog order.
	Restaurants(ctx context.Context) ([]Restaurant, error)

	// Categories returns the sorted set of all category labels.
	Categories(ctx context.Context) ([]string, error)

	// User loads a user by name.
	User(ctx context.Context, name string) (*User, error)

	// UserNames returns the sorted names of all known users.
	UserNames(ctx context.Context) ([]string, error)
}
