// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package models

import (
	"github.com/tomtom215/tastemap/internal/recommend"
)

// RestaurantSummary is the catalog entry returned by /api/v1/restaurants.
type RestaurantSummary struct {
	Name       string   `json:"name"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Price      int      `json:"price"`
	Categories []string `json:"categories"`
	MeanScore  float64  `json:"mean_score"`
	NumScores  int      `json:"num_scores"`
}

// NewRestaurantSummary flattens r for the API.
func NewRestaurantSummary(r *recommend.Restaurant) RestaurantSummary {
	categories := r.Categories
	if categories == nil {
		categories = []string{}
	}
	return RestaurantSummary{
		Name:       r.Name,
		Latitude:   r.Location.Lat(),
		Longitude:  r.Location.Lon(),
		Price:      r.Price,
		Categories: categories,
		MeanScore:  r.MeanScore(),
		NumScores:  r.NumScores(),
	}
}

// RatingEntry is one restaurant's score for a user.
type RatingEntry struct {
	Restaurant string          `json:"restaurant"`
	Score      recommend.Score `json:"score"`
	Reviewed   bool            `json:"reviewed"`
}

// RatingsResponse is returned by /api/v1/users/{user}/ratings.
// Feature, RSquared and Candidates are set only for predicted ratings.
type RatingsResponse struct {
	User       string                `json:"user"`
	Query      string                `json:"query,omitempty"`
	Predict    bool                  `json:"predict"`
	Feature    string                `json:"feature,omitempty"`
	RSquared   float64               `json:"r_squared,omitempty"`
	Candidates []recommend.Candidate `json:"candidates,omitempty"`
	Ratings    []RatingEntry         `json:"ratings"`
}

// NewRatingsResponse lists resp's ratings in catalog order.
func NewRatingsResponse(resp *recommend.Response, predict bool) RatingsResponse {
	out := RatingsResponse{
		User:       resp.User,
		Query:      resp.Query,
		Predict:    predict,
		Feature:    resp.Feature,
		RSquared:   resp.RSquared,
		Candidates: resp.Candidates,
		Ratings:    make([]RatingEntry, 0, len(resp.Restaurants)),
	}
	for i := range resp.Restaurants {
		name := resp.Restaurants[i].Name
		score, ok := resp.Ratings[name]
		if !ok {
			continue
		}
		out.Ratings = append(out.Ratings, RatingEntry{
			Restaurant: name,
			Score:      score,
			Reviewed:   resp.Reviewed[name],
		})
	}
	return out
}

// HealthStatus is returned by the readiness probe.
type HealthStatus struct {
	Status      string  `json:"status"`
	Store       string  `json:"store"`
	Restaurants int     `json:"restaurants"`
	Users       int     `json:"users"`
	Uptime      float64 `json:"uptime_seconds"`
}
