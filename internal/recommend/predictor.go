// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package recommend

import (
	"errors"
	"fmt"

	"github.com/tomtom215/tastemap/internal/regression"
)

// Predictor estimates a user's score for a restaurant.
type Predictor interface {
	Predict(r *Restaurant) float64
}

// LinearPredictor scores restaurants with a line fit on one feature.
type LinearPredictor struct {
	Feature Feature
	Line    regression.Line
}

// Predict implements Predictor.
func (p *LinearPredictor) Predict(r *Restaurant) float64 {
	return p.Line.At(p.Feature.Fn(r))
}

// RSquared returns the goodness of fit on the training restaurants.
func (p *LinearPredictor) RSquared() float64 {
	return p.Line.RSquared
}

// FindPredictor fits the user's scores against feature over restaurants.
// Every restaurant must have been reviewed by the user; otherwise a
// *MissingReviewError is returned. Zero-variance samples fail with an error
// matching regression.ErrDegenerateFit.
func FindPredictor(user *User, restaurants []Restaurant, feature Feature) (*LinearPredictor, error) {
	xs := make([]float64, len(restaurants))
	ys := make([]float64, len(restaurants))
	for i := range restaurants {
		score, ok := user.Score(restaurants[i].Name)
		if !ok {
			return nil, &MissingReviewError{User: user.Name, Restaurant: restaurants[i].Name}
		}
		xs[i] = feature.Fn(&restaurants[i])
		ys[i] = score
	}

	line, err := regression.Fit(xs, ys)
	if err != nil {
		return nil, fmt.Errorf("fit feature %s: %w", feature.Name, err)
	}
	return &LinearPredictor{Feature: feature, Line: line}, nil
}

// Candidate records the outcome of fitting one feature during selection.
type Candidate struct {
	Feature  string  `json:"feature"`
	RSquared float64 `json:"r_squared"`
	Skipped  bool    `json:"skipped"`
	Reason   string  `json:"reason,omitempty"`
}

// Selection is the result of SelectPredictor.
type Selection struct {
	// Best is the predictor with the highest R².
	Best *LinearPredictor

	// Candidates holds one entry per feature, in input order.
	Candidates []Candidate
}

// SelectPredictor fits every feature on the restaurants the user reviewed
// and keeps the one with the highest R². Ties go to the earliest feature.
// Features with a degenerate fit are recorded as skipped; if none remain the
// call fails with ErrNoUsableFeature.
func SelectPredictor(user *User, restaurants []Restaurant, features []Feature) (*Selection, error) {
	reviewed := user.ReviewedRestaurants(restaurants)
	sel := &Selection{Candidates: make([]Candidate, 0, len(features))}

	for _, f := range features {
		p, err := FindPredictor(user, reviewed, f)
		if err != nil {
			var dfe *regression.DegenerateFitError
			if !errors.As(err, &dfe) {
				return nil, err
			}
			sel.Candidates = append(sel.Candidates, Candidate{Feature: f.Name, Skipped: true, Reason: dfe.Reason})
			continue
		}
		sel.Candidates = append(sel.Candidates, Candidate{Feature: f.Name, RSquared: p.RSquared()})
		if sel.Best == nil || p.RSquared() > sel.Best.RSquared() {
			sel.Best = p
		}
	}

	if sel.Best == nil {
		return sel, fmt.Errorf("%w: user %q, %d reviewed restaurants, %d features",
			ErrNoUsableFeature, user.Name, len(reviewed), len(features))
	}
	return sel, nil
}

// BestPredictor returns the highest-R² predictor from SelectPredictor.
func BestPredictor(user *User, restaurants []Restaurant, features []Feature) (*LinearPredictor, error) {
	sel, err := SelectPredictor(user, restaurants, features)
	if err != nil {
		return nil, err
	}
	return sel.Best, nil
}
