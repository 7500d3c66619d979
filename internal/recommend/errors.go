// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingReview is matched by every *MissingReviewError.
	ErrMissingReview = errors.New("restaurant not reviewed by user")

	// ErrNoUsableFeature means every candidate feature produced a degenerate fit.
	ErrNoUsableFeature = errors.New("no feature yields a usable predictor")

	// ErrNoDataProvider is returned by Engine methods before SetDataProvider.
	ErrNoDataProvider = errors.New("data provider not set")
)

// MissingReviewError reports a training restaurant the user never reviewed.
type MissingReviewError struct {
	User       string
	Restaurant string
}

func (e *MissingReviewError) Error() string {
	return fmt.Sprintf("user %q has no review for restaurant %q", e.User, e.Restaurant)
}

// Is lets errors.Is match against ErrMissingReview.
func (e *MissingReviewError) Is(target error) bool {
	return target == ErrMissingReview
}
