// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package cluster

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is matched by every *InsufficientDataError.
var ErrInsufficientData = errors.New("not enough points to cluster")

// InsufficientDataError reports a cluster count that the input cannot satisfy.
type InsufficientDataError struct {
	K int
	N int
}

func (e *InsufficientDataError) Error() string {
	if e.K < 1 {
		return fmt.Sprintf("cluster count must be positive, got %d", e.K)
	}
	return fmt.Sprintf("%s: k=%d but only %d points", ErrInsufficientData, e.K, e.N)
}

// Is lets errors.Is match against ErrInsufficientData.
func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}
