// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

// Package regression fits single-variable ordinary least squares models.
//
// A fit over paired samples (x, y) produces y ≈ Slope*x + Intercept together
// with the coefficient of determination R². Fits with no variance in either
// variable are rejected with a *DegenerateFitError instead of producing
// NaN or infinite coefficients.
package regression

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ErrDegenerateFit is matched by every *DegenerateFitError.
var ErrDegenerateFit = errors.New("degenerate fit")

// ErrLengthMismatch is returned when xs and ys differ in length.
var ErrLengthMismatch = errors.New("xs and ys must have the same length")

// DegenerateFitError reports a sample on which no meaningful line can be fit.
type DegenerateFitError struct {
	// Reason is a short machine-friendly cause: "empty", "constant_x" or "constant_y".
	Reason string
	SXX    float64
	SYY    float64
	N      int
}

func (e *DegenerateFitError) Error() string {
	return fmt.Sprintf("%s: %s (n=%d, s_xx=%g, s_yy=%g)", ErrDegenerateFit, e.Reason, e.N, e.SXX, e.SYY)
}

// Is lets errors.Is match against ErrDegenerateFit.
func (e *DegenerateFitError) Is(target error) bool {
	return target == ErrDegenerateFit
}

// Line is a fitted model y = Slope*x + Intercept.
type Line struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	N         int     `json:"n"`
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Fit computes the least squares line through (xs[i], ys[i]).
//
//	s_xx = Σ(x-x̄)²   s_yy = Σ(y-ȳ)²   s_xy = Σ(x-x̄)(y-ȳ)
//	b = s_xy/s_xx    a = ȳ - b·x̄      R² = s_xy²/(s_xx·s_yy)
func Fit(xs, ys []float64) (Line, error) {
	if len(xs) != len(ys) {
		return Line{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(xs), len(ys))
	}
	n := len(xs)
	if n == 0 {
		return Line{}, &DegenerateFitError{Reason: "empty"}
	}

	meanX := stat.Mean(xs, nil)
	meanY := stat.Mean(ys, nil)

	var sxx, syy, sxy float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}

	switch {
	case sxx == 0:
		return Line{}, &DegenerateFitError{Reason: "constant_x", SXX: sxx, SYY: syy, N: n}
	case syy == 0:
		return Line{}, &DegenerateFitError{Reason: "constant_y", SXX: sxx, SYY: syy, N: n}
	}

	b := sxy / sxx
	return Line{
		Slope:     b,
		Intercept: meanY - b*meanX,
		RSquared:  (sxy * sxy) / (sxx * syy),
		N:         n,
	}, nil
}
