// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/tastemap/internal/cluster"
	"github.com/tomtom215/tastemap/internal/recommend"
	"github.com/tomtom215/tastemap/internal/store"
	"github.com/tomtom215/tastemap/internal/validation"
)

// Error codes returned in the envelope's error.code field.
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeInsufficientData = "INSUFFICIENT_DATA"
	ErrCodeNoUsableFeature  = "NO_USABLE_FEATURE"
	ErrCodeRateLimited      = "RATE_LIMIT_EXCEEDED"
	ErrCodeTimeout          = "TIMEOUT"
	ErrCodeUnavailable      = "SERVICE_UNAVAILABLE"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// errorResponse maps an engine or store error to a status, code and a
// message safe to show clients. Internal errors get a generic message.
func errorResponse(err error) (status int, code, message string) {
	var verr *validation.RequestValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrCodeValidation, verr.Error()
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound, err.Error()
	case errors.Is(err, cluster.ErrInsufficientData):
		return http.StatusUnprocessableEntity, ErrCodeInsufficientData, err.Error()
	case errors.Is(err, recommend.ErrNoUsableFeature):
		return http.StatusUnprocessableEntity, ErrCodeNoUsableFeature, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrCodeTimeout, "computation timed out"
	default:
		return http.StatusInternalServerError, ErrCodeInternal, "internal error"
	}
}
