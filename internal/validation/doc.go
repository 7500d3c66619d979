// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is created on first use and shared by the
// config loader, the data store and the HTTP handlers. Besides the built-in
// tags it registers:
//
//   - username: a user name that is safe to use as a file name or key suffix
//
// Errors are returned as *RequestValidationError, which converts to the API
// error envelope through ToAPIError:
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    apiErr := err.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
