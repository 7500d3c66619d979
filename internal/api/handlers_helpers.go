// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"

	"github.com/tomtom215/tastemap/internal/logging"
	"github.com/tomtom215/tastemap/internal/models"
	"github.com/tomtom215/tastemap/internal/validation"
)

// sanitizeLogValue escapes control characters so client-supplied values
// cannot forge log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// newMetadata stamps a response with the time and request ID.
func newMetadata(r *http.Request) models.Metadata {
	return models.Metadata{
		Timestamp: time.Now(),
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
}

// respondSuccess writes data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, data interface{}, meta models.Metadata) {
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     data,
		Metadata: meta,
	})
}

// respondJSON sends a JSON response. Successful responses carry an ETag
// and may be cached privately for a minute.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/json")
	if status == http.StatusOK {
		h.Set("ETag", generateETag(data))
		h.Set("Cache-Control", "private, max-age=60")
	} else {
		h.Set("Cache-Control", "no-store")
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag is a quoted xxHash of the body.
func generateETag(data []byte) string {
	return `"` + strconv.FormatUint(xxhash.Sum64(data), 16) + `"`
}

// respondError sends an error envelope. err, when set, is logged but never
// sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		ev := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			ev = logging.Ctx(r.Context()).Error()
		}
		ev.Str("code", code).
			Int("status", status).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondJSON(w, r, status, &models.APIResponse{
		Status:   models.StatusError,
		Metadata: newMetadata(r),
		Error:    &models.APIError{Code: code, Message: message},
	})
}

// respondEngineError classifies err and sends the matching error envelope.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		respondValidationError(w, r, verr)
		return
	}
	status, code, message := errorResponse(err)
	respondError(w, r, status, code, message, err)
}

// respondValidationError sends a 400 with the failing fields as details.
func respondValidationError(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	respondJSON(w, r, http.StatusBadRequest, &models.APIResponse{
		Status:   models.StatusError,
		Metadata: newMetadata(r),
		Error: &models.APIError{
			Code:    ErrCodeValidation,
			Message: apiErr.Message,
			Details: apiErr.Details,
		},
	})
}

// paramError reports an unparseable query parameter.
func paramError(name, value, want string) *validation.RequestValidationError {
	return validation.NewRequestValidationError(name, "type", value,
		fmt.Sprintf("%s must be %s", name, want))
}

// intParam parses an integer query parameter, returning def when absent.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, paramError(name, raw, "an integer")
	}
	return v, nil
}

// int64Param parses a 64-bit integer query parameter.
func int64Param(r *http.Request, name string, def int64) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, paramError(name, raw, "an integer")
	}
	return v, nil
}

// boolParam parses a boolean query parameter. A bare "?predict" counts
// as true.
func boolParam(r *http.Request, name string) (bool, error) {
	q := r.URL.Query()
	if _, present := q[name]; !present {
		return false, nil
	}
	raw := q.Get(name)
	if raw == "" {
		return true, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, paramError(name, raw, "a boolean")
	}
	return v, nil
}
