// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/tastemap/internal/models"
	"github.com/tomtom215/tastemap/internal/validation"
)

// catalogQuery is the optional category filter.
type catalogQuery struct {
	Query string `validate:"max=128"`
}

// Restaurants handles GET /api/v1/restaurants?query=CATEGORY.
// Without a query every restaurant is returned, in catalog order.
func (h *Handler) Restaurants(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	params := catalogQuery{Query: r.URL.Query().Get("query")}
	if verr := validation.ValidateStruct(&params); verr != nil {
		respondValidationError(w, r, verr)
		return
	}

	restaurants, err := h.engine.Restaurants(r.Context(), params.Query)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	out := make([]models.RestaurantSummary, len(restaurants))
	for i := range restaurants {
		out[i] = models.NewRestaurantSummary(&restaurants[i])
	}

	meta := newMetadata(r)
	meta.QueryTimeMS = time.Since(start).Milliseconds()
	respondSuccess(w, r, out, meta)
}

// Categories handles GET /api/v1/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.engine.Categories(r.Context())
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respondSuccess(w, r, categories, newMetadata(r))
}

// Users handles GET /api/v1/users.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.engine.Users(r.Context())
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	if users == nil {
		users = []string{}
	}
	respondSuccess(w, r, users, newMetadata(r))
}
