// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package recommend

import "fmt"

// Feature names recognized by FeaturesByName.
const (
	FeatureMeanScore = "mean_score"
	FeaturePrice     = "price"
	FeatureNumScores = "num_scores"
	FeatureLatitude  = "latitude"
	FeatureLongitude = "longitude"
)

// Feature maps a restaurant to a single numeric predictor variable.
type Feature struct {
	Name string
	Fn   func(r *Restaurant) float64
}

// DefaultFeatures returns the standard candidate features in selection order.
func DefaultFeatures() []Feature {
	return []Feature{
		{Name: FeatureMeanScore, Fn: func(r *Restaurant) float64 { return r.MeanScore() }},
		{Name: FeaturePrice, Fn: func(r *Restaurant) float64 { return float64(r.Price) }},
		{Name: FeatureNumScores, Fn: func(r *Restaurant) float64 { return float64(r.NumScores()) }},
		{Name: FeatureLatitude, Fn: func(r *Restaurant) float64 { return r.Location.Lat() }},
		{Name: FeatureLongitude, Fn: func(r *Restaurant) float64 { return r.Location.Lon() }},
	}
}

// FeatureNames returns the names of the default features.
func FeatureNames() []string {
	defaults := DefaultFeatures()
	names := make([]string, len(defaults))
	for i, f := range defaults {
		names[i] = f.Name
	}
	return names
}

// FeaturesByName resolves names to features, keeping the given order.
// An empty list selects every default feature.
func FeaturesByName(names []string) ([]Feature, error) {
	defaults := DefaultFeatures()
	if len(names) == 0 {
		return defaults, nil
	}

	byName := make(map[string]Feature, len(defaults))
	for _, f := range defaults {
		byName[f.Name] = f
	}

	out := make([]Feature, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		f, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown feature %q (valid: %v)", name, FeatureNames())
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, f)
	}
	return out, nil
}
