// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

// Package render turns a recommendation response into a GeoJSON map.
//
// The output is a single FeatureCollection. Centroids come first, one Point
// feature each, followed by one Point feature per restaurant:
//
//	centroid:   {"kind":"centroid","cluster":0,"size":3}
//	restaurant: {"kind":"restaurant","name":"...","price":2,"categories":[...],
//	             "rating":4.5,"reviewed":true,"cluster":0}
//
// Any GeoJSON viewer (or a Leaflet/MapLibre front end) can draw the result
// directly; the cluster property is the join key for colouring.
package render

import (
	"fmt"
	"io"

	"github.com/paulmach/orb/geojson"

	"github.com/tomtom215/tastemap/internal/recommend"
)

// Feature kinds.
const (
	KindCentroid   = "centroid"
	KindRestaurant = "restaurant"
)

// GeoJSON builds the feature collection for resp.
func GeoJSON(resp *recommend.Response) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if resp == nil {
		return fc
	}

	sizes := make([]int, len(resp.Centroids))
	for _, c := range resp.Assignments {
		if c >= 0 && c < len(sizes) {
			sizes[c]++
		}
	}

	for i, c := range resp.Centroids {
		f := geojson.NewFeature(c)
		f.ID = fmt.Sprintf("centroid-%d", i)
		f.Properties["kind"] = KindCentroid
		f.Properties["cluster"] = i
		f.Properties["size"] = sizes[i]
		fc.Append(f)
	}

	for i := range resp.Restaurants {
		r := &resp.Restaurants[i]
		f := geojson.NewFeature(r.Location)
		f.ID = r.Name
		f.Properties["kind"] = KindRestaurant
		f.Properties["name"] = r.Name
		f.Properties["price"] = r.Price
		f.Properties["categories"] = categories(r.Categories)

		if score, ok := resp.Ratings[r.Name]; ok {
			f.Properties["rating"] = float64(score)
			f.Properties["reviewed"] = resp.Reviewed[r.Name]
		}
		if i < len(resp.Assignments) {
			f.Properties["cluster"] = resp.Assignments[i]
		}
		fc.Append(f)
	}
	return fc
}

// Write encodes the map for resp to w.
func Write(w io.Writer, resp *recommend.Response) error {
	data, err := GeoJSON(resp).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write geojson: %w", err)
	}
	return nil
}

func categories(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
