// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

/*
Package main is the tastemap command line tool.

	recommend -r
	recommend -u test_user -k 3 -p -o map.geojson
	recommend -u test_user -q pizza --seed 7 --data ./data

-r prints every restaurant name in alphabetical order. Otherwise the user's
ratings are computed (with -p, predicted for unreviewed restaurants),
clustered into k groups and written as a GeoJSON FeatureCollection to -o or
stdout. Logs go to stderr. Any failure exits non-zero.
*/
package main
