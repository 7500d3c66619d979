// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

/*
Package recommend predicts how much a user will like restaurants they have
not reviewed and prepares the data behind the clustered map view.

# Scoring

For a user, every candidate Feature (mean_score, price, num_scores,
latitude, longitude) is fit against the user's own scores with single
variable least squares over the restaurants they reviewed. The feature with
the highest R² becomes the predictor; ties go to the earlier feature.
Features whose sample has no variance are skipped, and if all of them are
skipped the user cannot be scored (ErrNoUsableFeature).

	ratings, err := recommend.RateAll(user, catalog, subset, recommend.DefaultFeatures())

Restaurants the user reviewed keep the recorded score; the rest get the
predictor's estimate. The predictor is always trained on the full catalog
passed as the universe, even when only a filtered subset is rated.

# Engine

Engine wraps the functions above with a DataProvider, per-request random
sources for k-means and Prometheus metrics:

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
	engine.SetDataProvider(store)
	resp, err := engine.Visualize(ctx, recommend.Request{User: "alice", K: 4, Predict: true})

# Errors

  - *MissingReviewError (ErrMissingReview): a training restaurant was not reviewed
  - ErrNoUsableFeature: every feature produced a degenerate fit
  - cluster.ErrInsufficientData: more clusters requested than restaurants
*/
package recommend
