// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package recommend

// Ratings holds per-restaurant scores and where each came from.
type Ratings struct {
	// Scores maps restaurant name to score.
	Scores map[string]Score

	// Reviewed is true for scores copied from the user's own review.
	Reviewed map[string]bool

	// Selection describes the predictor used for unreviewed restaurants.
	// Nil when no predictor was trained.
	Selection *Selection
}

// counts returns the number of reviewed and predicted scores.
func (r *Ratings) counts() (reviewed, predicted int) {
	for name := range r.Scores {
		if r.Reviewed[name] {
			reviewed++
		} else {
			predicted++
		}
	}
	return reviewed, predicted
}

// Rate scores every restaurant in restaurants for user. The predictor is
// selected over universe, which should be the full catalog even when
// restaurants is a filtered subset. Reviewed restaurants keep the user's
// recorded score exactly.
func Rate(user *User, universe, restaurants []Restaurant, features []Feature) (*Ratings, error) {
	sel, err := SelectPredictor(user, universe, features)
	if err != nil {
		return nil, err
	}

	out := &Ratings{
		Scores:    make(map[string]Score, len(restaurants)),
		Reviewed:  make(map[string]bool, len(restaurants)),
		Selection: sel,
	}
	for i := range restaurants {
		r := &restaurants[i]
		if score, ok := user.Score(r.Name); ok {
			out.Scores[r.Name] = Score(score)
			out.Reviewed[r.Name] = true
			continue
		}
		out.Scores[r.Name] = Score(sel.Best.Predict(r))
	}
	return out, nil
}

// RateAll returns a score for every restaurant: the user's own score when
// reviewed, the best predictor's estimate otherwise.
func RateAll(user *User, universe, restaurants []Restaurant, features []Feature) (map[string]Score, error) {
	ratings, err := Rate(user, universe, restaurants, features)
	if err != nil {
		return nil, err
	}
	return ratings.Scores, nil
}

// ReviewedRatings keeps only the restaurants the user reviewed and returns
// them with their recorded scores. No predictor is trained.
func ReviewedRatings(user *User, restaurants []Restaurant) ([]Restaurant, *Ratings) {
	reviewed := user.ReviewedRestaurants(restaurants)
	out := &Ratings{
		Scores:   make(map[string]Score, len(reviewed)),
		Reviewed: make(map[string]bool, len(reviewed)),
	}
	for i := range reviewed {
		score, _ := user.Score(reviewed[i].Name)
		out.Scores[reviewed[i].Name] = Score(score)
		out.Reviewed[reviewed[i].Name] = true
	}
	return reviewed, out
}

// Search returns the restaurants tagged with query, preserving order.
// No match yields an empty, non-nil slice.
func Search(query string, restaurants []Restaurant) []Restaurant {
	out := make([]Restaurant, 0)
	for i := range restaurants {
		if restaurants[i].HasCategory(query) {
			out = append(out, restaurants[i])
		}
	}
	return out
}
