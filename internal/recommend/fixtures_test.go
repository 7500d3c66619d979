// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package recommend

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"

	"github.com/paulmach/orb"
)

// testCatalog returns five restaurants. Price is a perfect predictor of
// alice's scores; every restaurant has exactly one review so num_scores
// is constant.
func testCatalog() []Restaurant {
	return []Restaurant{
		{Name: "A", Location: orb.Point{-122.0, 37.0}, Categories: []string{"Thai", "Cafe"}, Price: 1, Reviews: []Review{{"A", 4}}},
		{Name: "B", Location: orb.Point{-122.3, 37.2}, Categories: []string{"Pizza"}, Price: 2, Reviews: []Review{{"B", 2}}},
		{Name: "C", Location: orb.Point{-122.1, 37.1}, Categories: []string{"Thai"}, Price: 3, Reviews: []Review{{"C", 3}}},
		{Name: "D", Location: orb.Point{-121.0, 38.0}, Categories: []string{"Thai"}, Price: 4, Reviews: []Review{{"D", 5}}},
		{Name: "E", Location: orb.Point{-121.1, 38.1}, Categories: []string{"Pizza"}, Price: 2, Reviews: []Review{{"E", 1}}},
	}
}

func testUser() *User {
	return NewUser("alice", []Review{{"A", 1}, {"B", 2}, {"C", 3}})
}

// mockDataProvider implements DataProvider for testing.
type mockDataProvider struct {
	restaurants    []Restaurant
	users          map[string]*User
	restaurantsErr error
	userErr        error
	userCalls      atomic.Int32
}

var errUserNotFound = errors.New("user not found")

func newMockDataProvider() *mockDataProvider {
	return &mockDataProvider{
		restaurants: testCatalog(),
		users: map[string]*User{
			"alice": testUser(),
			"flat":  NewUser("flat", []Review{{"A", 3}, {"B", 3}, {"C", 3}}),
		},
	}
}

func (m *mockDataProvider) Restaurants(ctx context.Context) ([]Restaurant, error) {
	if m.restaurantsErr != nil {
		return nil, m.restaurantsErr
	}
	return m.restaurants, nil
}

func (m *mockDataProvider) Categories(ctx context.Context) ([]string, error) {
	set := make(map[string]struct{})
	for _, r := range m.restaurants {
		for _, c := range r.Categories {
			set[c] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

func (m *mockDataProvider) User(ctx context.Context, name string) (*User, error) {
	m.userCalls.Add(1)
	if m.userErr != nil {
		return nil, m.userErr
	}
	u, ok := m.users[name]
	if !ok {
		return nil, errUserNotFound
	}
	return u, nil
}

func (m *mockDataProvider) UserNames(ctx context.Context) ([]string, error) {
	out := make([]string, 0, len(m.users))
	for name := range m.users {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}
