// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector runs one value log GC pass. Satisfied by *store.BadgerStore.
type GarbageCollector interface {
	RunGC(discardRatio float64) (bool, error)
}

// BadgerGCService periodically reclaims Badger value log space.
// Each tick repeats RunGC while it keeps rewriting files, as Badger recommends.
type BadgerGCService struct {
	gc           GarbageCollector
	interval     time.Duration
	discardRatio float64
	logger       zerolog.Logger
}

// maxPassesPerTick bounds a single tick so a busy store cannot pin the service.
const maxPassesPerTick = 16

// NewBadgerGCService creates the service. A non-positive interval means 10m
// and a ratio outside (0,1) means 0.5.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewBadgerGCService(gc GarbageCollector, interval time.Duration, discardRatio float64, logger zerolog.Logger) *BadgerGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if discardRatio <= 0 || discardRatio >= 1 {
		discardRatio = 0.5
	}
	return &BadgerGCService{
		gc:           gc,
		interval:     interval,
		discardRatio: discardRatio,
		logger:       logger.With().Str("service", "badger-gc").Logger(),
	}
}

// Serve implements suture.Service. A GC error is returned so the supervisor
// restarts the service with backoff.
func (s *BadgerGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			passes, err := s.collect(ctx)
			if err != nil {
				return fmt.Errorf("badger gc: %w", err)
			}
			if passes > 0 {
				s.logger.Debug().Int("rewritten", passes).Msg("Value log GC complete")
			}
		}
	}
}

// collect runs GC passes until one rewrites nothing. It returns the number
// of passes that rewrote a file.
func (s *BadgerGCService) collect(ctx context.Context) (int, error) {
	rewritten := 0
	for i := 0; i < maxPassesPerTick; i++ {
		if ctx.Err() != nil {
			return rewritten, nil
		}
		ok, err := s.gc.RunGC(s.discardRatio)
		if err != nil {
			return rewritten, err
		}
		if !ok {
			break
		}
		rewritten++
	}
	return rewritten, nil
}

// String names the service in supervisor events.
func (s *BadgerGCService) String() string {
	return "badger-gc"
}
