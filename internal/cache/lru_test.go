// Tastemap - Restaurant Affinity and Spatial Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tastemap

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newTestLRU(capacity int, ttl time.Duration) (*LRU[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU[string](capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestLRU_GetAdd(t *testing.T) {
	c, _ := newTestLRU(2, time.Minute)

	if _, ok := c.Get("a"); ok {
		t.Error("Get on empty cache returned ok")
	}
	c.Add("a", "1")
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v", v, ok)
	}

	c.Add("a", "2")
	if v, _ := c.Get("a"); v != "2" {
		t.Errorf("Get(a) after replace = %q, want 2", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Size != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestLRU_Eviction(t *testing.T) {
	c, _ := newTestLRU(2, time.Minute)
	c.Add("a", "1")
	c.Add("b", "2")
	c.Get("a") // b is now least recently used
	c.Add("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s missing after eviction", k)
		}
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", c.Stats().Evictions)
	}
}

func TestLRU_TTL(t *testing.T) {
	c, clock := newTestLRU(10, time.Minute)
	c.Add("a", "1")

	clock.Advance(59 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Error("entry expired early")
	}
	clock.Advance(2 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("entry served after TTL")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not dropped, Len() = %d", c.Len())
	}
}

func TestLRU_RemovePurge(t *testing.T) {
	c, _ := newTestLRU(10, time.Minute)
	c.Add("a", "1")
	c.Add("b", "2")

	if !c.Remove("a") || c.Remove("a") {
		t.Error("Remove should report presence exactly once")
	}
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len() after Purge = %d", c.Len())
	}
	c.Add("c", "3")
	if _, ok := c.Get("c"); !ok {
		t.Error("cache unusable after Purge")
	}
}

func TestNewLRU_Defaults(t *testing.T) {
	c := NewLRU[int](0, 0)
	if c.capacity != DefaultCapacity || c.ttl != DefaultTTL {
		t.Errorf("defaults = %d, %v", c.capacity, c.ttl)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int](50, time.Minute)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%75)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()
	if c.Len() > 50 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}

func TestKey(t *testing.T) {
	type req struct {
		User string
		K    int
	}
	a := Key("map", req{"alice", 3})
	b := Key("map", req{"alice", 3})
	c := Key("map", req{"alice", 4})
	d := Key("ratings", req{"alice", 3})

	if a != b {
		t.Error("equal params produced different keys")
	}
	if a == c || a == d {
		t.Error("different params or namespace produced the same key")
	}
}
