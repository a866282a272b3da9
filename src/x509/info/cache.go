// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509info

import (
	"crypto/sha256"
	"fmt"
)

// contentKey is the SHA-256 digest of the extracted input bytes.
type contentKey [sha256.Size]byte

// Metrics tracks cache performance and usage
type Metrics struct {
	Size      int64 // Current number of cached views
	Capacity  int64 // Maximum number of cached views
	Hits      int64 // Number of cache hits
	Misses    int64 // Number of cache misses
	Evictions int64 // Number of LRU evictions
}

// HitRate returns the percentage of lookups served from cache.
func (m Metrics) HitRate() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total) * 100
}

// String returns a formatted summary of the metrics.
func (m Metrics) String() string {
	return fmt.Sprintf("View Cache Statistics:\n"+
		"  Size: %d/%d entries\n"+
		"  Hit Rate: %.1f%% (%d hits, %d misses)\n"+
		"  Evictions: %d",
		m.Size, m.Capacity,
		m.HitRate(), m.Hits, m.Misses,
		m.Evictions)
}

// viewCache is a bounded LRU of views keyed by content digest.
// With a capacity of one it degrades to a single-slot memo of the
// last extracted certificate. It is not safe for concurrent use.
type viewCache struct {
	capacity int
	entries  map[contentKey]*View
	order    []contentKey // Access order, least recently used first
	metrics  Metrics
}

func newViewCache(capacity int) *viewCache {
	if capacity < 1 {
		capacity = 1
	}
	return &viewCache{
		capacity: capacity,
		entries:  make(map[contentKey]*View, capacity),
		metrics:  Metrics{Capacity: int64(capacity)},
	}
}

// touch moves key to the most recently used position.
func (c *viewCache) touch(key contentKey) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, key)
}

func (c *viewCache) get(key contentKey) (*View, bool) {
	v, ok := c.entries[key]
	if !ok {
		c.metrics.Misses++
		return nil, false
	}
	c.metrics.Hits++
	c.touch(key)
	return v, true
}

func (c *viewCache) put(key contentKey, v *View) {
	if _, ok := c.entries[key]; !ok {
		for len(c.entries) >= c.capacity && len(c.order) > 0 {
			lru := c.order[0]
			delete(c.entries, lru)
			c.order = c.order[1:]
			c.metrics.Evictions++
		}
	}
	c.entries[key] = v
	c.touch(key)
}

func (c *viewCache) snapshot() Metrics {
	m := c.metrics
	m.Size = int64(len(c.entries))
	return m
}
