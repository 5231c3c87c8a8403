// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package cache provides a typed in-memory cache with usage statistics.
package cache

import "sync"

// Cache stores values by key for the lifetime of its owner.
type Cache[K comparable, V any] interface {
	// Get retrieves a value from the cache.
	Get(key K) (V, bool)
	// Set stores a value, replacing any previous one.
	Set(key K, value V)
	// Len returns the number of cached entries.
	Len() int
	// Stats returns cache statistics.
	Stats() Stats
}

// Stats holds cache performance metrics.
type Stats struct {
	Hits        int64 // Number of successful Get operations
	Misses      int64 // Number of failed Get operations
	Sets        int64 // Number of Set operations
	CurrentSize int   // Current number of cached entries
}

// Memory is a mutex-guarded map. The zero value is not usable; call NewMemory.
type Memory[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V
	stats   Stats
}

// NewMemory creates an empty in-memory cache.
func NewMemory[K comparable, V any]() *Memory[K, V] {
	return &Memory[K, V]{entries: make(map[K]V)}
}

// Get retrieves a value from the cache.
func (c *Memory[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, found := c.entries[key]
	if !found {
		c.stats.Misses++
		return v, false
	}
	c.stats.Hits++
	return v, true
}

// Set stores a value in the cache.
func (c *Memory[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = value
	c.stats.Sets++
}

// Len returns the number of cached entries.
func (c *Memory[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Memory[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.CurrentSize = len(c.entries)
	return stats
}

var _ Cache[string, string] = (*Memory[string, string])(nil)
