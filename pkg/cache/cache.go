// Package cache implements a generic key/value store with optional
// per-entry TTL and LRU eviction at a maximum size. It backs the render
// artifact cache and is the expiry model shared by session storage and
// rate-limit windows: an entry whose deadline has passed is logically
// absent even before a sweep physically removes it.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value        V
	createdAt    time.Time
	expiresAt    time.Time // zero means no expiry
	accessCount  int
	lastAccessed time.Time
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Cache is a TTL-aware map. All operations take a single exclusive lock:
// reads mutate access metadata, so sharing a lock with writes keeps the
// bookkeeping consistent at the cost of read concurrency.
type Cache[K comparable, V any] struct {
	mu         sync.Mutex
	entries    map[K]*entry[V]
	defaultTTL time.Duration // 0 means entries do not expire
	maxSize    int           // 0 means unbounded
}

// New returns a cache with no default TTL and no size limit.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: map[K]*entry[V]{}}
}

// WithTTL returns a cache whose entries expire ttl after insertion.
func WithTTL[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	c := New[K, V]()
	c.defaultTTL = ttl
	return c
}

// WithMaxSize returns a cache holding at most maxSize entries, evicting
// the least recently used entry on overflow.
func WithMaxSize[K comparable, V any](maxSize int) *Cache[K, V] {
	c := New[K, V]()
	c.maxSize = maxSize
	return c
}

// WithTTLAndMaxSize combines WithTTL and WithMaxSize.
func WithTTLAndMaxSize[K comparable, V any](ttl time.Duration, maxSize int) *Cache[K, V] {
	c := New[K, V]()
	c.defaultTTL = ttl
	c.maxSize = maxSize
	return c
}

// Set inserts or overwrites key with the cache's default TTL.
func (c *Cache[K, V]) Set(key K, value V) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL inserts or overwrites key with an explicit TTL. A ttl of zero
// stores the entry without expiry. When the cache is full and key is
// new, the entry with the oldest last access is evicted first.
func (c *Cache[K, V]) SetTTL(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		if _, exists := c.entries[key]; !exists {
			c.evictLRU()
		}
	}

	now := time.Now()
	e := &entry[V]{value: value, createdAt: now, lastAccessed: now}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	c.entries[key] = e
}

// Get returns the value for key. An expired entry is removed and
// reported as absent. A hit updates the entry's access metadata.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}

	if e.expired(time.Now()) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}

	e.lastAccessed = time.Now()
	e.accessCount++
	return e.value, true
}

// Contains reports whether key holds a live entry without updating its
// access metadata.
func (c *Cache[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	return ok && !e.expired(time.Now())
}

// Remove deletes key and returns its value if present.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	delete(c.entries, key)
	return e.value, true
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[K]*entry[V]{}
}

// SweepExpired removes every expired entry and returns how many were
// removed.
func (c *Cache[K, V]) SweepExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of physically stored entries, expired or not.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats describes the cache contents at a point in time.
type Stats struct {
	Total         int     `json:"total"`
	Active        int     `json:"active"`
	Expired       int     `json:"expired"`
	TotalAccesses int     `json:"total_accesses"`
	AvgAccesses   float64 `json:"avg_accesses"`
}

// Stats returns a snapshot aggregate of the cache contents.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	stats := Stats{Total: len(c.entries)}
	for _, e := range c.entries {
		if e.expired(now) {
			stats.Expired++
		}
		stats.TotalAccesses += e.accessCount
	}
	stats.Active = stats.Total - stats.Expired
	if stats.Total > 0 {
		stats.AvgAccesses = float64(stats.TotalAccesses) / float64(stats.Total)
	}
	return stats
}

// evictLRU removes the entry with the oldest last access. Callers hold
// the lock.
func (c *Cache[K, V]) evictLRU() {
	var (
		victim K
		oldest time.Time
		found  bool
	)
	for key, e := range c.entries {
		if !found || e.lastAccessed.Before(oldest) {
			victim = key
			oldest = e.lastAccessed
			found = true
		}
	}
	if found {
		delete(c.entries, victim)
	}
}
