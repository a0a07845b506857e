package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/phrazzld/taskboard-api/internal/config"
)

// DefaultTTL applies when an enabled cache is configured without a TTL.
const DefaultTTL = 5 * time.Minute

// Cache is a typed LRU cache. The zero value and a nil *Cache are disabled.
type Cache[K comparable, V any] struct {
	lru *expirable.LRU[K, V]
}

// New builds a cache holding at most size entries, each living for ttl.
// A non-positive size disables the cache.
func New[K comparable, V any](size int, ttl time.Duration) *Cache[K, V] {
	if size <= 0 {
		return &Cache[K, V]{}
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[K, V]{lru: expirable.NewLRU[K, V](size, nil, ttl)}
}

// FromConfig builds a cache from the cache section of the configuration.
func FromConfig[K comparable, V any](cfg config.CacheConfig) *Cache[K, V] {
	if !cfg.Enabled {
		return &Cache[K, V]{}
	}
	return New[K, V](cfg.Size, cfg.TTL)
}

// Enabled reports whether the cache stores anything.
func (c *Cache[K, V]) Enabled() bool {
	return c != nil && c.lru != nil
}

// Get returns the value cached under key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	if !c.Enabled() {
		var zero V
		return zero, false
	}
	return c.lru.Get(key)
}

// Add stores value under key, evicting the least recently used entry when full.
func (c *Cache[K, V]) Add(key K, value V) {
	if c.Enabled() {
		c.lru.Add(key, value)
	}
}

// Remove evicts key.
func (c *Cache[K, V]) Remove(key K) {
	if c.Enabled() {
		c.lru.Remove(key)
	}
}

// Purge evicts everything.
func (c *Cache[K, V]) Purge() {
	if c.Enabled() {
		c.lru.Purge()
	}
}

// Len is the number of live entries.
func (c *Cache[K, V]) Len() int {
	if !c.Enabled() {
		return 0
	}
	return c.lru.Len()
}
