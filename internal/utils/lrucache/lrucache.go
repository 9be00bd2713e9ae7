// Package lrucache is a typed wrapper around golang-lru.
package lrucache

import lru "github.com/hashicorp/golang-lru"

// Cache is a fixed size, thread safe LRU cache.
type Cache[K comparable, V any] struct {
	cache *lru.Cache
}

// NewCache returns a cache holding at most size entries.
func NewCache[K comparable, V any](size int) (*Cache[K, V], error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{
		cache: c,
	}, nil
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.cache.Get(key)
	if !ok {
		var out V
		return out, false
	}
	return v.(V), true
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.cache.Add(key, value)
}

// Contains checks if a key is in the cache, without updating the
// recent-ness or deleting it for being stale.
func (c *Cache[K, V]) Contains(key K) bool {
	return c.cache.Contains(key)
}

func (c *Cache[K, V]) Remove(key K) {
	c.cache.Remove(key)
}

// Purge drops every entry.
func (c *Cache[K, V]) Purge() {
	c.cache.Purge()
}

func (c *Cache[K, V]) Len() int {
	return c.cache.Len()
}
