package utils

import (
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem wraps cached data with its expiration time
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Cache is a small LRU cache with per-entry TTL. It backs the password-reset
// token store, which only needs key-value-with-expiry semantics.
type Cache struct {
	lruCache *lru.Cache[string, CacheItem]
}

// NewCache creates a cache with the given capacity
func NewCache(size int) *Cache {
	l, err := lru.New[string, CacheItem](size)
	if err != nil {
		log.Fatalf("Failed to create LRU cache: %v", err)
	}
	return &Cache{lruCache: l}
}

// Set stores data under key for the given TTL
func (c *Cache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get returns the stored data, or nil when the key is absent or expired
func (c *Cache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}

	if time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}

	return val.Data
}

// Delete removes a key
func (c *Cache) Delete(key string) {
	c.lruCache.Remove(key)
}
