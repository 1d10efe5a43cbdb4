package admin

import (
	"crypto/sha1"
	"encoding/hex"
	"sync"
	"time"
)

// RenderCache memoizes rendered HTML fragments (markdown bodies, charts).
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// TTLCache is an in-memory RenderCache whose entries expire after ttl.
type TTLCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]cachedFragment
}

type cachedFragment struct {
	html    string
	expires time.Time
}

// NewTTLCache builds a cache; a non-positive ttl disables caching.
func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedFragment),
	}
}

// GetOrRender returns the cached fragment or renders and stores it.
func (c *TTLCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if html, ok := c.get(key); ok {
		return html, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	c.set(key, html)
	return html, nil
}

// Purge drops every entry.
func (c *TTLCache) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]cachedFragment)
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (c *TTLCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *TTLCache) get(key string) (string, bool) {
	if c == nil || c.ttl <= 0 {
		return "", false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if c.now().After(entry.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false
	}
	return entry.html, true
}

func (c *TTLCache) set(key, html string) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cachedFragment{html: html, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

func contentHash(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
