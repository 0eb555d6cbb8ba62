// Package iconcache keeps icon textures loaded through a host-supplied
// provider, bounded to a fixed number of entries.
package iconcache

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Texture is an opaque bitmap handle owned by the host.
type Texture interface {
	Size() (width, height int)
}

// Provider loads icon textures. Implementations are supplied by the host.
type Provider interface {
	LoadIcon(iconID int, hiRes bool) (Texture, error)
}

// ErrNotFound is returned by providers that have no texture for an icon.
var ErrNotFound = errors.New("icon not found")

// Chain tries providers in reverse order (last added = highest priority).
type Chain []Provider

// LoadIcon returns the first texture any provider can load.
func (c Chain) LoadIcon(iconID int, hiRes bool) (Texture, error) {
	for i := len(c) - 1; i >= 0; i-- {
		tex, err := c[i].LoadIcon(iconID, hiRes)
		if err == nil && tex != nil {
			return tex, nil
		}
	}
	return nil, fmt.Errorf("icon %d: %w", iconID, ErrNotFound)
}

type key struct {
	icon  int
	hiRes bool
}

// Cache is a concurrency-safe icon texture cache. When it grows past its
// limit it drops a batch of arbitrary entries; there is no LRU ordering.
type Cache struct {
	provider   Provider
	maxEntries int
	evictBatch int

	mu   sync.RWMutex
	data map[key]Texture // nil value: load attempted and failed

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a cache of at most maxEntries textures that evicts evictBatch
// entries at a time. Non-positive values fall back to 1.
func New(provider Provider, maxEntries, evictBatch int) *Cache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	if evictBatch < 1 {
		evictBatch = 1
	}
	return &Cache{
		provider:   provider,
		maxEntries: maxEntries,
		evictBatch: evictBatch,
		data:       make(map[key]Texture),
	}
}

// Get returns the texture for an icon, loading it on first request. Failed
// loads are remembered so they are not retried every frame.
func (c *Cache) Get(iconID int, hiRes bool) (Texture, bool) {
	k := key{icon: iconID, hiRes: hiRes}

	c.mu.RLock()
	tex, ok := c.data[k]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return tex, tex != nil
	}
	c.misses.Add(1)

	// Load outside the lock; the provider may be slow.
	var loaded Texture
	if c.provider != nil {
		if t, err := c.provider.LoadIcon(iconID, hiRes); err == nil {
			loaded = t
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.data[k]; ok {
		return existing, existing != nil
	}
	if len(c.data) >= c.maxEntries {
		c.evictLocked()
	}
	c.data[k] = loaded
	return loaded, loaded != nil
}

// evictLocked drops up to evictBatch entries in map iteration order.
func (c *Cache) evictLocked() {
	n := 0
	for k := range c.data {
		if n >= c.evictBatch {
			break
		}
		delete(c.data, k)
		n++
	}
}

// Len returns the number of cached entries, including failed loads.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear drops every entry and resets statistics.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[key]Texture)
	c.hits.Store(0)
	c.misses.Store(0)
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	return int(c.hits.Load()), int(c.misses.Load())
}
