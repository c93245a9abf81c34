package server

import (
	"context"
	"sync"
	"time"

	"github.com/mj1618/wintitle/internal/model"
	"github.com/mj1618/wintitle/internal/windowinfo"
)

// cacheEntry holds a cached window listing with its timestamp.
type cacheEntry struct {
	windows   []model.Window
	timestamp time.Time
}

// ListCache provides a TTL-based cache for window listings.
type ListCache struct {
	mu      sync.Mutex
	entries map[windowinfo.ListOptions]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewListCache creates a new cache. A ttl of 0 disables caching.
func NewListCache(ttl time.Duration) *ListCache {
	return &ListCache{
		entries: make(map[windowinfo.ListOptions]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// List returns cached windows if within TTL, otherwise lists fresh.
func (c *ListCache) List(ctx context.Context, p *windowinfo.Provider, opts windowinfo.ListOptions) ([]model.Window, error) {
	if c.ttl == 0 {
		return p.List(ctx, opts)
	}

	c.mu.Lock()
	if entry, ok := c.entries[opts]; ok && c.now().Sub(entry.timestamp) < c.ttl {
		windows := entry.windows
		c.mu.Unlock()
		return windows, nil
	}
	c.mu.Unlock()

	windows, err := p.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[opts] = cacheEntry{windows: windows, timestamp: c.now()}
	c.mu.Unlock()

	return windows, nil
}

// InvalidateAll clears the entire cache.
func (c *ListCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[windowinfo.ListOptions]cacheEntry)
}
