package cache

import (
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DefaultTTL is how long an entry stays valid after it was stored. Callers
// depend on this freshness window; a different TTL is an operator override.
const DefaultTTL = 300 * time.Second

// Entry is a single cached value.
type Entry struct {
	Key       string
	Value     any
	CreatedAt time.Time
}

// TTLCache is a process-local key/value store with lazy expiry.
// Expiry is decided on read: an expired entry is never returned, whether or
// not anything has purged it yet. PurgeExpired only reclaims memory held by
// entries nobody reads again; the API server calls it on a ticker, and
// correctness never depends on that sweep running.
type TTLCache struct {
	mu      sync.Mutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time
}

type Option func(*TTLCache)

// WithClock replaces time.Now as the cache time source.
func WithClock(now func() time.Time) Option {
	return func(c *TTLCache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewTTLCache creates a cache. A non-positive ttl falls back to DefaultTTL.
func NewTTLCache(ttl time.Duration, opts ...Option) *TTLCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &TTLCache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the validity window of stored entries.
func (c *TTLCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the value stored under key, or false when it is missing or expired.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.CreatedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.Value, true
}

// Set stores value under key and returns it unchanged.
func (c *TTLCache) Set(key string, value any) any {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry{
		Key:       key,
		Value:     value,
		CreatedAt: c.now(),
	}
	return value
}

// Invalidate removes every key starting with prefix and reports how many
// entries were dropped. An empty prefix clears the whole cache.
func (c *TTLCache) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prefix == "" {
		n := len(c.entries)
		c.entries = make(map[string]Entry)
		slog.Debug("Cache cleared", "removed", n)
		return n
	}

	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	slog.Debug("Cache invalidated", "prefix", prefix, "removed", removed)
	return removed
}

// PurgeExpired drops every expired entry and reports how many were removed.
func (c *TTLCache) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if now.Sub(entry.CreatedAt) >= c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len counts stored entries, expired ones included.
func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Key joins non-empty parts with ":".
func Key(parts ...string) string {
	var sb strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(":")
		}
		sb.WriteString(part)
	}
	return sb.String()
}
