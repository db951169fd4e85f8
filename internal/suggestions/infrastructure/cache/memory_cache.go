package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/manumorante/whats-next/internal/suggestions/application/queries"
)

type memoryEntry struct {
	suggestions []queries.SuggestionDTO
	expires     time.Time
}

// MemoryCache is a process-local cache used when Redis is not configured.
type MemoryCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	generation int64
	entries    map[string]memoryEntry
	now        func() time.Time
}

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{ttl: ttl, entries: make(map[string]memoryEntry), now: time.Now}
}

// Generation implements queries.Cache.
func (c *MemoryCache) Generation(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation, nil
}

// Get implements queries.Cache. The returned slice is a copy.
func (c *MemoryCache) Get(_ context.Context, key queries.CacheKey) ([]queries.SuggestionDTO, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := entryKey(key)
	e, ok := c.entries[k]
	if !ok {
		return nil, false, nil
	}
	if c.now().After(e.expires) {
		delete(c.entries, k)
		return nil, false, nil
	}
	return slices.Clone(e.suggestions), true, nil
}

// Set implements queries.Cache. Lists computed under an older generation
// are dropped.
func (c *MemoryCache) Set(_ context.Context, key queries.CacheKey, suggestions []queries.SuggestionDTO) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if key.Generation != c.generation {
		return nil
	}
	c.entries[entryKey(key)] = memoryEntry{
		suggestions: slices.Clone(suggestions),
		expires:     c.now().Add(c.ttl),
	}
	return nil
}

// Invalidate drops every cached entry and advances the generation.
func (c *MemoryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	clear(c.entries)
	return nil
}
