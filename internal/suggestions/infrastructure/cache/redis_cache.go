package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/manumorante/whats-next/internal/shared/infrastructure/eventbus"
	"github.com/manumorante/whats-next/internal/suggestions/application/queries"
)

const (
	// DefaultTTL bounds how long an entry lives. Keys are per minute, so
	// entries are never read after the minute passes anyway.
	DefaultTTL = 2 * time.Minute

	keyPrefix     = "whatsnext:suggestions"
	generationKey = keyPrefix + ":generation"
)

// RedisCache stores suggestion lists in Redis. Every key embeds the
// generation the caller read before computing the list; bumping the counter
// invalidates all entries at once without scanning the keyspace.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache creates a cache on the given client.
func NewRedisCache(client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

// Get implements queries.Cache.
func (c *RedisCache) Get(ctx context.Context, key queries.CacheKey) ([]queries.SuggestionDTO, bool, error) {
	raw, err := c.client.Get(ctx, entryKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read suggestions: %w", err)
	}

	var out []queries.SuggestionDTO
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false, fmt.Errorf("decode suggestions: %w", err)
	}
	return out, true, nil
}

// Set implements queries.Cache.
func (c *RedisCache) Set(ctx context.Context, key queries.CacheKey, suggestions []queries.SuggestionDTO) error {
	raw, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("encode suggestions: %w", err)
	}
	if err := c.client.Set(ctx, entryKey(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write suggestions: %w", err)
	}
	return nil
}

// Invalidate drops every cached entry.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("bump suggestion generation: %w", err)
	}
	return nil
}

// Generation implements queries.Cache.
func (c *RedisCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read suggestion generation: %w", err)
	}
	return gen, nil
}

func entryKey(key queries.CacheKey) string {
	category := "all"
	if key.CategoryID != nil {
		category = strconv.FormatInt(*key.CategoryID, 10)
	}
	return fmt.Sprintf("%s:%d:%s:%d:%s",
		keyPrefix,
		key.Generation,
		key.Minute.UTC().Format("200601021504"),
		key.Limit,
		category,
	)
}

// Invalidator is an event consumer that invalidates a cache whenever stored
// data changes.
type Invalidator struct {
	cache  interface{ Invalidate(context.Context) error }
	logger *slog.Logger
}

// NewInvalidator creates an invalidator for cache.
func NewInvalidator(cache interface{ Invalidate(context.Context) error }, logger *slog.Logger) *Invalidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Invalidator{cache: cache, logger: logger}
}

// EventTypes implements eventbus.EventConsumer.
func (i *Invalidator) EventTypes() []string {
	return []string{eventbus.AllEvents}
}

// Handle implements eventbus.EventConsumer.
func (i *Invalidator) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	if err := i.cache.Invalidate(ctx); err != nil {
		return err
	}
	i.logger.Debug("suggestion cache invalidated",
		"routing_key", event.RoutingKey,
		"event_id", event.EventID,
	)
	return nil
}
