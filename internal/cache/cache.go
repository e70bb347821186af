// Package cache keeps recent composed search results in Redis so standing
// queries and repeat searches skip the provider fan-out entirely.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"jobradar/aggregator-service/internal/model"
	"jobradar/aggregator-service/internal/observability"
)

// SearchCache is a TTL cache over composed results. A nil *SearchCache is
// a valid disabled cache: Get always misses and Set is a no-op, so callers
// never need to branch on whether caching is configured.
type SearchCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New builds a cache over an existing Redis client.
func New(rdb *redis.Client, ttl time.Duration) *SearchCache {
	return &SearchCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached result for the query, if any. Redis errors are
// treated as misses — the cache never breaks a search.
func (c *SearchCache) Get(ctx context.Context, query model.JobQuery) (*model.SearchResult, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, Key(query)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[cache] get failed: %v", err)
		}
		observability.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	var res model.SearchResult
	if err := json.Unmarshal(raw, &res); err != nil {
		log.Printf("[cache] corrupt entry dropped: %v", err)
		observability.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	observability.CacheLookups.WithLabelValues("hit").Inc()
	return &res, true
}

// Set stores the result under the query's key with the configured TTL.
func (c *SearchCache) Set(ctx context.Context, query model.JobQuery, res *model.SearchResult) {
	if c == nil || res == nil {
		return
	}
	raw, err := json.Marshal(res)
	if err != nil {
		log.Printf("[cache] marshal failed: %v", err)
		return
	}
	if err := c.rdb.Set(ctx, Key(query), raw, c.ttl).Err(); err != nil {
		log.Printf("[cache] set failed: %v", err)
	}
}

// Key derives a stable cache key from the query's fields.
func Key(query model.JobQuery) string {
	raw, _ := json.Marshal(query)
	sum := sha256.Sum256(raw)
	return "search:" + hex.EncodeToString(sum[:])[:16]
}
