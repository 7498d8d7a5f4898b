package nutrition

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"bitescan-api/domain"
)

type (
	// Cache keeps resolved macros keyed by normalized item name so repeat
	// receipts do not burn provider quota.
	Cache interface {
		GetMacros(ctx context.Context, name string) (*domain.Macros, bool)
		SetMacros(ctx context.Context, name string, macros domain.Macros)
	}

	redisCache struct {
		client *redis.Client
		ttl    time.Duration
	}
)

const cacheKeyPrefix = "nutrition:"

func NewRedisCache(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{client: client, ttl: ttl}
}

func cacheKey(name string) string {
	return cacheKeyPrefix + strings.ToLower(strings.TrimSpace(name))
}

func (c *redisCache) GetMacros(ctx context.Context, name string) (*domain.Macros, bool) {
	raw, err := c.client.Get(ctx, cacheKey(name)).Bytes()
	if err != nil {
		return nil, false
	}
	var macros domain.Macros
	if err := json.Unmarshal(raw, &macros); err != nil {
		return nil, false
	}
	return &macros, true
}

// SetMacros is best effort; a cache write failure never fails enrichment.
func (c *redisCache) SetMacros(ctx context.Context, name string, macros domain.Macros) {
	raw, err := json.Marshal(macros)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKey(name), raw, c.ttl)
}
