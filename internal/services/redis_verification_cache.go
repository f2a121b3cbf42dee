package services

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AI-Matrix-Zoo/smart-community-sub000/domain"
)

const codeKeyPrefix = "vcode:"

// RedisVerificationCache implements domain.VerificationCache on Redis so
// multiple instances can share outstanding codes. Expiry is delegated to
// key TTLs.
type RedisVerificationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisVerificationCache creates a Redis-backed verification cache.
func NewRedisVerificationCache(client *redis.Client, ttl time.Duration) *RedisVerificationCache {
	return &RedisVerificationCache{client: client, ttl: ttl}
}

// Issue stores a fresh code under the identifier key, overwriting any
// prior entry.
func (c *RedisVerificationCache) Issue(ctx context.Context, identifier string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	if err := c.client.Set(ctx, codeKeyPrefix+identifier, code, c.ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Verify consumes the entry on an exact match. Backend errors resolve to a
// miss so callers can treat the cache as best-effort.
func (c *RedisVerificationCache) Verify(ctx context.Context, identifier, code string) bool {
	key := codeKeyPrefix + identifier

	stored, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Printf("verification cache: redis get failed: %v", err)
		return false
	}
	if stored != code {
		return false
	}

	c.client.Del(ctx, key)
	return true
}

// Discard unconditionally evicts the entry for identifier.
func (c *RedisVerificationCache) Discard(ctx context.Context, identifier string) {
	if err := c.client.Del(ctx, codeKeyPrefix+identifier).Err(); err != nil {
		log.Printf("verification cache: redis del failed: %v", err)
	}
}

var _ domain.VerificationCache = (*RedisVerificationCache)(nil)
