package data

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisCache implements Cache backed by Redis, for deployments where
// multiple advisor processes share one provider quota. TTL eviction is
// delegated to Redis itself.
type RedisCache struct {
	client    *redis.Client
	ctx       context.Context
	keyPrefix string
}

// NewRedisCache creates a Redis-backed cache.
func NewRedisCache(addr, password string, db int) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	return &RedisCache{
		client:    client,
		ctx:       context.Background(),
		keyPrefix: "dca-advisor:provider:",
	}
}

// Get retrieves a value from Redis. A connection error counts as a
// miss so the caller falls through to the live fetch.
func (c *RedisCache) Get(key string) ([]byte, bool) {
	val, err := c.client.Get(c.ctx, c.keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Msg("redis cache read failed, treating as miss")
		return nil, false
	}
	return val, true
}

// Set stores a value with the given TTL. Write failures are logged and
// swallowed; the cache is best-effort.
func (c *RedisCache) Set(key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(c.ctx, c.keyPrefix+key, value, ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("redis cache write failed")
	}
}

// Clear removes all entries under the cache prefix.
func (c *RedisCache) Clear() {
	iter := c.client.Scan(c.ctx, 0, c.keyPrefix+"*", 0).Iterator()
	for iter.Next(c.ctx) {
		c.client.Del(c.ctx, iter.Val())
	}
}

// Size returns the number of entries under the cache prefix.
func (c *RedisCache) Size() int {
	count := 0
	iter := c.client.Scan(c.ctx, 0, c.keyPrefix+"*", 0).Iterator()
	for iter.Next(c.ctx) {
		count++
	}
	return count
}

// Ping verifies connectivity at startup.
func (c *RedisCache) Ping() error {
	return c.client.Ping(c.ctx).Err()
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
