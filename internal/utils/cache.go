package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}

// RedisCache adapts the helpers above to a small JSON cache type
type RedisCache struct {
	rdb    *redis.Client // Redis client
	prefix string        // Key namespace
}

// NewRedisCache returns a cache storing keys under prefix
func NewRedisCache(rdb *redis.Client, prefix string) *RedisCache {
	return &RedisCache{rdb: rdb, prefix: prefix}
}

// Get loads a cached JSON value into dest
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	return GetCache(ctx, c.rdb, c.prefix+key, dest)
}

// Set stores value as JSON for ttl
func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return SetCache(ctx, c.rdb, c.prefix+key, value, ttl)
}

// Delete removes a cached key
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return DeleteCache(ctx, c.rdb, c.prefix+key)
}
