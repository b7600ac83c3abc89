package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "sakhi:"

// RedisCache stores JSON values in Redis under a common key prefix
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to redisURL and pings it
func NewRedisCache(ctx context.Context, redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	log.Println("Redis connection established")
	return &RedisCache{client: client}, nil
}

// NewRedisCacheFromClient wraps an existing client
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Set stores a value in cache with expiration
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, keyPrefix+key, data, expiration).Err()
}

// Get retrieves a value from cache. A missing key returns redis.Nil.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// GetOrSet retrieves a value from cache, or calls fn to build and cache it
func GetOrSet[T any](ctx context.Context, c *RedisCache, key string, expiration time.Duration, fn func() (T, error)) (T, error) {
	var result T

	if c == nil {
		return fn()
	}

	if err := c.Get(ctx, key, &result); err == nil {
		return result, nil
	}

	result, err := fn()
	if err != nil {
		return result, err
	}

	if err := c.Set(ctx, key, result, expiration); err != nil {
		log.Printf("cache set %s: %v", key, err)
	}
	return result, nil
}

// Delete removes a key from cache
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, keyPrefix+key).Err()
}

// Touch extends the expiration of a key
func (c *RedisCache) Touch(ctx context.Context, key string, expiration time.Duration) error {
	return c.client.Expire(ctx, keyPrefix+key, expiration).Err()
}

// IsMiss reports whether err means the key was absent
func IsMiss(err error) bool {
	return err == redis.Nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
