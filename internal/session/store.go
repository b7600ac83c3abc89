package session

import (
	"context"
	"time"

	"sakhigps/internal/services"
)

// Store persists session snapshots between restarts
type Store interface {
	Save(ctx context.Context, id string, snap Snapshot) error
	Load(ctx context.Context, id string) (Snapshot, bool, error)
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps snapshots in Redis with an expiry
type RedisStore struct {
	cache *services.RedisCache
	ttl   time.Duration
}

// NewRedisStore creates a store over cache. Snapshots expire after ttl.
func NewRedisStore(cache *services.RedisCache, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: cache, ttl: ttl}
}

func key(id string) string {
	return "session:" + id
}

func (r *RedisStore) Save(ctx context.Context, id string, snap Snapshot) error {
	return r.cache.Set(ctx, key(id), snap, r.ttl)
}

func (r *RedisStore) Load(ctx context.Context, id string) (Snapshot, bool, error) {
	var snap Snapshot
	err := r.cache.Get(ctx, key(id), &snap)
	if services.IsMiss(err) {
		return snap, false, nil
	}
	if err != nil {
		return snap, false, err
	}
	return snap, true, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.cache.Delete(ctx, key(id))
}
