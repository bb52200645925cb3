package kv

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisStore adapts a go-redis client to the Store contract. The client is
// constructed once at startup and injected; this type owns no connection
// lifecycle of its own.
//
// All failures (connection refused, timeouts, protocol errors) are logged at
// debug level and reported as sentinel results, per the Store contract.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an already-constructed Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get returns the value under key, or ("", false) on miss or store failure.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Debug().Err(err).Str("key", key).Msg("redis get failed")
		}
		return "", false
	}
	return val, true
}

// SetWithTTL stores value under key with the given expiry.
func (s *RedisStore) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("redis set failed")
		return false
	}
	return true
}

// SetIfAbsent maps to the atomic SET NX EX primitive. A false return means
// the key already exists or the store is unreachable; callers that need to
// distinguish the two cases must choose a policy (the lock layer treats both
// as "not acquired").
func (s *RedisStore) SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	created, err := s.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("redis setnx failed")
		return false
	}
	return created
}

// Delete removes key. Best effort: a failed delete is logged and reported
// as false, never propagated.
func (s *RedisStore) Delete(ctx context.Context, key string) bool {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("redis del failed")
		return false
	}
	return true
}
