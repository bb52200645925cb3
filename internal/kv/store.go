// Package kv provides the shared key-value store used for response caching,
// daily quota counters, and per-identity locks.
//
// The Store contract is deliberately non-throwing: the backing store is an
// availability optimization and a coordination point, not a system of record,
// so adapters convert every connectivity failure into a sentinel "no value" /
// "failed" result instead of an error. Callers then apply an explicit
// fail-open or fail-closed policy (quota reads fail open, lock acquisition
// fails closed) rather than inheriting accidental behavior from error
// propagation.
package kv

import (
	"context"
	"time"
)

// Store is the minimal key-value surface the cache, quota, and lock layers
// are built on. Implementations must be safe for concurrent use and must
// never return an error: a failed operation reports ("", false) or false.
type Store interface {
	// Get returns the value stored under key, or ("", false) when the key is
	// absent, expired, or the store is unreachable.
	Get(ctx context.Context, key string) (string, bool)

	// SetWithTTL stores value under key with the given expiry. A non-positive
	// ttl is rejected. Returns false when the write did not happen.
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) bool

	// SetIfAbsent atomically stores value under key with the given expiry,
	// only if the key does not already exist. Returns true only when this
	// call created the key; false when the key was already present or the
	// store is unreachable.
	SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) bool

	// Delete removes key. Returns false when the delete could not be issued;
	// deleting an absent key is not a failure.
	Delete(ctx context.Context, key string) bool
}
