package kv

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used by tests. Expiry is evaluated
// lazily against an injectable clock so TTL behavior can be exercised
// without sleeping.
//
// It honors the same contract as RedisStore, including atomicity of
// SetIfAbsent with respect to other goroutines using the same instance.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memEntry

	// Now supplies the current time; defaults to time.Now.
	Now func() time.Time
}

type memEntry struct {
	value   string
	expires time.Time
}

// NewMemoryStore returns an empty in-memory store using the real clock.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memEntry), Now: time.Now}
}

func (s *MemoryStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Get returns the live value under key, dropping it first if expired.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return "", false
	}
	if !s.now().Before(e.expires) {
		delete(s.entries, key)
		return "", false
	}
	return e.value, true
}

// SetWithTTL stores value under key with the given expiry.
func (s *MemoryStore) SetWithTTL(_ context.Context, key, value string, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memEntry{value: value, expires: s.now().Add(ttl)}
	return true
}

// SetIfAbsent stores value only when no live entry exists under key.
func (s *MemoryStore) SetIfAbsent(_ context.Context, key, value string, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok && s.now().Before(e.expires) {
		return false
	}
	s.entries[key] = memEntry{value: value, expires: s.now().Add(ttl)}
	return true
}

// Delete removes key unconditionally.
func (s *MemoryStore) Delete(_ context.Context, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return true
}

// TTL reports the remaining lifetime of key. Test helper; not part of Store.
func (s *MemoryStore) TTL(key string) (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return 0, false
	}
	rem := e.expires.Sub(s.now())
	if rem <= 0 {
		return 0, false
	}
	return rem, true
}
