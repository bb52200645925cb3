// Package lock implements a coarse per-identity advisory lock on the shared
// key-value store, guarding the expensive generation path.
//
// The lock is per identity, not per fixture: the scarce resource being
// protected is upstream generation cost, so one identity gets at most one
// outstanding generation at a time, even across different fixtures.
//
// The lease is a liveness safety net. If a holder crashes or a handler hangs
// past the lease, the key self-expires and the identity is unblocked without
// manual intervention. A stale Release after lease expiry is harmless: the
// key is already gone.
//
// Failure policy: acquisition fails CLOSED. When the store is unreachable
// there is no coordination, and allowing unlimited concurrent generations in
// that state is worse than denying; the quota layer makes the opposite call
// (see package quota).
package lock

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/mlipka/go-matchday-backend/internal/domain"
	"github.com/mlipka/go-matchday-backend/internal/kv"
)

// Locker acquires per-identity leases on the shared store.
type Locker struct {
	Store kv.Store

	// Now is an injectable clock for tests; defaults to time.Now.
	Now func() time.Time
}

// NewLocker builds a Locker over the given store.
func NewLocker(store kv.Store) *Locker {
	return &Locker{Store: store, Now: time.Now}
}

func (l *Locker) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func key(id domain.Identity) string {
	return "lock:analysis:" + id.Key()
}

// Acquire tries to take the lock for id with the given lease. It returns
// (guard, true) on success. A false return means another lease is already
// held for this identity, or the store is unreachable (fail closed); the
// caller responds "generation already in progress" either way and must not
// retry automatically.
//
// The returned Guard is the single release point for all exit paths: callers
// defer Release immediately after a successful Acquire, and Release is
// idempotent, so early returns, errors, and panics all converge on exactly
// one delete.
func (l *Locker) Acquire(ctx context.Context, id domain.Identity, lease time.Duration) (*Guard, bool) {
	k := key(id)
	// Value records when the lease was taken; useful when inspecting the
	// store by hand, never read programmatically.
	if !l.Store.SetIfAbsent(ctx, k, strconv.FormatInt(l.now().Unix(), 10), lease) {
		return nil, false
	}
	return &Guard{store: l.Store, key: k}, true
}

// Guard represents one held lease. The zero value is not usable; Guards are
// produced only by Locker.Acquire.
type Guard struct {
	store kv.Store
	key   string
	once  sync.Once
}

// Release deletes the lock key. It is unconditional and best-effort (a
// failed delete leaves the lease to expire on its own) and idempotent:
// duplicate calls are absorbed, so it is safe both to defer and to call
// eagerly on a specific path.
func (g *Guard) Release(ctx context.Context) {
	g.once.Do(func() {
		g.store.Delete(ctx, g.key)
	})
}
