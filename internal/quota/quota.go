// Package quota implements per-identity, per-calendar-day usage counters on
// top of the shared key-value store.
//
// Counters are partitioned by identity (user id or client IP) and by scope
// ("analysis" generations vs. "agent" runs are independent budgets). The day
// component is baked into the key and the TTL is re-aligned to
// seconds-until-next-local-midnight on every write, so a counter always
// expires at the local day boundary and a new day starts from zero without
// any sweeper.
//
// Failure policy: reads fail OPEN (an unreachable store reads as "no usage
// yet") because under-counting is the lesser harm than denying everyone.
// The lock layer makes the opposite call; see package lock.
package quota

import (
	"context"
	"strconv"
	"time"

	"github.com/mlipka/go-matchday-backend/internal/domain"
	"github.com/mlipka/go-matchday-backend/internal/kv"
)

// Scope names an independent daily budget.
type Scope string

const (
	// ScopeAnalysis counts match-analysis generations.
	ScopeAnalysis Scope = "analysis"
	// ScopeAgent counts agent report runs.
	ScopeAgent Scope = "agent"
)

// Counter tracks daily usage per identity and scope.
//
// Loc determines where "midnight" is; it must match the location used by the
// cache layer so quota resets and cache expiries agree on the day boundary.
// Now is an injectable clock for tests and defaults to time.Now.
type Counter struct {
	Store kv.Store
	Loc   *time.Location
	Now   func() time.Time
}

// NewCounter builds a Counter over the given store and location.
func NewCounter(store kv.Store, loc *time.Location) *Counter {
	return &Counter{Store: store, Loc: loc, Now: time.Now}
}

func (c *Counter) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Counter) loc() *time.Location {
	if c.Loc != nil {
		return c.Loc
	}
	return time.Local
}

// key is "quota:<scope>:<identity-key>:<YYYY-MM-DD>". The calendar day in the
// key is belt-and-braces on top of the TTL: even if an expiry misfires, a new
// day can never read yesterday's counter.
func (c *Counter) key(id domain.Identity, scope Scope, day time.Time) string {
	return "quota:" + string(scope) + ":" + id.Key() + ":" + day.In(c.loc()).Format("2006-01-02")
}

// Count returns today's usage for the identity and scope. Absent keys,
// unreachable stores, and unparseable values all read as 0 (fail open).
func (c *Counter) Count(ctx context.Context, id domain.Identity, scope Scope) int {
	raw, ok := c.Store.Get(ctx, c.key(id, scope, c.now()))
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Increment adds one to today's counter, re-aligning its expiry to the rest
// of the current local day. Callers invoke it exactly once per successfully
// completed operation, after the operation succeeded; speculative increments
// would charge users for failures.
//
// The read-modify-write is not atomic on the store. On the analysis path
// the caller holds the per-identity lock across the whole
// generate-then-increment sequence, so the only writer racing this key is
// the identity itself, serialized by the lock. Agent runs increment without
// a lock; two concurrent runs by one identity can lose an update there,
// which only ever undercounts against a one-per-day budget.
func (c *Counter) Increment(ctx context.Context, id domain.Identity, scope Scope) {
	now := c.now()
	next := c.Count(ctx, id, scope) + 1
	c.Store.SetWithTTL(ctx, c.key(id, scope, now), strconv.Itoa(next), kv.TTLUntilMidnight(now, c.loc()))
}
