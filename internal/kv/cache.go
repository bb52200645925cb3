package kv

import (
	"context"
	"encoding/json"
	"time"
)

// Cache expiry bounds for day-scoped entries. Entries never live less than
// MinCacheTTL (a near-midnight write must not produce an instantly-expiring
// key that every concurrent reader misses) and never more than MaxCacheTTL
// (a date-math mistake must not pin a stale payload forever).
const (
	MinCacheTTL = 60 * time.Second
	MaxCacheTTL = 24 * time.Hour
)

// GetJSON reads the value under key and unmarshals it into dst. It returns
// false on a miss, a store failure, or an undecodable payload; cache readers
// treat all three identically (fetch upstream again).
func GetJSON(ctx context.Context, s Store, key string, dst any) bool {
	raw, ok := s.Get(ctx, key)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(raw), dst) == nil
}

// SetJSON marshals v and stores it under key with the given expiry.
// Best effort: a failed write only means the next reader pays the upstream
// fetch again.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return s.SetWithTTL(ctx, key, string(raw), ttl)
}

// TTLUntilMidnight returns the time remaining until the next local midnight
// after now. Quota keys use this so a counter always expires at the day
// boundary regardless of when it was last written.
func TTLUntilMidnight(now time.Time, loc *time.Location) time.Duration {
	now = now.In(loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	return next.Sub(now)
}

// TTLUntilEndOfDay returns the time from now until the end (local midnight)
// of the given calendar day, clamped to [MinCacheTTL, MaxCacheTTL].
// Day-scoped cache entries expire at a domain-meaningful boundary, not
// wall-clock-now plus a fixed interval. The day's year/month/day fields are
// read as-is and interpreted in loc; the day value's own zone is ignored so
// a date parsed from "2006-01-02" (which lands in UTC) names the same
// calendar day in any configured timezone.
func TTLUntilEndOfDay(day, now time.Time, loc *time.Location) time.Duration {
	end := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	ttl := end.Sub(now.In(loc))
	if ttl < MinCacheTTL {
		return MinCacheTTL
	}
	if ttl > MaxCacheTTL {
		return MaxCacheTTL
	}
	return ttl
}
