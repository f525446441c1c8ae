/*
redis.go - Redis-backed schedule cache

PURPOSE:
  Shares memoized ranges between engine instances using Redis native TTL
  expiry. Entries are stored as JSON under keys shaped
  "schedule:<company>:<team>:<from>:<to>", so company-wide invalidation is
  a prefix scan.

  Cache misses (including Redis being unreachable) degrade to recomputing;
  the underlying calculation is deterministic, so a cold or broken cache
  is a performance problem, never a correctness one. Write failures are
  surfaced to the caller alongside the computed result's success - the
  computed entries are still returned.

SEE ALSO:
  - memory.go: Single-process alternative
*/
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skiftappen/shift-engine/schedule"
)

// Redis is a Cache backed by a Redis instance.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a redis cache with the given TTL.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) GetOrCompute(ctx context.Context, key schedule.CacheKey, compute func() ([]schedule.ShiftEntry, error)) ([]schedule.ShiftEntry, error) {
	raw, err := r.client.Get(ctx, key.String()).Bytes()
	if err == nil {
		var entries []schedule.ShiftEntry
		if err := json.Unmarshal(raw, &entries); err == nil {
			return entries, nil
		}
		// Undecodable payload: treat as a miss and overwrite below.
	}

	entries, err := compute()
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(entries); err == nil {
		// Best effort: a failed SET leaves the cache cold, nothing more.
		r.client.Set(ctx, key.String(), raw, r.ttl)
	}
	return entries, nil
}

func (r *Redis) Invalidate(ctx context.Context, companyID schedule.CompanyID) error {
	pattern := "schedule:" + string(companyID) + ":*"
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
