/*
cache.go - Memoization interface for computed schedule ranges

PURPOSE:
  The calculator is deterministic and idempotent, so caching is purely a
  performance optimization: cached values for the same key are always
  identical, last-writer-wins is safe, and the cache can be cleared or
  bypassed with no behavioral change.

KEY:
  (company, team, from, to). No partial-range reuse; a different range is
  a different key.

IMPLEMENTATIONS:
  - cache/memory.go: In-process map with TTL eviction
  - cache/redis.go:  Redis-backed with native TTL, for multi-instance
    deployments

SEE ALSO:
  - calculator.go: The computation being memoized
*/
package schedule

import (
	"context"
	"fmt"
)

// CacheKey identifies one memoized range computation.
type CacheKey struct {
	CompanyID CompanyID
	TeamID    TeamID
	From      Day
	To        Day
}

func (k CacheKey) String() string {
	return fmt.Sprintf("schedule:%s:%s:%s:%s", k.CompanyID, k.TeamID, k.From, k.To)
}

// Cache memoizes computed entry ranges. Implementations must support
// concurrent readers and writers; last-writer-wins is acceptable.
type Cache interface {
	// GetOrCompute returns the cached entries for key, or runs compute,
	// stores its result and returns it. A failing compute is never cached.
	GetOrCompute(ctx context.Context, key CacheKey, compute func() ([]ShiftEntry, error)) ([]ShiftEntry, error)

	// Invalidate drops every cached range belonging to the company.
	Invalidate(ctx context.Context, companyID CompanyID) error
}

// NopCache bypasses memoization entirely; the compute function always runs.
type NopCache struct{}

func (NopCache) GetOrCompute(_ context.Context, _ CacheKey, compute func() ([]ShiftEntry, error)) ([]ShiftEntry, error) {
	return compute()
}

func (NopCache) Invalidate(context.Context, CompanyID) error { return nil }
