// Package cache provides Cache implementations.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/skiftappen/shift-engine/schedule"
)

// =============================================================================
// MEMORY CACHE - In-process implementation with TTL eviction
// =============================================================================

type entry struct {
	entries   []schedule.ShiftEntry
	expiresAt time.Time
}

// Memory is a TTL-evicting in-process cache. Safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[schedule.CacheKey]entry
	now  func() time.Time
}

// NewMemory creates a memory cache with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:  ttl,
		data: make(map[schedule.CacheKey]entry),
		now:  time.Now,
	}
}

func (m *Memory) GetOrCompute(_ context.Context, key schedule.CacheKey, compute func() ([]schedule.ShiftEntry, error)) ([]schedule.ShiftEntry, error) {
	m.mu.RLock()
	e, ok := m.data[key]
	m.mu.RUnlock()
	if ok && m.now().Before(e.expiresAt) {
		return e.entries, nil
	}

	// Recompute outside the lock. Concurrent misses may compute the same
	// key twice; the results are identical, so last-writer-wins is fine.
	entries, err := compute()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.data[key] = entry{entries: entries, expiresAt: m.now().Add(m.ttl)}
	m.evictExpiredLocked()
	m.mu.Unlock()
	return entries, nil
}

func (m *Memory) Invalidate(_ context.Context, companyID schedule.CompanyID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.data {
		if key.CompanyID == companyID {
			delete(m.data, key)
		}
	}
	return nil
}

// Len returns the number of live cached ranges.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, e := range m.data {
		if m.now().Before(e.expiresAt) {
			n++
		}
	}
	return n
}

// evictExpiredLocked drops expired entries opportunistically on writes,
// keeping the map bounded without a background goroutine.
func (m *Memory) evictExpiredLocked() {
	now := m.now()
	for key, e := range m.data {
		if !now.Before(e.expiresAt) {
			delete(m.data, key)
		}
	}
}
