package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/skiftappen/shift-engine/schedule"
)

func testKey(company schedule.CompanyID, team schedule.TeamID) schedule.CacheKey {
	from := schedule.NewDay(2025, time.January, 1)
	return schedule.CacheKey{CompanyID: company, TeamID: team, From: from, To: from.AddDays(6)}
}

func testEntries(team schedule.TeamID) []schedule.ShiftEntry {
	return []schedule.ShiftEntry{{
		CompanyID: "c", TeamID: team,
		Date: schedule.NewDay(2025, time.January, 1), Code: "F",
	}}
}

func TestMemory_GetOrCompute(t *testing.T) {
	m := NewMemory(time.Hour)
	ctx := context.Background()
	key := testKey("c", "t1")

	calls := 0
	compute := func() ([]schedule.ShiftEntry, error) {
		calls++
		return testEntries("t1"), nil
	}

	first, err := m.GetOrCompute(ctx, key, compute)
	if err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	second, err := m.GetOrCompute(ctx, key, compute)
	if err != nil {
		t.Fatalf("GetOrCompute: %v", err)
	}
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].TeamID != "t1" {
		t.Errorf("unexpected cached entries: %v / %v", first, second)
	}
}

func TestMemory_FailedComputeNotCached(t *testing.T) {
	m := NewMemory(time.Hour)
	ctx := context.Background()
	key := testKey("c", "t1")

	boom := errors.New("boom")
	if _, err := m.GetOrCompute(ctx, key, func() ([]schedule.ShiftEntry, error) {
		return nil, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	// The next call must run compute again and succeed.
	entries, err := m.GetOrCompute(ctx, key, func() ([]schedule.ShiftEntry, error) {
		return testEntries("t1"), nil
	})
	if err != nil {
		t.Fatalf("GetOrCompute after failure: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries, want 1", len(entries))
	}
}

func TestMemory_TTLExpiry(t *testing.T) {
	m := NewMemory(time.Hour)
	now := time.Unix(1700000000, 0)
	m.now = func() time.Time { return now }

	ctx := context.Background()
	key := testKey("c", "t1")

	calls := 0
	compute := func() ([]schedule.ShiftEntry, error) {
		calls++
		return testEntries("t1"), nil
	}

	m.GetOrCompute(ctx, key, compute)
	now = now.Add(59 * time.Minute)
	m.GetOrCompute(ctx, key, compute)
	if calls != 1 {
		t.Fatalf("compute ran %d times before TTL, want 1", calls)
	}

	now = now.Add(2 * time.Minute)
	m.GetOrCompute(ctx, key, compute)
	if calls != 2 {
		t.Errorf("compute ran %d times after TTL, want 2", calls)
	}
}

func TestMemory_InvalidateByCompany(t *testing.T) {
	m := NewMemory(time.Hour)
	ctx := context.Background()

	seed := func(company schedule.CompanyID, team schedule.TeamID) {
		m.GetOrCompute(ctx, testKey(company, team), func() ([]schedule.ShiftEntry, error) {
			return testEntries(team), nil
		})
	}
	seed("a", "t1")
	seed("a", "t2")
	seed("b", "t1")
	if m.Len() != 3 {
		t.Fatalf("seeded %d ranges, want 3", m.Len())
	}

	if err := m.Invalidate(ctx, "a"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("after invalidating company a, %d ranges remain, want 1", m.Len())
	}

	// Company b was untouched: no recompute.
	calls := 0
	m.GetOrCompute(ctx, testKey("b", "t1"), func() ([]schedule.ShiftEntry, error) {
		calls++
		return nil, nil
	})
	if calls != 0 {
		t.Error("invalidating company a evicted company b's range")
	}
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	m := NewMemory(time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			teams := []schedule.TeamID{"t1", "t2", "t3"}
			for j := 0; j < 200; j++ {
				team := teams[j%len(teams)]
				m.GetOrCompute(ctx, testKey("c", team), func() ([]schedule.ShiftEntry, error) {
					return testEntries(team), nil
				})
				if j%50 == 0 && n == 0 {
					m.Invalidate(ctx, "c")
				}
			}
		}(i)
	}
	wg.Wait()
	// No assertions beyond the race detector: identical values make
	// last-writer-wins correct by construction.
}
