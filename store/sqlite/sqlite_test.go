package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/skiftappen/shift-engine/schedule"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveEntries_UpsertByKey(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	date := schedule.NewDay(2025, time.April, 1)
	start := date.At(6 * 60)
	end := date.At(14 * 60)
	entries := []schedule.ShiftEntry{
		{CompanyID: "c", TeamID: "lag-1", Date: date, Code: "F", Start: &start, End: &end},
		{CompanyID: "c", TeamID: "lag-1", Date: date.AddDays(1), Code: "L"},
		{CompanyID: "c", TeamID: "lag-2", Date: date, Code: "E", Start: &start, End: &end},
	}
	if err := store.SaveEntries(ctx, entries); err != nil {
		t.Fatalf("SaveEntries: %v", err)
	}

	n, err := store.CountEntries(ctx, "c")
	if err != nil {
		t.Fatalf("CountEntries: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}

	// Re-archiving the same range replaces rows instead of duplicating.
	if err := store.SaveEntries(ctx, entries); err != nil {
		t.Fatalf("SaveEntries again: %v", err)
	}
	n, _ = store.CountEntries(ctx, "c")
	if n != 3 {
		t.Errorf("count after re-save = %d, want 3", n)
	}

	// Other companies are counted separately.
	n, _ = store.CountEntries(ctx, "other")
	if n != 0 {
		t.Errorf("count for unknown company = %d, want 0", n)
	}
}

func TestSaveEntries_Empty(t *testing.T) {
	store := newTestStore(t)
	if err := store.SaveEntries(context.Background(), nil); err != nil {
		t.Fatalf("SaveEntries(nil): %v", err)
	}
}

func TestValidationRuns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	runs := []ValidationRun{
		{CompanyID: "a", FromDate: "2025-01-01", ToDate: "2025-12-31", Passed: true, ViolationCount: 0, ReportJSON: "{}", CreatedAt: base},
		{CompanyID: "b", FromDate: "2025-01-01", ToDate: "2025-12-31", Passed: false, ViolationCount: 12, ReportJSON: `{"passed":false}`, CreatedAt: base.Add(time.Hour)},
		{CompanyID: "a", FromDate: "2025-06-01", ToDate: "2026-05-31", Passed: true, ViolationCount: 0, ReportJSON: "{}", CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, run := range runs {
		if err := store.SaveValidationRun(ctx, run); err != nil {
			t.Fatalf("SaveValidationRun: %v", err)
		}
	}

	// All companies, newest first.
	got, err := store.ListValidationRuns(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListValidationRuns: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d runs, want 3", len(got))
	}
	if got[0].FromDate != "2025-06-01" || got[2].CompanyID != "a" {
		t.Errorf("runs not ordered newest first: %+v", got)
	}
	if got[1].CompanyID != "b" || got[1].Passed || got[1].ViolationCount != 12 {
		t.Errorf("failed run round-tripped wrong: %+v", got[1])
	}
	if !got[0].CreatedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("created_at = %v, want %v", got[0].CreatedAt, base.Add(2*time.Hour))
	}

	// Filtered by company.
	got, err = store.ListValidationRuns(ctx, "a", 0)
	if err != nil {
		t.Fatalf("ListValidationRuns(a): %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d runs for company a, want 2", len(got))
	}
	for _, run := range got {
		if run.CompanyID != "a" {
			t.Errorf("filter leaked company %q", run.CompanyID)
		}
	}

	// Limited.
	got, err = store.ListValidationRuns(ctx, "", 1)
	if err != nil {
		t.Fatalf("ListValidationRuns(limit 1): %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d runs with limit 1, want 1", len(got))
	}
}
