/*
sweeper.go - Background coverage validation sweeper

PURPOSE:
  Periodically validates coverage for every registered company over a
  rolling window and archives each report so operators can see when a
  roster drifted out of compliance without polling the API.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Validates from today through today+WindowDays for each company
  - Companies without required coverage pass trivially and are skipped
  - Records validation runs for audit and the /api/validation-runs view

CONFIGURATION:
  - Interval:   How often to sweep (default: 1 hour)
  - WindowDays: Rolling window length (default: 365)
  - Enabled:    Whether the sweeper is active (default: true)

USAGE:
  sweeper := NewCoverageSweeper(store, handler)
  sweeper.Start()
  // ... later
  sweeper.Stop()

SEE ALSO:
  - handlers.go: ValidateCoverage endpoint (on-demand validation)
  - store/sqlite/sqlite.go: SaveValidationRun
*/
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/skiftappen/shift-engine/schedule"
	"github.com/skiftappen/shift-engine/store/sqlite"
)

// CoverageSweeper handles automated coverage validation.
type CoverageSweeper struct {
	Store      *sqlite.Store
	Handler    *Handler
	Interval   time.Duration
	WindowDays int
	Enabled    bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewCoverageSweeper creates a new sweeper.
func NewCoverageSweeper(store *sqlite.Store, handler *Handler) *CoverageSweeper {
	return &CoverageSweeper{
		Store:      store,
		Handler:    handler,
		Interval:   1 * time.Hour,
		WindowDays: 365,
		Enabled:    true,
		stop:       make(chan bool),
	}
}

// Start begins the sweeper.
func (cs *CoverageSweeper) Start() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.Enabled {
		slog.Info("coverage sweeper disabled, not starting")
		return
	}

	cs.ticker = time.NewTicker(cs.Interval)
	cs.wg.Add(1)

	go cs.run()

	slog.Info("coverage sweeper started", "interval", cs.Interval, "window_days", cs.WindowDays)
}

// Stop stops the sweeper.
func (cs *CoverageSweeper) Stop() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.ticker != nil {
		cs.ticker.Stop()
		close(cs.stop)
		cs.wg.Wait()
		slog.Info("coverage sweeper stopped")
	}
}

func (cs *CoverageSweeper) run() {
	defer cs.wg.Done()

	// Run immediately on start
	cs.sweep()

	for {
		select {
		case <-cs.ticker.C:
			cs.sweep()
		case <-cs.stop:
			return
		}
	}
}

func (cs *CoverageSweeper) sweep() {
	ctx := context.Background()
	from := schedule.Today()
	to := from.AddDays(cs.WindowDays - 1)

	checked := 0
	failed := 0

	for _, company := range cs.Handler.Registry.List() {
		if len(company.RequiredCoverage) == 0 {
			continue
		}

		report, err := cs.Handler.Validator.Validate(company.ID, from, to)
		if err != nil {
			slog.Error("coverage sweep failed", "company", company.ID, "error", err)
			continue
		}
		checked++
		if !report.Passed {
			failed++
			slog.Warn("coverage violations found",
				"company", company.ID,
				"violations", report.ViolationCount())
		}

		if cs.Store == nil {
			continue
		}
		reportJSON, err := json.Marshal(report)
		if err != nil {
			slog.Error("failed to marshal coverage report", "company", company.ID, "error", err)
			continue
		}
		run := sqlite.ValidationRun{
			CompanyID:      string(company.ID),
			FromDate:       from.String(),
			ToDate:         to.String(),
			Passed:         report.Passed,
			ViolationCount: report.ViolationCount(),
			ReportJSON:     string(reportJSON),
			CreatedAt:      time.Now().UTC(),
		}
		if err := cs.Store.SaveValidationRun(ctx, run); err != nil {
			slog.Error("failed to archive validation run", "company", company.ID, "error", err)
		}
	}

	slog.Info("coverage sweep complete", "companies_checked", checked, "companies_failing", failed)
}
