/*
Package sqlite persists engine output for QA tooling.

PURPOSE:
  The engine itself is pure and needs no storage: configuration is
  declarative and entries are recomputed on demand. What IS worth keeping
  is evidence - generated schedules and coverage validation runs - so
  operators can see when a company's configuration last validated clean
  and diff what was handed to exporters.

KEY TABLES:
  schedule_entries: Generated entries, replaced per (company, team, date)
  validation_runs:  One row per coverage validation, with the full report
                    as JSON for drill-down

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so the background
  sweeper's writes don't block API reads of recent runs.

USAGE:
  store, err := sqlite.New("./data/engine.db")
  defer store.Close()
  store.SaveValidationRun(ctx, run)

SEE ALSO:
  - api/sweeper.go: Writes validation runs on a schedule
  - schedule/coverage.go: Produces the reports being archived
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/skiftappen/shift-engine/schedule"
)

// Store archives engine output in SQLite.
type Store struct {
	db *sql.DB
}

// New opens (and migrates) a store at the given path. Use ":memory:" for
// an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS schedule_entries (
		company_id TEXT NOT NULL,
		team_id    TEXT NOT NULL,
		date       TEXT NOT NULL,
		shift_code TEXT NOT NULL,
		start_at   TEXT,
		end_at     TEXT,
		generated_at TEXT NOT NULL,
		PRIMARY KEY (company_id, team_id, date)
	);

	CREATE TABLE IF NOT EXISTS validation_runs (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		company_id      TEXT NOT NULL,
		from_date       TEXT NOT NULL,
		to_date         TEXT NOT NULL,
		passed          INTEGER NOT NULL,
		violation_count INTEGER NOT NULL,
		report_json     TEXT NOT NULL,
		created_at      TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_validation_runs_company
		ON validation_runs(company_id, created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SCHEDULE ENTRIES
// =============================================================================

// SaveEntries upserts a generated batch. Regenerating a range replaces the
// previous rows: entries are immutable values keyed by (company, team,
// date), so a replacement is by definition identical unless the
// configuration changed.
func (s *Store) SaveEntries(ctx context.Context, entries []schedule.ShiftEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO schedule_entries
			(company_id, team_id, date, shift_code, start_at, end_at, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, e := range entries {
		var startAt, endAt sql.NullString
		if e.Start != nil {
			startAt = sql.NullString{String: e.Start.UTC().Format(time.RFC3339), Valid: true}
		}
		if e.End != nil {
			endAt = sql.NullString{String: e.End.UTC().Format(time.RFC3339), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			string(e.CompanyID), string(e.TeamID), e.Date.String(),
			string(e.Code), startAt, endAt, now,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// CountEntries returns how many entries are archived for a company.
func (s *Store) CountEntries(ctx context.Context, companyID schedule.CompanyID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schedule_entries WHERE company_id = ?`, string(companyID),
	).Scan(&n)
	return n, err
}

// =============================================================================
// VALIDATION RUNS
// =============================================================================

// ValidationRun is one archived coverage validation.
type ValidationRun struct {
	ID             int64     `json:"id"`
	CompanyID      string    `json:"companyId"`
	FromDate       string    `json:"fromDate"`
	ToDate         string    `json:"toDate"`
	Passed         bool      `json:"passed"`
	ViolationCount int       `json:"violationCount"`
	ReportJSON     string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SaveValidationRun archives one coverage validation.
func (s *Store) SaveValidationRun(ctx context.Context, run ValidationRun) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO validation_runs
			(company_id, from_date, to_date, passed, violation_count, report_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.CompanyID, run.FromDate, run.ToDate,
		boolToInt(run.Passed), run.ViolationCount, run.ReportJSON,
		run.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// ListValidationRuns returns the most recent runs, newest first. An empty
// companyID lists runs for all companies.
func (s *Store) ListValidationRuns(ctx context.Context, companyID string, limit int) ([]ValidationRun, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, company_id, from_date, to_date, passed, violation_count, report_json, created_at
		FROM validation_runs`
	args := []any{}
	if companyID != "" {
		query += ` WHERE company_id = ?`
		args = append(args, companyID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []ValidationRun
	for rows.Next() {
		var run ValidationRun
		var passed int
		var createdAt string
		if err := rows.Scan(&run.ID, &run.CompanyID, &run.FromDate, &run.ToDate,
			&passed, &run.ViolationCount, &run.ReportJSON, &createdAt); err != nil {
			return nil, err
		}
		run.Passed = passed != 0
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
