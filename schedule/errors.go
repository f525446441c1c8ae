/*
errors.go - Centralized error types for the schedule engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Outer layers (API, exporters) should wrap these with transport context.

ERROR CATEGORIES:
  1. Configuration errors - Malformed patterns/companies, fail fast at load
  2. Not-found errors     - Unknown company, team, pattern or shift code
  3. Range errors         - Invalid or oversized date ranges

COVERAGE VIOLATIONS ARE NOT ERRORS:
  A schedule that fails coverage validation is reported as data inside a
  ValidationReport, never as a Go error. The engine also never substitutes
  a default shift code on failure - an unknown team raises ErrTeamNotFound
  rather than silently returning an off day.

USAGE:
  if errors.Is(err, schedule.ErrCompanyNotFound) { ... }

SEE ALSO:
  - coverage.go: Violations-as-data reporting
  - registry.go: Configuration validation
*/
package schedule

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrCompanyNotFound is returned when a company ID is not registered.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrTeamNotFound is returned when a team ID is not part of the company.
	ErrTeamNotFound = errors.New("team not found")

	// ErrPatternNotFound is returned when a pattern ID is not in the catalog.
	ErrPatternNotFound = errors.New("pattern not found")

	// ErrCodeNotFound is returned when a shift code does not resolve in the
	// time table.
	ErrCodeNotFound = errors.New("shift code not found in time table")

	// ErrInvalidRange is returned for ranges with from > to or spans beyond
	// the configured maximum. Oversized ranges must be chunked by the
	// caller, never silently truncated by the engine.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrConfiguration is returned for malformed declarative configuration.
	// It always fails fast at registration time, never at query time.
	ErrConfiguration = errors.New("invalid configuration")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConfigurationError describes a declarative configuration defect detected
// at registration time.
type ConfigurationError struct {
	Scope  string // "pattern", "company", "timetable"
	ID     string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s configuration %q: %s", e.Scope, e.ID, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// RangeError describes a rejected date range.
type RangeError struct {
	Range  DateRange
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range %s: %s", e.Range, e.Reason)
}

func (e *RangeError) Unwrap() error { return ErrInvalidRange }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing company, team,
// pattern or shift code.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCompanyNotFound) ||
		errors.Is(err, ErrTeamNotFound) ||
		errors.Is(err, ErrPatternNotFound) ||
		errors.Is(err, ErrCodeNotFound)
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return IsNotFound(err) || errors.Is(err, ErrInvalidRange)
}
