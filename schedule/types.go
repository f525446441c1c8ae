/*
Package schedule provides the core rotating shift schedule engine.

PURPOSE:
  This package contains the pure computation core for industrial shift
  rosters: given a company's rotation pattern and a team's phase offset
  within it, deterministically compute which shift the team works on any
  calendar date, and validate that a company's full team set covers every
  day with exactly the required shifts.

KEY CONCEPTS IN THIS FILE (types.go):
  - ShiftCode: A short tag identifying a shift type (F/E/N/D/L)
  - ShiftEntry: An immutable computed result for one (company, team, date)
  - Company/Team/Pattern IDs: Type-safe identifiers

DESIGN PRINCIPLES:
  1. Immutability: ShiftEntry values are computed, never edited in place
  2. Determinism: The same inputs always produce the same entry
  3. One shared reference date: Team coordination is pure integer phase
     arithmetic - never per-team hand-maintained base dates
  4. Data over code: Every company difference is configuration, not a fork

USAGE:
  registry := schedule.NewRegistry(catalog, timetable)
  calc := schedule.NewCalculator(registry)
  entry, err := calc.ShiftFor("ssab-oxelosund", "lag-1", schedule.NewDay(2025, time.January, 10))

SEE ALSO:
  - timetable.go: Shift-code to clock-time resolution
  - pattern.go:   Rotation pattern catalog
  - registry.go:  Company and team configuration
  - calculator.go: The date -> shift computation
  - coverage.go:  Daily coverage validation
*/
package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type CompanyID string
type TeamID string
type PatternID string

// =============================================================================
// SHIFT CODE - Closed enumerated tag, never free text
// =============================================================================

// ShiftCode identifies a shift type. The core set below matches the codes
// used on Swedish industrial rosters; companies may register additional
// codes in their TimeTable, but every code a pattern uses must resolve there.
type ShiftCode string

const (
	CodeMorning   ShiftCode = "F" // Förmiddag, typically 06:00-14:00
	CodeAfternoon ShiftCode = "E" // Eftermiddag, typically 14:00-22:00
	CodeNight     ShiftCode = "N" // Natt, typically 22:00-06:00 next day
	CodeDay12h    ShiftCode = "D" // 12-hour day shift, typically 06:00-18:00
	CodeNight12h  ShiftCode = "K" // 12-hour night shift, typically 18:00-06:00
	CodeOff       ShiftCode = "L" // Ledig (off duty)
)

// IsOff reports whether the code represents no scheduled work.
func (c ShiftCode) IsOff() bool { return c == CodeOff }

// =============================================================================
// SHIFT ENTRY - Immutable computed output
// =============================================================================

// ShiftEntry is the result of resolving one (company, team, date) triple.
// Start and End are nil for off days. Entries are values: a changed
// schedule means newly generated entries, never an in-place edit.
type ShiftEntry struct {
	CompanyID CompanyID
	TeamID    TeamID
	Date      Day
	Code      ShiftCode
	Start     *time.Time
	End       *time.Time
}

// IsWorking reports whether the entry represents scheduled work.
func (e ShiftEntry) IsWorking() bool { return !e.Code.IsOff() }

// Hours returns the worked duration of the entry in hours (zero for off days).
func (e ShiftEntry) Hours() decimal.Decimal {
	if e.Start == nil || e.End == nil {
		return decimal.Zero
	}
	minutes := e.End.Sub(*e.Start).Minutes()
	return decimal.NewFromFloat(minutes).Div(decimal.NewFromInt(60))
}

// =============================================================================
// COVERAGE RULE - Required multiset of working codes per calendar day
// =============================================================================

// Coverage is the multiset of shift codes a company must have staffed on
// every calendar day, e.g. {F:1, E:1, N:1} for a continuously run site.
type Coverage map[ShiftCode]int

// SingleOccupancy reports whether every required code must be staffed by
// exactly one team. Companies with single-occupancy coverage additionally
// require pairwise distinct team phase offsets.
func (c Coverage) SingleOccupancy() bool {
	if len(c) == 0 {
		return false
	}
	for _, n := range c {
		if n != 1 {
			return false
		}
	}
	return true
}

// Total returns the number of team-shifts required per day.
func (c Coverage) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Clone returns an independent copy of the coverage rule.
func (c Coverage) Clone() Coverage {
	out := make(Coverage, len(c))
	for code, n := range c {
		out[code] = n
	}
	return out
}
