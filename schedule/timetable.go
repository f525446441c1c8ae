/*
timetable.go - Shift-code to clock-time resolution

PURPOSE:
  The single place where a shift code becomes concrete times, a duration,
  a display name and a color. No other component hardcodes shift
  semantics; exporters and the API all resolve codes through here.

DESIGN:
  - Start/End are minute-of-day offsets from the shift date's midnight.
  - Night-type shifts have End < Start, signaling rollover into the next
    calendar day. Materialized end timestamps land on date+1.
  - Duration is always DERIVED from the offsets, never stored on its own,
    so the two can never drift apart.

SEE ALSO:
  - pattern.go: Validates pattern codes against the table at registration
  - calculator.go: Materializes absolute timestamps from offsets
*/
package schedule

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SHIFT DEFINITION
// =============================================================================

// ShiftDef maps one shift code to its clock semantics and display metadata.
type ShiftDef struct {
	Code        ShiftCode
	StartMinute int // minutes from midnight of the shift's date
	EndMinute   int // minutes from midnight; < StartMinute means next day
	Name        string
	Color       string // hex color used by consuming UIs
}

// RollsOver reports whether the shift ends on the following calendar day.
func (d ShiftDef) RollsOver() bool {
	return !d.Off() && d.EndMinute <= d.StartMinute
}

// Off reports whether the definition describes an off day.
func (d ShiftDef) Off() bool { return d.Code.IsOff() }

// DurationHours returns the derived shift length in hours.
func (d ShiftDef) DurationHours() decimal.Decimal {
	if d.Off() {
		return decimal.Zero
	}
	minutes := d.EndMinute - d.StartMinute
	if d.RollsOver() {
		minutes += 24 * 60
	}
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60))
}

// =============================================================================
// TIME TABLE
// =============================================================================

// TimeTable resolves shift codes to definitions. It is built once from
// declarative data and immutable afterwards; lookups are safe for
// concurrent use.
type TimeTable struct {
	defs map[ShiftCode]ShiftDef
}

// NewTimeTable builds a table from the given definitions. Duplicate codes
// and off definitions with clock times are configuration errors.
func NewTimeTable(defs []ShiftDef) (*TimeTable, error) {
	tt := &TimeTable{defs: make(map[ShiftCode]ShiftDef, len(defs))}
	for _, d := range defs {
		if d.Code == "" {
			return nil, &ConfigurationError{Scope: "timetable", ID: string(d.Code), Reason: "empty shift code"}
		}
		if _, dup := tt.defs[d.Code]; dup {
			return nil, &ConfigurationError{Scope: "timetable", ID: string(d.Code), Reason: "duplicate shift code"}
		}
		if d.StartMinute < 0 || d.StartMinute >= 24*60 || d.EndMinute < 0 || d.EndMinute >= 24*60 {
			return nil, &ConfigurationError{Scope: "timetable", ID: string(d.Code), Reason: "start/end must be within 00:00-23:59"}
		}
		if d.Off() && (d.StartMinute != 0 || d.EndMinute != 0) {
			return nil, &ConfigurationError{Scope: "timetable", ID: string(d.Code), Reason: "off code must not carry clock times"}
		}
		tt.defs[d.Code] = d
	}
	if _, ok := tt.defs[CodeOff]; !ok {
		return nil, &ConfigurationError{Scope: "timetable", ID: string(CodeOff), Reason: "off code is required"}
	}
	return tt, nil
}

// DefaultTimeTable returns the standard Swedish industrial shift table.
// Companies with other clock times register their own table via
// configuration.
func DefaultTimeTable() *TimeTable {
	tt, err := NewTimeTable([]ShiftDef{
		{Code: CodeMorning, StartMinute: 6 * 60, EndMinute: 14 * 60, Name: "Förmiddag", Color: "#4CAF50"},
		{Code: CodeAfternoon, StartMinute: 14 * 60, EndMinute: 22 * 60, Name: "Eftermiddag", Color: "#2196F3"},
		{Code: CodeNight, StartMinute: 22 * 60, EndMinute: 6 * 60, Name: "Natt", Color: "#9C27B0"},
		{Code: CodeDay12h, StartMinute: 6 * 60, EndMinute: 18 * 60, Name: "Dag 12h", Color: "#FF9800"},
		{Code: CodeNight12h, StartMinute: 18 * 60, EndMinute: 6 * 60, Name: "Natt 12h", Color: "#673AB7"},
		{Code: CodeOff, Name: "Ledig", Color: "#9E9E9E"},
	})
	if err != nil {
		panic(err) // static table, cannot fail
	}
	return tt
}

// Resolve returns the definition for a code, or ErrCodeNotFound.
func (tt *TimeTable) Resolve(code ShiftCode) (ShiftDef, error) {
	d, ok := tt.defs[code]
	if !ok {
		return ShiftDef{}, ErrCodeNotFound
	}
	return d, nil
}

// Has reports whether a code resolves in the table.
func (tt *TimeTable) Has(code ShiftCode) bool {
	_, ok := tt.defs[code]
	return ok
}

// Defs returns all definitions sorted by code, for listings and exports.
func (tt *TimeTable) Defs() []ShiftDef {
	out := make([]ShiftDef, 0, len(tt.defs))
	for _, d := range tt.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
