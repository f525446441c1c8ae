/*
pattern.go - Rotation pattern catalog

PURPOSE:
  Named, versioned rotation definitions: a cycle length and an ordered
  sequence of shift codes. The catalog is the replacement for the source
  system's eleven divergent per-company rewrites of the same rotation -
  one declarative pattern, many computed views.

REGISTRATION VALIDATION (fail fast, configuration error not runtime error):
  - len(sequence) == cycle length
  - every code in the sequence resolves in the TimeTable

SEE ALSO:
  - registry.go: Companies reference patterns by ID
  - calculator.go: Indexes the sequence by floor-mod cycle position
*/
package schedule

import (
	"fmt"
	"sort"
)

// =============================================================================
// PATTERN
// =============================================================================

// Pattern is a rotation definition: after CycleLength days the sequence
// repeats. The sequence is indexed by a team's cycle position.
type Pattern struct {
	ID          PatternID
	Name        string
	CycleLength int
	Sequence    []ShiftCode
	Version     int
}

// At returns the shift code at the given cycle position.
func (p *Pattern) At(cyclePosition int) ShiftCode {
	return p.Sequence[cyclePosition]
}

// WorkingDays returns how many positions of the cycle are working shifts.
func (p *Pattern) WorkingDays() int {
	n := 0
	for _, c := range p.Sequence {
		if !c.IsOff() {
			n++
		}
	}
	return n
}

// =============================================================================
// PATTERN CATALOG
// =============================================================================

// PatternCatalog holds all registered patterns. It is constructed once from
// declarative configuration and immutable afterwards - no module-level
// state, no runtime mutation.
type PatternCatalog struct {
	timetable *TimeTable
	patterns  map[PatternID]*Pattern
}

// NewPatternCatalog creates an empty catalog validating codes against the
// given time table.
func NewPatternCatalog(timetable *TimeTable) *PatternCatalog {
	return &PatternCatalog{
		timetable: timetable,
		patterns:  make(map[PatternID]*Pattern),
	}
}

// Register validates and adds a pattern. Registration happens only during
// configuration load; a failure here is a deployment problem, not a
// request problem.
func (c *PatternCatalog) Register(p Pattern) error {
	if p.ID == "" {
		return &ConfigurationError{Scope: "pattern", ID: string(p.ID), Reason: "empty pattern id"}
	}
	if _, dup := c.patterns[p.ID]; dup {
		return &ConfigurationError{Scope: "pattern", ID: string(p.ID), Reason: "duplicate pattern id"}
	}
	if p.CycleLength <= 0 {
		return &ConfigurationError{Scope: "pattern", ID: string(p.ID), Reason: "cycle length must be positive"}
	}
	if len(p.Sequence) != p.CycleLength {
		return &ConfigurationError{
			Scope: "pattern", ID: string(p.ID),
			Reason: fmt.Sprintf("sequence length %d does not match cycle length %d", len(p.Sequence), p.CycleLength),
		}
	}
	for i, code := range p.Sequence {
		if !c.timetable.Has(code) {
			return &ConfigurationError{
				Scope: "pattern", ID: string(p.ID),
				Reason: fmt.Sprintf("sequence position %d uses unknown shift code %q", i, code),
			}
		}
	}

	stored := p
	stored.Sequence = append([]ShiftCode(nil), p.Sequence...)
	c.patterns[p.ID] = &stored
	return nil
}

// GetPattern returns the pattern for an ID, or ErrPatternNotFound.
func (c *PatternCatalog) GetPattern(id PatternID) (*Pattern, error) {
	p, ok := c.patterns[id]
	if !ok {
		return nil, fmt.Errorf("pattern %q: %w", id, ErrPatternNotFound)
	}
	return p, nil
}

// TimeTable returns the time table the catalog validates against.
func (c *PatternCatalog) TimeTable() *TimeTable { return c.timetable }

// List returns all patterns sorted by ID.
func (c *PatternCatalog) List() []*Pattern {
	out := make([]*Pattern, 0, len(c.patterns))
	for _, p := range c.patterns {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
