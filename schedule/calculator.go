/*
calculator.go - The date -> shift computation

PURPOSE:
  Pure functions resolving (company, team, date) to an immutable ShiftEntry
  and (company, team, range) to an ordered entry sequence.

ALGORITHM (the one correct formulation):
  1. Resolve company, pattern and team phase.
  2. Before the team's activation date: off entry, no timestamps.
  3. daysSinceEpoch = whole-day count from the shared Epoch (calendar days,
     never wall-clock, so DST transitions cannot skew the cycle).
  4. cyclePosition = floorMod(daysSinceEpoch + phaseOffset, cycleLength).
     Floor-mod, not truncating mod: dates before the Epoch are valid.
  5. code = pattern.Sequence[cyclePosition].
  6. Materialize start/end timestamps from the time table; night shifts
     whose end offset precedes their start end on date+1.

  Every range is inclusive on both ends and iterated one day at a time.
  There is deliberately NO special handling of the first or last day - the
  inconsistent inclusive/exclusive boundary rules across the source
  system's rewrites were a recurring defect class.

CONCURRENCY:
  The calculator is stateless over an immutable registry; any number of
  goroutines may call it concurrently.

SEE ALSO:
  - registry.go: Configuration the calculator reads
  - coverage.go: Validates calculator output against coverage rules
  - batch.go:    Parallel all-team generation
*/
package schedule

import "fmt"

// MaxRangeDays bounds a single shiftsFor request to 40 years of days.
// Larger spans must be chunked by the caller; the engine refuses them
// instead of silently truncating.
const MaxRangeDays = 14610

// Calculator resolves dates to shift entries for registered companies.
type Calculator struct {
	registry *Registry
}

// NewCalculator creates a calculator over an immutable registry.
func NewCalculator(registry *Registry) *Calculator {
	return &Calculator{registry: registry}
}

// ShiftFor resolves a single (company, team, date) triple.
func (c *Calculator) ShiftFor(companyID CompanyID, teamID TeamID, date Day) (ShiftEntry, error) {
	company, pattern, phase, err := c.resolve(companyID, teamID)
	if err != nil {
		return ShiftEntry{}, err
	}
	return c.entryFor(company, pattern, phase, date), nil
}

// ShiftsFor resolves every day in the inclusive [from, to] range, in date
// order. The result always has exactly (to-from)+1 entries.
func (c *Calculator) ShiftsFor(companyID CompanyID, teamID TeamID, from, to Day) ([]ShiftEntry, error) {
	company, pattern, phase, err := c.resolve(companyID, teamID)
	if err != nil {
		return nil, err
	}
	r, err := checkRange(from, to)
	if err != nil {
		return nil, err
	}

	entries := make([]ShiftEntry, 0, r.Days())
	r.Each(func(d Day) {
		entries = append(entries, c.entryFor(company, pattern, phase, d))
	})
	return entries, nil
}

// CyclePosition exposes the raw cycle arithmetic for QA tooling.
func (c *Calculator) CyclePosition(companyID CompanyID, teamID TeamID, date Day) (int, error) {
	_, pattern, phase, err := c.resolve(companyID, teamID)
	if err != nil {
		return 0, err
	}
	return floorMod(date.DaysSinceEpoch()+phase.PhaseOffset, pattern.CycleLength), nil
}

// Registry returns the registry the calculator resolves against.
func (c *Calculator) Registry() *Registry { return c.registry }

func (c *Calculator) resolve(companyID CompanyID, teamID TeamID) (*CompanyConfig, *Pattern, TeamPhase, error) {
	company, err := c.registry.GetCompany(companyID)
	if err != nil {
		return nil, nil, TeamPhase{}, err
	}
	pattern, err := c.registry.Catalog().GetPattern(company.PatternID)
	if err != nil {
		return nil, nil, TeamPhase{}, err
	}
	phase, ok := company.Team(teamID)
	if !ok {
		return nil, nil, TeamPhase{}, fmt.Errorf("team %q in company %q: %w", teamID, companyID, ErrTeamNotFound)
	}
	return company, pattern, phase, nil
}

// entryFor computes the immutable entry for one day. All inputs are
// validated by resolve/registration, so this cannot fail.
func (c *Calculator) entryFor(company *CompanyConfig, pattern *Pattern, phase TeamPhase, date Day) ShiftEntry {
	entry := ShiftEntry{
		CompanyID: company.ID,
		TeamID:    phase.TeamID,
		Date:      date,
		Code:      CodeOff,
	}

	if !phase.ActiveOn(date) {
		return entry
	}

	position := floorMod(date.DaysSinceEpoch()+phase.PhaseOffset, pattern.CycleLength)
	code := pattern.At(position)
	entry.Code = code
	if code.IsOff() {
		return entry
	}

	// Codes are validated against the table at registration time.
	def, err := c.registry.Catalog().TimeTable().Resolve(code)
	if err != nil {
		panic(fmt.Sprintf("registered pattern %q uses unresolvable code %q", pattern.ID, code))
	}

	start := date.At(def.StartMinute)
	endMinute := def.EndMinute
	if def.RollsOver() {
		endMinute += 24 * 60
	}
	end := date.At(endMinute)
	entry.Start = &start
	entry.End = &end
	return entry
}

func checkRange(from, to Day) (DateRange, error) {
	r := DateRange{From: from, To: to}
	if from.After(to) {
		return DateRange{}, &RangeError{Range: r, Reason: "from is after to"}
	}
	if r.Days() > MaxRangeDays {
		return DateRange{}, &RangeError{
			Range:  r,
			Reason: fmt.Sprintf("span of %d days exceeds maximum of %d; chunk the request", r.Days(), MaxRangeDays),
		}
	}
	return r, nil
}
