/*
coverage.go - Daily coverage validation

PURPOSE:
  Checks that, across a company's full team set and a date range, every
  calendar day's working shifts exactly match the company's required
  coverage rule. The canonical rule is exact multiset equality: a missing
  required code, an extra code, or two teams on a code that only requires
  one are all violations. There are no holiday exceptions; a holiday
  calendar would be an explicit pattern/phase extension, not a validator
  special case.

VIOLATIONS ARE DATA:
  Validate never fails because the schedule is bad. A broken configuration
  produces a report with violations; only unknown companies or invalid
  ranges produce errors. The source system's validators disagreed on this
  (some passed any day with the right team COUNT regardless of codes),
  which is exactly the defect class this formalization removes.

SEE ALSO:
  - calculator.go: Produces the entries being judged
  - registry.go:   Declares the coverage rule
*/
package schedule

import "fmt"

// =============================================================================
// VALIDATION REPORT
// =============================================================================

// ViolationKind classifies one coverage defect on one day.
type ViolationKind string

const (
	ViolationMissingCode    ViolationKind = "missing_code"    // required code not staffed
	ViolationUnexpectedCode ViolationKind = "unexpected_code" // working code outside the rule
	ViolationOverstaffed    ViolationKind = "overstaffed"     // more teams than required on a code
	ViolationUnderstaffed   ViolationKind = "understaffed"    // fewer teams than required on a code
)

// Violation is one coverage defect: data, never an error.
type Violation struct {
	Date     Day           `json:"date"`
	Kind     ViolationKind `json:"kind"`
	Code     ShiftCode     `json:"code"`
	Required int           `json:"required"`
	Actual   int           `json:"actual"`
	Teams    []TeamID      `json:"teams,omitempty"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s %q required %d, got %d", v.Date, v.Kind, v.Code, v.Required, v.Actual)
}

// DayRecord is the per-day detail of a validation run.
type DayRecord struct {
	Date         Day                  `json:"date"`
	TeamsWorking map[TeamID]ShiftCode `json:"teamsWorking"`
	CodesPresent map[ShiftCode]int    `json:"codesPresent"`
	Violations   []Violation          `json:"violations,omitempty"`
}

// ValidationReport aggregates a coverage run over a date range.
type ValidationReport struct {
	CompanyID CompanyID   `json:"companyId"`
	Range     DateRange   `json:"range"`
	Days      []DayRecord `json:"days"`
	Passed    bool        `json:"passed"`
}

// ViolationCount returns the total number of violations across all days.
func (r *ValidationReport) ViolationCount() int {
	n := 0
	for _, d := range r.Days {
		n += len(d.Violations)
	}
	return n
}

// Violations flattens every violation in date order.
func (r *ValidationReport) Violations() []Violation {
	var out []Violation
	for _, d := range r.Days {
		out = append(out, d.Violations...)
	}
	return out
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validator checks calculator output against company coverage rules.
type Validator struct {
	calc *Calculator
}

// NewValidator creates a validator over the given calculator.
func NewValidator(calc *Calculator) *Validator {
	return &Validator{calc: calc}
}

// Validate runs the coverage check for every day in the inclusive range.
// Companies without a coverage rule validate trivially (the report carries
// the per-day records but can have no violations).
func (v *Validator) Validate(companyID CompanyID, from, to Day) (*ValidationReport, error) {
	company, err := v.calc.Registry().GetCompany(companyID)
	if err != nil {
		return nil, err
	}
	r, err := checkRange(from, to)
	if err != nil {
		return nil, err
	}

	report := &ValidationReport{
		CompanyID: companyID,
		Range:     r,
		Days:      make([]DayRecord, 0, r.Days()),
		Passed:    true,
	}

	r.Each(func(d Day) {
		record := v.validateDay(company, d)
		if len(record.Violations) > 0 {
			report.Passed = false
		}
		report.Days = append(report.Days, record)
	})
	return report, nil
}

func (v *Validator) validateDay(company *CompanyConfig, d Day) DayRecord {
	record := DayRecord{
		Date:         d,
		TeamsWorking: make(map[TeamID]ShiftCode),
		CodesPresent: make(map[ShiftCode]int),
	}

	byCode := make(map[ShiftCode][]TeamID)
	for _, phase := range company.Teams {
		entry, err := v.calc.ShiftFor(company.ID, phase.TeamID, d)
		if err != nil {
			// Registered teams always resolve; resolve errors here would
			// mean the registry invariants are broken.
			panic(fmt.Sprintf("registered team %q failed to resolve: %v", phase.TeamID, err))
		}
		if !entry.IsWorking() {
			continue
		}
		record.TeamsWorking[entry.TeamID] = entry.Code
		record.CodesPresent[entry.Code]++
		byCode[entry.Code] = append(byCode[entry.Code], entry.TeamID)
	}

	if len(company.RequiredCoverage) == 0 {
		return record
	}

	// Exact multiset equality between worked codes and the coverage rule.
	for code, required := range company.RequiredCoverage {
		actual := record.CodesPresent[code]
		switch {
		case actual == 0:
			record.Violations = append(record.Violations, Violation{
				Date: d, Kind: ViolationMissingCode, Code: code, Required: required,
			})
		case actual < required:
			record.Violations = append(record.Violations, Violation{
				Date: d, Kind: ViolationUnderstaffed, Code: code, Required: required, Actual: actual,
				Teams: byCode[code],
			})
		case actual > required:
			record.Violations = append(record.Violations, Violation{
				Date: d, Kind: ViolationOverstaffed, Code: code, Required: required, Actual: actual,
				Teams: byCode[code],
			})
		}
	}
	for code, actual := range record.CodesPresent {
		if _, wanted := company.RequiredCoverage[code]; !wanted {
			record.Violations = append(record.Violations, Violation{
				Date: d, Kind: ViolationUnexpectedCode, Code: code, Actual: actual,
				Teams: byCode[code],
			})
		}
	}
	return record
}
