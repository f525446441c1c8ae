/*
Package factory provides JSON to Go schedule configuration conversion.

PURPOSE:
  Converts declarative JSON schedule definitions into a validated
  schedule.Registry. This enables company onboarding without code changes -
  a new plant's rotation is a JSON document, and the factory builds the
  proper engine structures, failing fast on any defect.

WHY JSON?
  - Non-developers can review a company's rotation
  - Version control for pattern and offset changes
  - The same document format feeds seeding tools and admin UIs

JSON SCHEMA:
  {
    "timetable": [
      {"code": "F", "start": "06:00", "end": "14:00", "name": "Förmiddag"}
    ],
    "patterns": [
      {"id": "kontinuerlig-2-2-2", "cycleLength": 10,
       "sequence": ["F","F","E","E","N","N","L","L","L","L"]}
    ],
    "companies": [
      {"id": "ssab-oxelosund", "name": "SSAB Oxelösund",
       "patternId": "kontinuerlig-2-2-2",
       "teams": [{"id": "lag-1", "phaseOffset": 0}],
       "requiredCoverage": {"F": 1, "E": 1, "N": 1}}
    ]
  }

VALIDATION:
  Two layers, both at load time:
  1. Structural, via validator/v10 struct tags (required fields, value
     ranges, date formats)
  2. Semantic, via registry/catalog registration (sequence lengths, code
     resolution, offset distinctness)

USAGE:
  f := factory.NewEngineFactory()
  registry, err := f.ParseConfig(jsonBytes)

SEE ALSO:
  - schedule/registry.go: The semantic validation target
  - presets.go: Built-in demo configurations
*/
package factory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/skiftappen/shift-engine/schedule"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ConfigDocument is the root of a declarative engine configuration.
type ConfigDocument struct {
	// TimeTable overrides the default Swedish industrial table when set.
	TimeTable []ShiftDefJSON `json:"timetable,omitempty" validate:"omitempty,dive"`
	Patterns  []PatternJSON  `json:"patterns" validate:"required,min=1,dive"`
	Companies []CompanyJSON  `json:"companies" validate:"required,min=1,dive"`
}

// ShiftDefJSON is the JSON representation of a time table entry.
type ShiftDefJSON struct {
	Code  string `json:"code" validate:"required"`
	Start string `json:"start,omitempty" validate:"omitempty,datetime=15:04"`
	End   string `json:"end,omitempty" validate:"omitempty,datetime=15:04"`
	Name  string `json:"name" validate:"required"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// PatternJSON is the JSON representation of a rotation pattern.
type PatternJSON struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name,omitempty"`
	CycleLength int      `json:"cycleLength" validate:"required,gt=0"`
	Sequence    []string `json:"sequence" validate:"required,min=1,dive,required"`
	Version     int      `json:"version,omitempty"`
}

// CompanyJSON is the JSON representation of one company.
type CompanyJSON struct {
	ID               string         `json:"id" validate:"required"`
	Name             string         `json:"name" validate:"required"`
	Industry         string         `json:"industry,omitempty"`
	Location         string         `json:"location,omitempty"`
	PatternID        string         `json:"patternId" validate:"required"`
	Teams            []TeamJSON     `json:"teams" validate:"required,min=1,dive"`
	RequiredCoverage map[string]int `json:"requiredCoverage,omitempty" validate:"omitempty,dive,gt=0"`
}

// TeamJSON is the JSON representation of one team phase.
type TeamJSON struct {
	ID             string `json:"id" validate:"required"`
	Name           string `json:"name,omitempty"`
	PhaseOffset    int    `json:"phaseOffset" validate:"gte=0"`
	ActivationDate string `json:"activationDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// =============================================================================
// ENGINE FACTORY
// =============================================================================

// EngineFactory converts JSON configuration into a validated registry.
type EngineFactory struct {
	validate *validator.Validate
}

// NewEngineFactory creates a new factory.
func NewEngineFactory() *EngineFactory {
	return &EngineFactory{validate: validator.New()}
}

// ParseConfig parses a JSON document into a fully validated registry.
func (f *EngineFactory) ParseConfig(data []byte) (*schedule.Registry, error) {
	var doc ConfigDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse configuration JSON: %w", err)
	}
	return f.Build(doc)
}

// LoadFile reads and parses a configuration file.
func (f *EngineFactory) LoadFile(path string) (*schedule.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}
	return f.ParseConfig(data)
}

// Build converts a parsed document into a registry, failing fast on the
// first defect.
func (f *EngineFactory) Build(doc ConfigDocument) (*schedule.Registry, error) {
	if err := f.validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("configuration failed structural validation: %w", err)
	}

	timetable, err := f.buildTimeTable(doc.TimeTable)
	if err != nil {
		return nil, err
	}

	catalog := schedule.NewPatternCatalog(timetable)
	for _, pj := range doc.Patterns {
		if err := catalog.Register(toPattern(pj)); err != nil {
			return nil, err
		}
	}

	registry := schedule.NewRegistry(catalog)
	for _, cj := range doc.Companies {
		cfg, err := toCompanyConfig(cj)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(cfg); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func (f *EngineFactory) buildTimeTable(defs []ShiftDefJSON) (*schedule.TimeTable, error) {
	if len(defs) == 0 {
		return schedule.DefaultTimeTable(), nil
	}
	out := make([]schedule.ShiftDef, 0, len(defs))
	for _, dj := range defs {
		def := schedule.ShiftDef{
			Code:  schedule.ShiftCode(dj.Code),
			Name:  dj.Name,
			Color: dj.Color,
		}
		if !def.Code.IsOff() {
			start, err := parseClock(dj.Start)
			if err != nil {
				return nil, fmt.Errorf("timetable code %q: %w", dj.Code, err)
			}
			end, err := parseClock(dj.End)
			if err != nil {
				return nil, fmt.Errorf("timetable code %q: %w", dj.Code, err)
			}
			def.StartMinute = start
			def.EndMinute = end
		}
		out = append(out, def)
	}
	return schedule.NewTimeTable(out)
}

func toPattern(pj PatternJSON) schedule.Pattern {
	seq := make([]schedule.ShiftCode, len(pj.Sequence))
	for i, s := range pj.Sequence {
		seq[i] = schedule.ShiftCode(s)
	}
	version := pj.Version
	if version == 0 {
		version = 1
	}
	return schedule.Pattern{
		ID:          schedule.PatternID(pj.ID),
		Name:        pj.Name,
		CycleLength: pj.CycleLength,
		Sequence:    seq,
		Version:     version,
	}
}

func toCompanyConfig(cj CompanyJSON) (schedule.CompanyConfig, error) {
	teams := make([]schedule.TeamPhase, 0, len(cj.Teams))
	for _, tj := range cj.Teams {
		phase := schedule.TeamPhase{
			TeamID:      schedule.TeamID(tj.ID),
			Name:        tj.Name,
			PhaseOffset: tj.PhaseOffset,
		}
		if tj.ActivationDate != "" {
			d, err := schedule.ParseDay(tj.ActivationDate)
			if err != nil {
				return schedule.CompanyConfig{}, fmt.Errorf("team %q activation date: %w", tj.ID, err)
			}
			phase.ActivationDate = &d
		}
		teams = append(teams, phase)
	}

	coverage := make(schedule.Coverage, len(cj.RequiredCoverage))
	for code, n := range cj.RequiredCoverage {
		coverage[schedule.ShiftCode(code)] = n
	}

	return schedule.CompanyConfig{
		ID:               schedule.CompanyID(cj.ID),
		Name:             cj.Name,
		Industry:         cj.Industry,
		Location:         cj.Location,
		PatternID:        schedule.PatternID(cj.PatternID),
		Teams:            teams,
		RequiredCoverage: coverage,
	}, nil
}

// parseClock converts "15:04" clock strings to minute-of-day offsets.
func parseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid clock time %q, want HH:MM", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return h*60 + m, nil
}
