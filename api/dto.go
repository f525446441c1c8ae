/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  internal engine model from the external contract. Schedule entries use
  the stable shape from the export package so every consumer (UI, sync
  layer, exporters) sees identical records.

NAMING CONVENTION:
  - *DTO: Response types returned to clients

SEE ALSO:
  - handlers.go: Uses these types
  - export/json.go: The shared ShiftEntry wire shape
*/
package api

import (
	"fmt"

	"github.com/skiftappen/shift-engine/schedule"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// CompanyDTO represents a company in API responses.
type CompanyDTO struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Industry  string         `json:"industry,omitempty"`
	Location  string         `json:"location,omitempty"`
	PatternID string         `json:"patternId"`
	Teams     []TeamDTO      `json:"teams"`
	Coverage  map[string]int `json:"requiredCoverage,omitempty"`
}

// TeamDTO represents a team phase.
type TeamDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name,omitempty"`
	PhaseOffset    int     `json:"phaseOffset"`
	ActivationDate *string `json:"activationDate,omitempty"`
}

// PatternDTO represents a rotation pattern.
type PatternDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	CycleLength int      `json:"cycleLength"`
	Sequence    []string `json:"sequence"`
	Version     int      `json:"version"`
}

// ShiftDefDTO represents a time table entry.
type ShiftDefDTO struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Color         string `json:"color,omitempty"`
	Start         string `json:"start,omitempty"`
	End           string `json:"end,omitempty"`
	DurationHours string `json:"durationHours"`
	RollsOver     bool   `json:"rollsOver"`
}

// ErrorResponse is the error body for non-2xx responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toCompanyDTO(c *schedule.CompanyConfig) CompanyDTO {
	teams := make([]TeamDTO, len(c.Teams))
	for i, tp := range c.Teams {
		teams[i] = toTeamDTO(tp)
	}
	var coverage map[string]int
	if len(c.RequiredCoverage) > 0 {
		coverage = make(map[string]int, len(c.RequiredCoverage))
		for code, n := range c.RequiredCoverage {
			coverage[string(code)] = n
		}
	}
	return CompanyDTO{
		ID:        string(c.ID),
		Name:      c.Name,
		Industry:  c.Industry,
		Location:  c.Location,
		PatternID: string(c.PatternID),
		Teams:     teams,
		Coverage:  coverage,
	}
}

func toTeamDTO(tp schedule.TeamPhase) TeamDTO {
	dto := TeamDTO{
		ID:          string(tp.TeamID),
		Name:        tp.Name,
		PhaseOffset: tp.PhaseOffset,
	}
	if tp.ActivationDate != nil {
		s := tp.ActivationDate.String()
		dto.ActivationDate = &s
	}
	return dto
}

func toPatternDTO(p *schedule.Pattern) PatternDTO {
	seq := make([]string, len(p.Sequence))
	for i, c := range p.Sequence {
		seq[i] = string(c)
	}
	return PatternDTO{
		ID:          string(p.ID),
		Name:        p.Name,
		CycleLength: p.CycleLength,
		Sequence:    seq,
		Version:     p.Version,
	}
}

func toShiftDefDTO(d schedule.ShiftDef) ShiftDefDTO {
	dto := ShiftDefDTO{
		Code:          string(d.Code),
		Name:          d.Name,
		Color:         d.Color,
		DurationHours: d.DurationHours().String(),
		RollsOver:     d.RollsOver(),
	}
	if !d.Off() {
		dto.Start = clockString(d.StartMinute)
		dto.End = clockString(d.EndMinute)
	}
	return dto
}

func clockString(minuteOfDay int) string {
	return fmt.Sprintf("%02d:%02d", minuteOfDay/60, minuteOfDay%60)
}
