/*
presets.go - Built-in demo configurations

PURPOSE:
  Ships realistic Swedish industrial rotations for development, demos and
  the engine's own acceptance tests. Production deployments load their
  configuration document from file instead; real historical offsets must
  come from the system of record, never from this file.

AVAILABLE PRESETS (companies):
  ssab-oxelosund:  Continuous 3-shift steelworks. Five teams on a 10-day
                   2-2-2 rotation with offsets 0,2,4,6,8 - every day is
                   covered by exactly one F, one E and one N team.
  kubal-sundsvall: Continuous 12-hour smelter operation. Four teams on an
                   8-day day/night rotation with offsets 0,2,4,6.
  sca-ostrand:     Discontinuous 2-shift pulp mill. Two teams alternating
                   mornings and afternoons on a 14-day week pattern;
                   weekends are unstaffed, so no coverage rule applies.

FEASIBILITY NOTE:
  Exact {F:1,E:1,N:1} coverage requires the pattern's working share to be
  exactly 3/nteams of the cycle. With five teams that means the cycle must
  be a multiple of 5 - a 12-day five-team rotation can never validate
  clean, which the coverage validator will happily demonstrate.

SEE ALSO:
  - company.go: The document format these presets use
  - schedule/coverage.go: Validates the continuous presets to zero violations
*/
package factory

// PresetDocument returns the built-in demo configuration.
func PresetDocument() ConfigDocument {
	return ConfigDocument{
		Patterns: []PatternJSON{
			{
				ID:          "kontinuerlig-2-2-2",
				Name:        "Kontinuerligt 3-skift, 2-2-2 rotation",
				CycleLength: 10,
				Sequence:    []string{"F", "F", "E", "E", "N", "N", "L", "L", "L", "L"},
			},
			{
				ID:          "kontinuerlig-12h",
				Name:        "Kontinuerlig 12-timmarsdrift",
				CycleLength: 8,
				Sequence:    []string{"D", "D", "K", "K", "L", "L", "L", "L"},
			},
			{
				ID:          "diskontinuerlig-2-skift",
				Name:        "Diskontinuerligt 2-skift, fri helg",
				CycleLength: 14,
				Sequence:    []string{"F", "F", "F", "F", "F", "L", "L", "E", "E", "E", "E", "E", "L", "L"},
			},
		},
		Companies: []CompanyJSON{
			{
				ID:        "ssab-oxelosund",
				Name:      "SSAB Oxelösund",
				Industry:  "Stålindustri",
				Location:  "Oxelösund",
				PatternID: "kontinuerlig-2-2-2",
				Teams: []TeamJSON{
					{ID: "lag-1", Name: "Lag 1", PhaseOffset: 0},
					{ID: "lag-2", Name: "Lag 2", PhaseOffset: 2},
					{ID: "lag-3", Name: "Lag 3", PhaseOffset: 4},
					{ID: "lag-4", Name: "Lag 4", PhaseOffset: 6},
					{ID: "lag-5", Name: "Lag 5", PhaseOffset: 8},
				},
				RequiredCoverage: map[string]int{"F": 1, "E": 1, "N": 1},
			},
			{
				ID:        "kubal-sundsvall",
				Name:      "Kubal Sundsvall",
				Industry:  "Aluminiumindustri",
				Location:  "Sundsvall",
				PatternID: "kontinuerlig-12h",
				Teams: []TeamJSON{
					{ID: "lag-a", Name: "Lag A", PhaseOffset: 0},
					{ID: "lag-b", Name: "Lag B", PhaseOffset: 2},
					{ID: "lag-c", Name: "Lag C", PhaseOffset: 4},
					{ID: "lag-d", Name: "Lag D", PhaseOffset: 6},
				},
				RequiredCoverage: map[string]int{"D": 1, "K": 1},
			},
			{
				ID:        "sca-ostrand",
				Name:      "SCA Östrand",
				Industry:  "Massaindustri",
				Location:  "Timrå",
				PatternID: "diskontinuerlig-2-skift",
				Teams: []TeamJSON{
					{ID: "lag-1", Name: "Lag 1", PhaseOffset: 0},
					{ID: "lag-2", Name: "Lag 2", PhaseOffset: 7, ActivationDate: "2024-01-01"},
				},
				// Weekends are unstaffed; coverage is not validated for
				// discontinuous operation.
			},
		},
	}
}
