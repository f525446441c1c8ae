/*
registry.go - Company and team configuration registry

PURPOSE:
  The single source of truth for which pattern a company runs, which teams
  it staffs, each team's phase offset within the shared cycle, and the
  coverage rule its schedule must satisfy.

  This registry replaces the source system's many hand-maintained tables
  that each re-declared the same company with slightly different offsets
  and cycle lengths. Constants live in configuration; the engine computes
  everything else.

LIFECYCLE:
  Constructed once from declarative configuration at process start and
  immutable afterwards. Changing a company means redeploying configuration,
  not mutating a running registry. The registry is injected into the
  calculator and validator - there is no hidden module-level state.

SEE ALSO:
  - pattern.go: Patterns referenced by CompanyConfig.PatternID
  - factory/company.go: Parses the declarative JSON into this registry
*/
package schedule

import (
	"fmt"
	"sort"
)

// =============================================================================
// TEAM PHASE
// =============================================================================

// TeamPhase positions one team within the company's shared rotation cycle.
// Offsets are plain integers relative to the single shared Epoch; teams
// never carry their own base dates.
type TeamPhase struct {
	TeamID TeamID
	Name   string

	// PhaseOffset in days, 0 <= offset < pattern cycle length.
	PhaseOffset int

	// ActivationDate, when set, is the first day the team is staffed.
	// Before it the team resolves to an off entry. This is the single
	// extension point for staggered onboarding.
	ActivationDate *Day
}

// ActiveOn reports whether the team is staffed on the given day.
func (tp TeamPhase) ActiveOn(d Day) bool {
	return tp.ActivationDate == nil || d.AfterOrEqual(*tp.ActivationDate)
}

// =============================================================================
// COMPANY CONFIG
// =============================================================================

// CompanyConfig is one company's complete declarative scheduling setup.
type CompanyConfig struct {
	ID       CompanyID
	Name     string
	Industry string
	Location string

	PatternID PatternID
	Teams     []TeamPhase

	// RequiredCoverage is the multiset of working codes that must be
	// staffed every calendar day. Empty means the company runs
	// discontinuously and coverage is not validated.
	RequiredCoverage Coverage
}

// Team returns the phase for a team ID.
func (c *CompanyConfig) Team(id TeamID) (TeamPhase, bool) {
	for _, tp := range c.Teams {
		if tp.TeamID == id {
			return tp, true
		}
	}
	return TeamPhase{}, false
}

// =============================================================================
// COMPANY REGISTRY
// =============================================================================

// Registry maps company IDs to their configurations. Immutable after
// construction; safe for concurrent lookups.
type Registry struct {
	catalog   *PatternCatalog
	companies map[CompanyID]*CompanyConfig
}

// NewRegistry creates an empty registry resolving patterns through the
// given catalog.
func NewRegistry(catalog *PatternCatalog) *Registry {
	return &Registry{
		catalog:   catalog,
		companies: make(map[CompanyID]*CompanyConfig),
	}
}

// Register validates and adds a company configuration. All checks are
// fail-fast configuration errors.
func (r *Registry) Register(cfg CompanyConfig) error {
	if cfg.ID == "" {
		return &ConfigurationError{Scope: "company", ID: string(cfg.ID), Reason: "empty company id"}
	}
	if _, dup := r.companies[cfg.ID]; dup {
		return &ConfigurationError{Scope: "company", ID: string(cfg.ID), Reason: "duplicate company id"}
	}
	pattern, err := r.catalog.GetPattern(cfg.PatternID)
	if err != nil {
		return &ConfigurationError{
			Scope: "company", ID: string(cfg.ID),
			Reason: fmt.Sprintf("unknown pattern %q", cfg.PatternID),
		}
	}
	if len(cfg.Teams) == 0 {
		return &ConfigurationError{Scope: "company", ID: string(cfg.ID), Reason: "company has no teams"}
	}

	seenTeams := make(map[TeamID]bool, len(cfg.Teams))
	seenOffsets := make(map[int]TeamID, len(cfg.Teams))
	for _, tp := range cfg.Teams {
		if tp.TeamID == "" {
			return &ConfigurationError{Scope: "company", ID: string(cfg.ID), Reason: "empty team id"}
		}
		if seenTeams[tp.TeamID] {
			return &ConfigurationError{
				Scope: "company", ID: string(cfg.ID),
				Reason: fmt.Sprintf("duplicate team id %q", tp.TeamID),
			}
		}
		seenTeams[tp.TeamID] = true

		if tp.PhaseOffset < 0 || tp.PhaseOffset >= pattern.CycleLength {
			return &ConfigurationError{
				Scope: "company", ID: string(cfg.ID),
				Reason: fmt.Sprintf("team %q phase offset %d outside [0, %d)", tp.TeamID, tp.PhaseOffset, pattern.CycleLength),
			}
		}
		if cfg.RequiredCoverage.SingleOccupancy() {
			if other, clash := seenOffsets[tp.PhaseOffset]; clash {
				return &ConfigurationError{
					Scope: "company", ID: string(cfg.ID),
					Reason: fmt.Sprintf("teams %q and %q share phase offset %d under single-occupancy coverage", other, tp.TeamID, tp.PhaseOffset),
				}
			}
		}
		seenOffsets[tp.PhaseOffset] = tp.TeamID
	}
	for code := range cfg.RequiredCoverage {
		if code.IsOff() {
			return &ConfigurationError{Scope: "company", ID: string(cfg.ID), Reason: "coverage rule must not require the off code"}
		}
		if !r.catalog.TimeTable().Has(code) {
			return &ConfigurationError{
				Scope: "company", ID: string(cfg.ID),
				Reason: fmt.Sprintf("coverage rule uses unknown shift code %q", code),
			}
		}
	}

	stored := cfg
	stored.Teams = append([]TeamPhase(nil), cfg.Teams...)
	stored.RequiredCoverage = cfg.RequiredCoverage.Clone()
	r.companies[cfg.ID] = &stored
	return nil
}

// GetCompany returns the configuration for an ID, or ErrCompanyNotFound.
func (r *Registry) GetCompany(id CompanyID) (*CompanyConfig, error) {
	c, ok := r.companies[id]
	if !ok {
		return nil, fmt.Errorf("company %q: %w", id, ErrCompanyNotFound)
	}
	return c, nil
}

// ListTeams returns the team phases of a company.
func (r *Registry) ListTeams(id CompanyID) ([]TeamPhase, error) {
	c, err := r.GetCompany(id)
	if err != nil {
		return nil, err
	}
	return append([]TeamPhase(nil), c.Teams...), nil
}

// List returns all companies sorted by ID.
func (r *Registry) List() []*CompanyConfig {
	out := make([]*CompanyConfig, 0, len(r.companies))
	for _, c := range r.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Catalog returns the pattern catalog the registry resolves against.
func (r *Registry) Catalog() *PatternCatalog { return r.catalog }

// ConfigCheck is the result of re-validating a registered company.
type ConfigCheck struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ValidateConfiguration re-runs the registration checks for an already
// registered company. Registration makes an invalid state unrepresentable,
// so this normally reports valid; it exists so QA tooling can assert the
// invariant instead of assuming it.
func (r *Registry) ValidateConfiguration(id CompanyID) (ConfigCheck, error) {
	c, err := r.GetCompany(id)
	if err != nil {
		return ConfigCheck{}, err
	}
	pattern, err := r.catalog.GetPattern(c.PatternID)
	if err != nil {
		return ConfigCheck{Valid: false, Reason: fmt.Sprintf("pattern %q missing from catalog", c.PatternID)}, nil
	}
	offsets := make(map[int]TeamID, len(c.Teams))
	for _, tp := range c.Teams {
		if tp.PhaseOffset < 0 || tp.PhaseOffset >= pattern.CycleLength {
			return ConfigCheck{Valid: false, Reason: fmt.Sprintf("team %q offset %d outside cycle", tp.TeamID, tp.PhaseOffset)}, nil
		}
		if c.RequiredCoverage.SingleOccupancy() {
			if other, clash := offsets[tp.PhaseOffset]; clash {
				return ConfigCheck{Valid: false, Reason: fmt.Sprintf("teams %q and %q share offset %d", other, tp.TeamID, tp.PhaseOffset)}, nil
			}
		}
		offsets[tp.PhaseOffset] = tp.TeamID
	}
	return ConfigCheck{Valid: true}, nil
}
