/*
handlers.go - HTTP API handlers for the schedule engine

PURPOSE:
  Exposes the engine via REST. Handlers parse the request, delegate to
  the pure engine, and serialize the stable wire shapes. All scheduling
  semantics live in the schedule package; nothing here inspects patterns
  or offsets.

ENDPOINTS:
  Catalog:
    GET /api/timetable                       Shift code definitions
    GET /api/patterns                        List rotation patterns
    GET /api/patterns/{id}                   Pattern detail
    GET /api/companies                       List companies
    GET /api/companies/{id}                  Company detail
    GET /api/companies/{id}/teams            Team phases
    GET /api/companies/{id}/config-check     Re-validate configuration

  Schedules:
    GET /api/companies/{id}/teams/{team}/shift?date=      Single day
    GET /api/companies/{id}/teams/{team}/schedule?from=&to=  One team
    GET /api/companies/{id}/teams/{team}/stats?year=      Year statistics
    GET /api/companies/{id}/schedule?from=&to=            All teams
    GET /api/companies/{id}/coverage?from=&to=            Coverage report
    GET /api/companies/{id}/export/{format}?from=&to=     Download
    POST /api/companies/{id}/cache/invalidate             Drop cached ranges

  QA:
    GET /api/validation-runs?company=&limit=   Archived sweeper runs
    GET /api/healthz

ERROR HANDLING:
  - 400: invalid dates/ranges/formats
  - 404: unknown company, team, pattern
  - 500: storage failures
  Coverage violations are NOT errors: a failing report returns 200 with
  passed=false.

SEE ALSO:
  - dto.go:    Response shapes
  - server.go: Router and middleware
  - sweeper.go: Background coverage validation
*/
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/skiftappen/shift-engine/export"
	"github.com/skiftappen/shift-engine/schedule"
	"github.com/skiftappen/shift-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Registry  *schedule.Registry
	Calc      *schedule.Calculator
	Validator *schedule.Validator
	Cache     schedule.Cache

	// Store archives exports and validation runs. Optional; nil disables
	// archiving and the QA endpoints return empty lists.
	Store *sqlite.Store
}

// NewHandler creates a handler over an immutable registry.
func NewHandler(registry *schedule.Registry, cache schedule.Cache, store *sqlite.Store) *Handler {
	calc := schedule.NewCalculator(registry)
	if cache == nil {
		cache = schedule.NopCache{}
	}
	return &Handler{
		Registry:  registry,
		Calc:      calc,
		Validator: schedule.NewValidator(calc),
		Cache:     cache,
		Store:     store,
	}
}

// =============================================================================
// CATALOG ENDPOINTS
// =============================================================================

// GetTimeTable returns the shift code definitions.
// GET /api/timetable
func (h *Handler) GetTimeTable(w http.ResponseWriter, r *http.Request) {
	defs := h.Registry.Catalog().TimeTable().Defs()
	dtos := make([]ShiftDefDTO, len(defs))
	for i, d := range defs {
		dtos[i] = toShiftDefDTO(d)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListPatterns returns all registered patterns.
// GET /api/patterns
func (h *Handler) ListPatterns(w http.ResponseWriter, r *http.Request) {
	patterns := h.Registry.Catalog().List()
	dtos := make([]PatternDTO, len(patterns))
	for i, p := range patterns {
		dtos[i] = toPatternDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPattern returns one pattern.
// GET /api/patterns/{patternID}
func (h *Handler) GetPattern(w http.ResponseWriter, r *http.Request) {
	id := schedule.PatternID(chi.URLParam(r, "patternID"))
	p, err := h.Registry.Catalog().GetPattern(id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPatternDTO(p))
}

// ListCompanies returns all registered companies.
// GET /api/companies
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies := h.Registry.List()
	dtos := make([]CompanyDTO, len(companies))
	for i, c := range companies {
		dtos[i] = toCompanyDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCompany returns one company.
// GET /api/companies/{companyID}
func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	c, err := h.Registry.GetCompany(companyID(r))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompanyDTO(c))
}

// ListTeams returns the team phases of a company.
// GET /api/companies/{companyID}/teams
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Registry.ListTeams(companyID(r))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	dtos := make([]TeamDTO, len(teams))
	for i, tp := range teams {
		dtos[i] = toTeamDTO(tp)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CheckConfiguration re-validates a registered company.
// GET /api/companies/{companyID}/config-check
func (h *Handler) CheckConfiguration(w http.ResponseWriter, r *http.Request) {
	check, err := h.Registry.ValidateConfiguration(companyID(r))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, check)
}

// =============================================================================
// SCHEDULE ENDPOINTS
// =============================================================================

// GetShift resolves a single day for one team.
// GET /api/companies/{companyID}/teams/{teamID}/shift?date=2025-01-10
func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	date, err := schedule.ParseDay(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date, want YYYY-MM-DD", err)
		return
	}
	entry, err := h.Calc.ShiftFor(companyID(r), teamID(r), date)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, export.ToEntryJSON(entry))
}

// GetSchedule returns one team's inclusive range, served through the cache.
// GET /api/companies/{companyID}/teams/{teamID}/schedule?from=&to=
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseRange(w, r)
	if !ok {
		return
	}
	cid, tid := companyID(r), teamID(r)

	key := schedule.CacheKey{CompanyID: cid, TeamID: tid, From: from, To: to}
	entries, err := h.Cache.GetOrCompute(r.Context(), key, func() ([]schedule.ShiftEntry, error) {
		return h.Calc.ShiftsFor(cid, tid, from, to)
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}

	out := make([]export.EntryJSON, len(entries))
	for i, e := range entries {
		out[i] = export.ToEntryJSON(e)
	}
	writeJSON(w, http.StatusOK, out)
}

// GetScheduleForAllTeams returns every team's range, generated in parallel.
// GET /api/companies/{companyID}/schedule?from=&to=
func (h *Handler) GetScheduleForAllTeams(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseRange(w, r)
	if !ok {
		return
	}
	schedules, err := h.Calc.ShiftsForAllTeams(companyID(r), from, to)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, export.ToTeamScheduleJSON(schedules))
}

// GetStats returns one team's calendar-year statistics.
// GET /api/companies/{companyID}/teams/{teamID}/stats?year=2025
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	stats, err := h.Calc.YearStats(companyID(r), teamID(r), year)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ValidateCoverage runs the coverage validator over a range. A failing
// schedule is a 200 with passed=false, never an error status.
// GET /api/companies/{companyID}/coverage?from=&to=
func (h *Handler) ValidateCoverage(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseRange(w, r)
	if !ok {
		return
	}
	report, err := h.Validator.Validate(companyID(r), from, to)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ExportSchedule streams every team's range in the requested format and
// archives what was handed out.
// GET /api/companies/{companyID}/export/{format}?from=&to=
func (h *Handler) ExportSchedule(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseRange(w, r)
	if !ok {
		return
	}
	cid := companyID(r)
	format := chi.URLParam(r, "format")

	exp, err := export.ForFormat(format, h.Registry.Catalog().TimeTable())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown export format", err)
		return
	}

	schedules, err := h.Calc.ShiftsForAllTeams(cid, from, to)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.archiveEntries(r.Context(), schedules)

	filename := string(cid) + "_" + from.String() + "_" + to.String() + "." + exp.FileExtension()
	w.Header().Set("Content-Type", exp.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := exp.Write(w, schedules); err != nil {
		slog.Error("export write failed", "company", cid, "format", format, "error", err)
	}
}

// InvalidateCache drops every cached range for a company.
// POST /api/companies/{companyID}/cache/invalidate
func (h *Handler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	cid := companyID(r)
	if _, err := h.Registry.GetCompany(cid); err != nil {
		writeEngineError(w, err)
		return
	}
	if err := h.Cache.Invalidate(r.Context(), cid); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to invalidate cache", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// QA ENDPOINTS
// =============================================================================

// ListValidationRuns returns archived sweeper runs, newest first.
// GET /api/validation-runs?company=&limit=
func (h *Handler) ListValidationRuns(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeJSON(w, http.StatusOK, []sqlite.ValidationRun{})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := h.Store.ListValidationRuns(r.Context(), r.URL.Query().Get("company"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list validation runs", err)
		return
	}
	if runs == nil {
		runs = []sqlite.ValidationRun{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// Health reports liveness.
// GET /api/healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"companies": len(h.Registry.List()),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) archiveEntries(ctx context.Context, schedules []schedule.TeamSchedule) {
	if h.Store == nil {
		return
	}
	var all []schedule.ShiftEntry
	for _, ts := range schedules {
		all = append(all, ts.Entries...)
	}
	if err := h.Store.SaveEntries(ctx, all); err != nil {
		// Archiving is evidence, not the product; the export proceeds.
		slog.Error("failed to archive exported entries", "error", err)
	}
}

func companyID(r *http.Request) schedule.CompanyID {
	return schedule.CompanyID(chi.URLParam(r, "companyID"))
}

func teamID(r *http.Request) schedule.TeamID {
	return schedule.TeamID(chi.URLParam(r, "teamID"))
}

func parseRange(w http.ResponseWriter, r *http.Request) (schedule.Day, schedule.Day, bool) {
	from, err := schedule.ParseDay(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from date, want YYYY-MM-DD", err)
		return schedule.Day{}, schedule.Day{}, false
	}
	to, err := schedule.ParseDay(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to date, want YYYY-MM-DD", err)
		return schedule.Day{}, schedule.Day{}, false
	}
	return from, to, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps engine error taxonomy to HTTP statuses.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case schedule.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case schedule.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
