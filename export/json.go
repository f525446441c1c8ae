package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/skiftappen/shift-engine/schedule"
)

// =============================================================================
// JSON ADAPTER - The stable ShiftEntry wire shape
// =============================================================================

// EntryJSON is the stable output record shape shared by every export
// adapter and the API: timestamps are ISO 8601 and nullable for off days.
type EntryJSON struct {
	CompanyID      string  `json:"companyId"`
	TeamID         string  `json:"teamId"`
	Date           string  `json:"date"`
	ShiftCode      string  `json:"shiftCode"`
	StartTimestamp *string `json:"startTimestamp"`
	EndTimestamp   *string `json:"endTimestamp"`
}

// TeamScheduleJSON groups entries per team.
type TeamScheduleJSON struct {
	TeamID  string      `json:"teamId"`
	Entries []EntryJSON `json:"entries"`
}

// ToEntryJSON converts one entry to the stable wire shape.
func ToEntryJSON(e schedule.ShiftEntry) EntryJSON {
	return EntryJSON{
		CompanyID:      string(e.CompanyID),
		TeamID:         string(e.TeamID),
		Date:           e.Date.String(),
		ShiftCode:      string(e.Code),
		StartTimestamp: isoTimestamp(e.Start),
		EndTimestamp:   isoTimestamp(e.End),
	}
}

// ToTeamScheduleJSON converts a batch result to the wire shape.
func ToTeamScheduleJSON(schedules []schedule.TeamSchedule) []TeamScheduleJSON {
	out := make([]TeamScheduleJSON, len(schedules))
	for i, ts := range schedules {
		entries := make([]EntryJSON, len(ts.Entries))
		for j, e := range ts.Entries {
			entries[j] = ToEntryJSON(e)
		}
		out[i] = TeamScheduleJSON{TeamID: string(ts.TeamID), Entries: entries}
	}
	return out
}

type JSON struct{}

func NewJSON() *JSON { return &JSON{} }

func (*JSON) ContentType() string   { return "application/json" }
func (*JSON) FileExtension() string { return "json" }

func (*JSON) Write(w io.Writer, schedules []schedule.TeamSchedule) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToTeamScheduleJSON(schedules))
}

func isoTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
