package export

import (
	"encoding/csv"
	"io"
	"time"

	"github.com/skiftappen/shift-engine/schedule"
)

// =============================================================================
// CSV ADAPTER
// =============================================================================

// CSV writes one row per (team, date). Off days carry empty time columns.
type CSV struct{}

func NewCSV() *CSV { return &CSV{} }

func (*CSV) ContentType() string   { return "text/csv" }
func (*CSV) FileExtension() string { return "csv" }

func (*CSV) Write(w io.Writer, schedules []schedule.TeamSchedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"company_id", "team_id", "date", "shift_code", "start", "end"}); err != nil {
		return err
	}
	for _, ts := range schedules {
		for _, e := range ts.Entries {
			row := []string{
				string(e.CompanyID),
				string(e.TeamID),
				e.Date.String(),
				string(e.Code),
				formatTimestamp(e.Start),
				formatTimestamp(e.End),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
