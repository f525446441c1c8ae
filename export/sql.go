package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/skiftappen/shift-engine/schedule"
)

// =============================================================================
// SQL ADAPTER - INSERT statements for seeding a relational store
// =============================================================================

// SQL emits portable INSERT statements so generated schedules can seed the
// remote store consumed by the app's sync layer. Timestamps are NULL for
// off days.
type SQL struct{}

func NewSQL() *SQL { return &SQL{} }

func (*SQL) ContentType() string   { return "application/sql" }
func (*SQL) FileExtension() string { return "sql" }

func (*SQL) Write(w io.Writer, schedules []schedule.TeamSchedule) error {
	var b strings.Builder
	b.WriteString("BEGIN;\n")
	for _, ts := range schedules {
		for _, e := range ts.Entries {
			fmt.Fprintf(&b,
				"INSERT INTO shift_entries (company_id, team_id, date, shift_code, start_at, end_at) VALUES (%s, %s, %s, %s, %s, %s);\n",
				sqlString(string(e.CompanyID)),
				sqlString(string(e.TeamID)),
				sqlString(e.Date.String()),
				sqlString(string(e.Code)),
				sqlTimestamp(e.Start),
				sqlTimestamp(e.End),
			)
		}
	}
	b.WriteString("COMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func sqlString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func sqlTimestamp(t *time.Time) string {
	if t == nil {
		return "NULL"
	}
	return "'" + t.UTC().Format("2006-01-02 15:04:05") + "'"
}
