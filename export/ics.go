package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/skiftappen/shift-engine/schedule"
)

// =============================================================================
// ICS ADAPTER - RFC 5545 calendar feed
// =============================================================================

// ICS renders one VEVENT per working entry. Off days produce no event.
// Times are emitted in UTC (Z suffix), matching how calendar clients
// expect industrial rosters that ignore local DST.
type ICS struct {
	timetable *schedule.TimeTable
}

func NewICS(timetable *schedule.TimeTable) *ICS {
	return &ICS{timetable: timetable}
}

func (*ICS) ContentType() string   { return "text/calendar" }
func (*ICS) FileExtension() string { return "ics" }

func (x *ICS) Write(w io.Writer, schedules []schedule.TeamSchedule) error {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//skiftappen//shift-engine//SV\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")

	for _, ts := range schedules {
		for _, e := range ts.Entries {
			if !e.IsWorking() {
				continue
			}
			summary := string(e.Code)
			if def, err := x.timetable.Resolve(e.Code); err == nil {
				summary = def.Name
			}
			teamLabel := string(e.TeamID)

			b.WriteString("BEGIN:VEVENT\r\n")
			fmt.Fprintf(&b, "UID:%s-%s-%s@shift-engine\r\n", e.CompanyID, e.TeamID, e.Date)
			fmt.Fprintf(&b, "DTSTART:%s\r\n", icsTime(*e.Start))
			fmt.Fprintf(&b, "DTEND:%s\r\n", icsTime(*e.End))
			fmt.Fprintf(&b, "SUMMARY:%s (%s)\r\n", escapeICS(summary), escapeICS(teamLabel))
			fmt.Fprintf(&b, "CATEGORIES:%s\r\n", escapeICS(string(e.Code)))
			b.WriteString("END:VEVENT\r\n")
		}
	}

	b.WriteString("END:VCALENDAR\r\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func icsTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes the characters RFC 5545 reserves in text values.
func escapeICS(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}
