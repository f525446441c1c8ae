/*
Package export converts computed shift entries into delivery formats.

PURPOSE:
  Export adapters consume ScheduleCalculator output and format it for
  external consumers: spreadsheets (CSV, XLSX), calendar clients (ICS),
  APIs (JSON) and database seeding (SQL). Adapters contain NO scheduling
  logic: they never look at patterns or offsets, only at finished
  ShiftEntry values, and they resolve display semantics exclusively
  through the shared time table.

FORMATS:
  csv   Flat rows, one per (team, date)
  json  Stable ShiftEntry shape used by all API consumers
  ics   RFC 5545 calendar, one VEVENT per working entry
  sql   INSERT statements for seeding a relational store
  xlsx  One worksheet per team via excelize

USAGE:
  exp, err := export.ForFormat("ics", timetable)
  err = exp.Write(w, schedules)

SEE ALSO:
  - schedule/types.go: The ShiftEntry value being formatted
  - api/handlers.go:   The export endpoint selecting adapters by name
*/
package export

import (
	"fmt"
	"io"

	"github.com/skiftappen/shift-engine/schedule"
)

// Exporter writes team schedules in one delivery format.
type Exporter interface {
	// ContentType returns the MIME type for HTTP delivery.
	ContentType() string

	// FileExtension returns the extension without the dot.
	FileExtension() string

	// Write renders the schedules to w.
	Write(w io.Writer, schedules []schedule.TeamSchedule) error
}

// ForFormat returns the adapter for a format name.
func ForFormat(format string, timetable *schedule.TimeTable) (Exporter, error) {
	switch format {
	case "csv":
		return NewCSV(), nil
	case "json":
		return NewJSON(), nil
	case "ics":
		return NewICS(timetable), nil
	case "sql":
		return NewSQL(), nil
	case "xlsx":
		return NewXLSX(timetable), nil
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{"csv", "json", "ics", "sql", "xlsx"}
}
