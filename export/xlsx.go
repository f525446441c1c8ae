package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/skiftappen/shift-engine/schedule"
)

// =============================================================================
// XLSX ADAPTER - One worksheet per team via excelize
// =============================================================================

// XLSX writes a workbook with one sheet per team: date, weekday, code,
// display name and times. Planners live in spreadsheets; this is the
// format they actually open.
type XLSX struct {
	timetable *schedule.TimeTable
}

func NewXLSX(timetable *schedule.TimeTable) *XLSX {
	return &XLSX{timetable: timetable}
}

func (*XLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (*XLSX) FileExtension() string { return "xlsx" }

func (x *XLSX) Write(w io.Writer, schedules []schedule.TeamSchedule) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, ts := range schedules {
		sheet := string(ts.TeamID)
		if i == 0 {
			// Rename the default sheet instead of leaving "Sheet1" behind.
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return err
			}
		}

		header := []any{"Datum", "Veckodag", "Kod", "Skift", "Start", "Slut"}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}

		for row, e := range ts.Entries {
			name := string(e.Code)
			if def, err := x.timetable.Resolve(e.Code); err == nil {
				name = def.Name
			}
			start, end := "", ""
			if e.Start != nil {
				start = e.Start.UTC().Format("15:04")
			}
			if e.End != nil {
				end = e.End.UTC().Format("15:04")
			}
			cell := fmt.Sprintf("A%d", row+2)
			values := []any{
				e.Date.String(),
				e.Date.Weekday().String(),
				string(e.Code),
				name,
				start,
				end,
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return err
			}
		}
	}

	_, err := f.WriteTo(w)
	return err
}
