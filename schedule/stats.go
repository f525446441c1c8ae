package schedule

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// TEAM STATISTICS - Pure fold over calculator output
// =============================================================================

// TeamYearStats summarizes one team's scheduled year: how many days of
// each code and the total scheduled hours.
type TeamYearStats struct {
	CompanyID  CompanyID         `json:"companyId"`
	TeamID     TeamID            `json:"teamId"`
	Year       int               `json:"year"`
	DaysByCode map[ShiftCode]int `json:"daysByCode"`
	WorkedDays int               `json:"workedDays"`
	OffDays    int               `json:"offDays"`
	TotalHours decimal.Decimal   `json:"totalHours"`
}

// YearStats computes the statistics for one team over a calendar year.
func (c *Calculator) YearStats(companyID CompanyID, teamID TeamID, year int) (*TeamYearStats, error) {
	from := NewDay(year, time.January, 1)
	to := NewDay(year, time.December, 31)

	entries, err := c.ShiftsFor(companyID, teamID, from, to)
	if err != nil {
		return nil, err
	}

	stats := &TeamYearStats{
		CompanyID:  companyID,
		TeamID:     teamID,
		Year:       year,
		DaysByCode: make(map[ShiftCode]int),
		TotalHours: decimal.Zero,
	}
	for _, e := range entries {
		stats.DaysByCode[e.Code]++
		if e.IsWorking() {
			stats.WorkedDays++
			stats.TotalHours = stats.TotalHours.Add(e.Hours())
		} else {
			stats.OffDays++
		}
	}
	return stats, nil
}
