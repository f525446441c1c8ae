package schedule_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/skiftappen/shift-engine/schedule"
)

// =============================================================================
// TEST FIXTURE
// =============================================================================

// newTestRegistry builds two companies on the default time table:
//
//	stalverket: 10-day 2-2-2 rotation, five teams at offsets 0,2,4,6,8,
//	            round-the-clock coverage {F:1, E:1, N:1}
//	bruket:     same rotation, two teams, no coverage rule,
//	            lag-b staffed only from 2024-03-01
func newTestRegistry(t *testing.T) *schedule.Registry {
	t.Helper()

	catalog := schedule.NewPatternCatalog(schedule.DefaultTimeTable())
	err := catalog.Register(schedule.Pattern{
		ID:          "2-2-2",
		Name:        "Kontinuerlig 2-2-2",
		CycleLength: 10,
		Sequence: []schedule.ShiftCode{
			"F", "F", "E", "E", "N", "N", "L", "L", "L", "L",
		},
		Version: 1,
	})
	if err != nil {
		t.Fatalf("register pattern: %v", err)
	}

	registry := schedule.NewRegistry(catalog)
	err = registry.Register(schedule.CompanyConfig{
		ID:        "stalverket",
		Name:      "Stålverket AB",
		Industry:  "steel",
		Location:  "Oxelösund",
		PatternID: "2-2-2",
		Teams: []schedule.TeamPhase{
			{TeamID: "lag-1", Name: "Lag 1", PhaseOffset: 0},
			{TeamID: "lag-2", Name: "Lag 2", PhaseOffset: 2},
			{TeamID: "lag-3", Name: "Lag 3", PhaseOffset: 4},
			{TeamID: "lag-4", Name: "Lag 4", PhaseOffset: 6},
			{TeamID: "lag-5", Name: "Lag 5", PhaseOffset: 8},
		},
		RequiredCoverage: schedule.Coverage{"F": 1, "E": 1, "N": 1},
	})
	if err != nil {
		t.Fatalf("register stalverket: %v", err)
	}

	activation := schedule.NewDay(2024, time.March, 1)
	err = registry.Register(schedule.CompanyConfig{
		ID:        "bruket",
		Name:      "Bruket AB",
		Industry:  "paper",
		Location:  "Sundsvall",
		PatternID: "2-2-2",
		Teams: []schedule.TeamPhase{
			{TeamID: "lag-a", Name: "Lag A", PhaseOffset: 0},
			{TeamID: "lag-b", Name: "Lag B", PhaseOffset: 5, ActivationDate: &activation},
		},
	})
	if err != nil {
		t.Fatalf("register bruket: %v", err)
	}
	return registry
}

func newTestCalculator(t *testing.T) *schedule.Calculator {
	t.Helper()
	return schedule.NewCalculator(newTestRegistry(t))
}

// =============================================================================
// SINGLE-DAY RESOLUTION
// =============================================================================

func TestShiftFor_FollowsPatternSequence(t *testing.T) {
	// GIVEN: lag-1 at phase offset 0
	calc := newTestCalculator(t)

	// WHEN/THEN: the first cycle after the epoch reads the sequence directly
	want := []schedule.ShiftCode{"F", "F", "E", "E", "N", "N", "L", "L", "L", "L"}
	for i, code := range want {
		entry, err := calc.ShiftFor("stalverket", "lag-1", schedule.Epoch.AddDays(i))
		if err != nil {
			t.Fatalf("ShiftFor day %d: %v", i, err)
		}
		if entry.Code != code {
			t.Errorf("day %d: code = %q, want %q", i, entry.Code, code)
		}
	}
}

func TestShiftFor_Deterministic(t *testing.T) {
	calc := newTestCalculator(t)
	date := schedule.NewDay(2025, time.August, 14)

	first, err := calc.ShiftFor("stalverket", "lag-3", date)
	if err != nil {
		t.Fatalf("ShiftFor: %v", err)
	}
	second, err := calc.ShiftFor("stalverket", "lag-3", date)
	if err != nil {
		t.Fatalf("ShiftFor: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same inputs gave different entries:\n%+v\n%+v", first, second)
	}
}

func TestShiftFor_CyclePeriodicity(t *testing.T) {
	// The rotation repeats exactly every cycle length, forwards and back.
	calc := newTestCalculator(t)
	base := schedule.NewDay(2025, time.January, 1)

	for i := 0; i < 10; i++ {
		d := base.AddDays(i)
		at, err := calc.ShiftFor("stalverket", "lag-2", d)
		if err != nil {
			t.Fatalf("ShiftFor: %v", err)
		}
		next, err := calc.ShiftFor("stalverket", "lag-2", d.AddDays(10))
		if err != nil {
			t.Fatalf("ShiftFor: %v", err)
		}
		prev, err := calc.ShiftFor("stalverket", "lag-2", d.AddDays(-10))
		if err != nil {
			t.Fatalf("ShiftFor: %v", err)
		}
		if at.Code != next.Code || at.Code != prev.Code {
			t.Errorf("%v: codes %q/%q/%q differ across cycles", d, prev.Code, at.Code, next.Code)
		}
	}
}

func TestShiftFor_PhaseOffsetShiftsSequence(t *testing.T) {
	// At the epoch each team reads the sequence at its own offset.
	calc := newTestCalculator(t)

	wantByTeam := map[schedule.TeamID]schedule.ShiftCode{
		"lag-1": "F", // position 0
		"lag-2": "E", // position 2
		"lag-3": "N", // position 4
		"lag-4": "L", // position 6
		"lag-5": "L", // position 8
	}
	for team, want := range wantByTeam {
		entry, err := calc.ShiftFor("stalverket", team, schedule.Epoch)
		if err != nil {
			t.Fatalf("ShiftFor %s: %v", team, err)
		}
		if entry.Code != want {
			t.Errorf("%s at epoch: code = %q, want %q", team, entry.Code, want)
		}
	}
}

func TestShiftFor_DatesBeforeEpoch(t *testing.T) {
	// Negative day counts still land on a valid cycle position.
	calc := newTestCalculator(t)

	entry, err := calc.ShiftFor("stalverket", "lag-1", schedule.Epoch.AddDays(-1))
	if err != nil {
		t.Fatalf("ShiftFor: %v", err)
	}
	if entry.Code != "L" {
		t.Errorf("epoch-1: code = %q, want L (position 9)", entry.Code)
	}

	entry, err = calc.ShiftFor("stalverket", "lag-1", schedule.Epoch.AddDays(-6))
	if err != nil {
		t.Fatalf("ShiftFor: %v", err)
	}
	if entry.Code != "N" {
		t.Errorf("epoch-6: code = %q, want N (position 4)", entry.Code)
	}
}

func TestShiftFor_FarFutureDates(t *testing.T) {
	// Cycle arithmetic stays exact for dates centuries ahead: consecutive
	// days advance the position and the rotation still repeats per cycle.
	calc := newTestCalculator(t)
	base := schedule.NewDay(2400, time.January, 1)

	pos, err := calc.CyclePosition("stalverket", "lag-1", base)
	if err != nil {
		t.Fatalf("CyclePosition: %v", err)
	}
	next, err := calc.CyclePosition("stalverket", "lag-1", base.AddDays(1))
	if err != nil {
		t.Fatalf("CyclePosition: %v", err)
	}
	if next != (pos+1)%10 {
		t.Errorf("positions %d then %d, want consecutive", pos, next)
	}

	at, err := calc.ShiftFor("stalverket", "lag-1", base)
	if err != nil {
		t.Fatalf("ShiftFor: %v", err)
	}
	later, err := calc.ShiftFor("stalverket", "lag-1", base.AddDays(10))
	if err != nil {
		t.Fatalf("ShiftFor: %v", err)
	}
	if at.Code != later.Code {
		t.Errorf("codes %q and %q differ one cycle apart", at.Code, later.Code)
	}
}

func TestShiftFor_NightShiftRollsOverMidnight(t *testing.T) {
	// GIVEN: lag-1 works N on epoch+4
	calc := newTestCalculator(t)
	date := schedule.Epoch.AddDays(4)

	entry, err := calc.ShiftFor("stalverket", "lag-1", date)
	if err != nil {
		t.Fatalf("ShiftFor: %v", err)
	}
	if entry.Code != "N" {
		t.Fatalf("code = %q, want N", entry.Code)
	}

	// THEN: start is 22:00 on the entry date, end is 06:00 the next day
	wantStart := date.At(22 * 60)
	wantEnd := date.AddDays(1).At(6 * 60)
	if entry.Start == nil || !entry.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", entry.Start, wantStart)
	}
	if entry.End == nil || !entry.End.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", entry.End, wantEnd)
	}
	if got := entry.Hours(); !got.Equal(decimal.NewFromInt(8)) {
		t.Errorf("hours = %v, want 8", got)
	}
}

func TestShiftFor_OffDayHasNoTimes(t *testing.T) {
	calc := newTestCalculator(t)

	entry, err := calc.ShiftFor("stalverket", "lag-1", schedule.Epoch.AddDays(7))
	if err != nil {
		t.Fatalf("ShiftFor: %v", err)
	}
	if entry.Code != "L" {
		t.Fatalf("code = %q, want L", entry.Code)
	}
	if entry.Start != nil || entry.End != nil {
		t.Error("off day must not carry start/end times")
	}
	if entry.IsWorking() {
		t.Error("off day reported as working")
	}
	if !entry.Hours().IsZero() {
		t.Errorf("off day hours = %v, want 0", entry.Hours())
	}
}

func TestShiftFor_BeforeActivationDateIsOff(t *testing.T) {
	// GIVEN: lag-b is staffed from 2024-03-01
	calc := newTestCalculator(t)

	before, err := calc.ShiftFor("bruket", "lag-b", schedule.NewDay(2024, time.February, 29))
	if err != nil {
		t.Fatalf("ShiftFor: %v", err)
	}
	if before.Code != "L" || before.Start != nil {
		t.Errorf("before activation: entry = %+v, want off", before)
	}

	// From the activation date the team follows its normal phase.
	activation := schedule.NewDay(2024, time.March, 1)
	on, err := calc.ShiftFor("bruket", "lag-b", activation)
	if err != nil {
		t.Fatalf("ShiftFor: %v", err)
	}
	pos, err := calc.CyclePosition("bruket", "lag-b", activation)
	if err != nil {
		t.Fatalf("CyclePosition: %v", err)
	}
	want := []schedule.ShiftCode{"F", "F", "E", "E", "N", "N", "L", "L", "L", "L"}[pos]
	if on.Code != want {
		t.Errorf("on activation: code = %q, want %q", on.Code, want)
	}
}

func TestShiftFor_UnknownCompanyAndTeam(t *testing.T) {
	calc := newTestCalculator(t)
	date := schedule.NewDay(2025, time.January, 1)

	_, err := calc.ShiftFor("nope", "lag-1", date)
	if !errors.Is(err, schedule.ErrCompanyNotFound) {
		t.Errorf("unknown company: err = %v, want ErrCompanyNotFound", err)
	}
	if !schedule.IsNotFound(err) {
		t.Errorf("unknown company must classify as not-found, got %v", err)
	}

	_, err = calc.ShiftFor("stalverket", "lag-99", date)
	if !errors.Is(err, schedule.ErrTeamNotFound) {
		t.Errorf("unknown team: err = %v, want ErrTeamNotFound", err)
	}
}

// =============================================================================
// CYCLE POSITION
// =============================================================================

func TestCyclePosition(t *testing.T) {
	calc := newTestCalculator(t)

	cases := []struct {
		team schedule.TeamID
		date schedule.Day
		want int
	}{
		{"lag-1", schedule.Epoch, 0},
		{"lag-2", schedule.Epoch, 2},
		{"lag-1", schedule.Epoch.AddDays(13), 3},
		{"lag-5", schedule.Epoch.AddDays(3), 1}, // (3+8) mod 10
		{"lag-1", schedule.Epoch.AddDays(-1), 9},
	}
	for _, c := range cases {
		got, err := calc.CyclePosition("stalverket", c.team, c.date)
		if err != nil {
			t.Fatalf("CyclePosition(%s, %v): %v", c.team, c.date, err)
		}
		if got != c.want {
			t.Errorf("CyclePosition(%s, %v) = %d, want %d", c.team, c.date, got, c.want)
		}
	}
}

// =============================================================================
// RANGE GENERATION
// =============================================================================

func TestShiftsFor_InclusiveRange(t *testing.T) {
	calc := newTestCalculator(t)
	from := schedule.NewDay(2025, time.January, 1)

	single, err := calc.ShiftsFor("stalverket", "lag-1", from, from)
	if err != nil {
		t.Fatalf("ShiftsFor: %v", err)
	}
	if len(single) != 1 {
		t.Errorf("from==to gave %d entries, want 1", len(single))
	}

	week, err := calc.ShiftsFor("stalverket", "lag-1", from, from.AddDays(6))
	if err != nil {
		t.Fatalf("ShiftsFor: %v", err)
	}
	if len(week) != 7 {
		t.Fatalf("7-day range gave %d entries, want 7", len(week))
	}
	if !week[0].Date.Equal(from) || !week[6].Date.Equal(from.AddDays(6)) {
		t.Errorf("range endpoints %v..%v, want %v..%v", week[0].Date, week[6].Date, from, from.AddDays(6))
	}
	for i := 1; i < len(week); i++ {
		if !week[i].Date.Equal(week[i-1].Date.AddDays(1)) {
			t.Errorf("entries not consecutive at index %d", i)
		}
	}
}

func TestShiftsFor_InvalidRanges(t *testing.T) {
	calc := newTestCalculator(t)
	from := schedule.NewDay(2025, time.June, 1)

	_, err := calc.ShiftsFor("stalverket", "lag-1", from, from.AddDays(-1))
	if !errors.Is(err, schedule.ErrInvalidRange) {
		t.Errorf("from after to: err = %v, want ErrInvalidRange", err)
	}
	if !schedule.IsClientError(err) {
		t.Errorf("range error must classify as client error, got %v", err)
	}

	_, err = calc.ShiftsFor("stalverket", "lag-1", from, from.AddDays(schedule.MaxRangeDays))
	if !errors.Is(err, schedule.ErrInvalidRange) {
		t.Errorf("oversized span: err = %v, want ErrInvalidRange", err)
	}

	// Spans of several centuries are refused too, not silently truncated;
	// the day count backing the check must not saturate.
	_, err = calc.ShiftsFor("stalverket", "lag-1",
		schedule.NewDay(2290, time.January, 1), schedule.NewDay(2590, time.January, 1))
	if !errors.Is(err, schedule.ErrInvalidRange) {
		t.Errorf("300-year span: err = %v, want ErrInvalidRange", err)
	}

	// The maximum span itself is allowed.
	entries, err := calc.ShiftsFor("stalverket", "lag-1", from, from.AddDays(schedule.MaxRangeDays-1))
	if err != nil {
		t.Fatalf("max span: %v", err)
	}
	if len(entries) != schedule.MaxRangeDays {
		t.Errorf("max span gave %d entries, want %d", len(entries), schedule.MaxRangeDays)
	}
}

func TestShiftsForAllTeams(t *testing.T) {
	calc := newTestCalculator(t)
	from := schedule.NewDay(2025, time.January, 1)
	to := from.AddDays(9)

	schedules, err := calc.ShiftsForAllTeams("stalverket", from, to)
	if err != nil {
		t.Fatalf("ShiftsForAllTeams: %v", err)
	}
	if len(schedules) != 5 {
		t.Fatalf("got %d team schedules, want 5", len(schedules))
	}

	// Team order matches registration order, regardless of which worker
	// finished first.
	wantOrder := []schedule.TeamID{"lag-1", "lag-2", "lag-3", "lag-4", "lag-5"}
	for i, ts := range schedules {
		if ts.TeamID != wantOrder[i] {
			t.Errorf("position %d: team = %s, want %s", i, ts.TeamID, wantOrder[i])
		}
		if len(ts.Entries) != 10 {
			t.Errorf("%s: %d entries, want 10", ts.TeamID, len(ts.Entries))
		}
	}

	// Batch output is identical to per-team generation.
	solo, err := calc.ShiftsFor("stalverket", "lag-3", from, to)
	if err != nil {
		t.Fatalf("ShiftsFor: %v", err)
	}
	if !reflect.DeepEqual(schedules[2].Entries, solo) {
		t.Error("batch entries for lag-3 differ from per-team generation")
	}
}

func TestShiftsForAllTeams_UnknownCompany(t *testing.T) {
	calc := newTestCalculator(t)
	from := schedule.NewDay(2025, time.January, 1)

	_, err := calc.ShiftsForAllTeams("nope", from, from)
	if !schedule.IsNotFound(err) {
		t.Errorf("err = %v, want not-found", err)
	}
}

// =============================================================================
// YEAR STATISTICS
// =============================================================================

func TestYearStats(t *testing.T) {
	calc := newTestCalculator(t)

	stats, err := calc.YearStats("stalverket", "lag-1", 2025)
	if err != nil {
		t.Fatalf("YearStats: %v", err)
	}

	if stats.WorkedDays+stats.OffDays != 365 {
		t.Errorf("worked %d + off %d != 365", stats.WorkedDays, stats.OffDays)
	}
	// 6 working positions in a 10-day cycle: either 219 or 220 over a year
	// depending on where the year starts in the cycle.
	if stats.WorkedDays < 218 || stats.WorkedDays > 220 {
		t.Errorf("worked days = %d, outside plausible band", stats.WorkedDays)
	}
	// Every working shift in the default table is 8 hours.
	wantHours := decimal.NewFromInt(int64(stats.WorkedDays * 8))
	if !stats.TotalHours.Equal(wantHours) {
		t.Errorf("total hours = %v, want %v", stats.TotalHours, wantHours)
	}

	total := 0
	for _, n := range stats.DaysByCode {
		total += n
	}
	if total != 365 {
		t.Errorf("DaysByCode sums to %d, want 365", total)
	}
	if stats.DaysByCode["L"] != stats.OffDays {
		t.Errorf("L days %d != OffDays %d", stats.DaysByCode["L"], stats.OffDays)
	}
}

func TestYearStats_LeapYear(t *testing.T) {
	calc := newTestCalculator(t)

	stats, err := calc.YearStats("stalverket", "lag-1", 2024)
	if err != nil {
		t.Fatalf("YearStats: %v", err)
	}
	if stats.WorkedDays+stats.OffDays != 366 {
		t.Errorf("worked %d + off %d != 366", stats.WorkedDays, stats.OffDays)
	}
}
