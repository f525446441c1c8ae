package schedule

import "time"

// =============================================================================
// DAY - Calendar-day time point (DST-agnostic)
// =============================================================================

// Day is a calendar date with no clock component. All cycle arithmetic is
// done on whole calendar days in UTC, so daylight-saving transitions in the
// local timezone can never shift a team into the wrong cycle position.
type Day struct {
	t time.Time
}

// Epoch is the single shared reference date for all companies and teams.
// Every phase offset in every configuration is expressed relative to this
// date. 2000-01-03 is a Monday, which keeps weekday arithmetic readable
// when debugging configurations.
var Epoch = NewDay(2000, time.January, 3)

const secondsPerDay = 24 * 60 * 60

var epochUnixDays = int(Epoch.t.Unix() / secondsPerDay)

func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates a time to its UTC calendar date.
func DayOf(t time.Time) Day {
	u := t.UTC()
	return NewDay(u.Year(), u.Month(), u.Day())
}

// Today returns the current UTC calendar date.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay parses an ISO 8601 date (2006-01-02).
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Day{}, err
	}
	return DayOf(t), nil
}

// Comparison
func (d Day) Before(other Day) bool        { return d.t.Before(other.t) }
func (d Day) After(other Day) bool         { return d.t.After(other.t) }
func (d Day) Equal(other Day) bool         { return d.t.Equal(other.t) }
func (d Day) BeforeOrEqual(other Day) bool { return !d.After(other) }
func (d Day) AfterOrEqual(other Day) bool  { return !d.Before(other) }

// Arithmetic
func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

// DaysSinceEpoch returns the signed whole-day distance from Epoch. Dates
// before the epoch yield negative values; callers must combine this with
// floor-mod (not truncating mod) to resolve a cycle position. The count is
// computed on Unix seconds, which stay exact for dates far outside the
// range a time.Duration can represent; both instants are UTC midnights,
// so the divisions are exact.
func (d Day) DaysSinceEpoch() int {
	return int(d.t.Unix()/secondsPerDay) - epochUnixDays
}

// Properties
func (d Day) Year() int             { return d.t.Year() }
func (d Day) Month() time.Month     { return d.t.Month() }
func (d Day) DayOfMonth() int       { return d.t.Day() }
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }
func (d Day) IsZero() bool          { return d.t.IsZero() }

// Time returns the UTC midnight instant of the day.
func (d Day) Time() time.Time { return d.t }

// At returns the instant at the given minute-of-day offset from the day's
// UTC midnight. Offsets beyond 24h roll into the following day, which is
// how night shift end times are materialized.
func (d Day) At(minuteOfDay int) time.Time {
	return d.t.Add(time.Duration(minuteOfDay) * time.Minute)
}

func (d Day) String() string { return d.t.Format("2006-01-02") }

// MarshalJSON encodes the day as an ISO 8601 date string.
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes an ISO 8601 date string.
func (d *Day) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// DATE RANGE - Inclusive on both ends, everywhere, with no exceptions
// =============================================================================

// DateRange is an inclusive [From, To] span of calendar days. Every range
// in the engine is inclusive on both ends; the first and last day are never
// treated differently from the days between them.
type DateRange struct {
	From Day
	To   Day
}

// Days returns the number of calendar days in the range, counting both ends.
func (r DateRange) Days() int {
	return r.To.DaysSinceEpoch() - r.From.DaysSinceEpoch() + 1
}

// Contains reports whether the day falls inside the range.
func (r DateRange) Contains(d Day) bool {
	return d.AfterOrEqual(r.From) && d.BeforeOrEqual(r.To)
}

// Each calls fn for every day in the range in ascending order.
func (r DateRange) Each(fn func(Day)) {
	for d := r.From; d.BeforeOrEqual(r.To); d = d.AddDays(1) {
		fn(d)
	}
}

func (r DateRange) String() string {
	return "[" + r.From.String() + ", " + r.To.String() + "]"
}

// floorMod returns x mod m with the sign of m, so negative x (dates before
// the epoch, or offsets subtracted past zero) still resolve to a valid
// cycle position in [0, m).
func floorMod(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}
