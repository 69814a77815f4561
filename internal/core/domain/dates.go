package domain

import "time"

const DayKeyLayout = "2006-01-02"

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayKey formats the calendar day of t as used by completion histories.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseDayKey parses a "YYYY-MM-DD" key in the given location.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DayKeyLayout, key, loc)
}

// DaysBetween counts calendar days from a to b. Only the date components are
// used, so DST transitions never shift the result. The difference is taken on
// Unix seconds rather than a Duration, which saturates after ~292 years.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC).Unix()
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC).Unix()
	return int((to - from) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// WeeksBetween counts whole elapsed weeks from a to b, rounding toward
// negative infinity.
func WeeksBetween(a, b time.Time) int {
	days := DaysBetween(a, b)
	if days < 0 {
		return -((-days + 6) / 7)
	}
	return days / 7
}

func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// WeekdayNumber maps t to the 1 (Sunday) .. 7 (Saturday) numbering.
func WeekdayNumber(t time.Time) int {
	return int(t.Weekday()) + 1
}

func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

func SameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}

// DayPosition reports how a date counts for weekly and monthly schedules.
type DayPosition struct {
	Weekday    int `json:"weekday"`
	DayOfMonth int `json:"day_of_month"`
	DayOfYear  int `json:"day_of_year"`
}

func PositionOf(t time.Time) DayPosition {
	return DayPosition{
		Weekday:    WeekdayNumber(t),
		DayOfMonth: t.Day(),
		DayOfYear:  t.YearDay(),
	}
}
