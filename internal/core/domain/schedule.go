package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type ScheduleKind int

const (
	ScheduleUnrecognized ScheduleKind = iota
	ScheduleDaily
	ScheduleWeekdays
	ScheduleEveryNDays
	ScheduleTimesPerWeek
	// ScheduleWeeklyQuota is due every day; the weekly quota is enforced by
	// completion tracking, not by scheduling.
	ScheduleWeeklyQuota
	ScheduleDaysPerMonth
)

var scheduleKindNames = map[ScheduleKind]string{
	ScheduleUnrecognized: "unrecognized",
	ScheduleDaily:        "daily",
	ScheduleWeekdays:     "weekdays",
	ScheduleEveryNDays:   "every_n_days",
	ScheduleTimesPerWeek: "times_per_week",
	ScheduleWeeklyQuota:  "weekly_quota",
	ScheduleDaysPerMonth: "days_per_month",
}

func (k ScheduleKind) String() string {
	if name, ok := scheduleKindNames[k]; ok {
		return name
	}
	return scheduleKindNames[ScheduleUnrecognized]
}

func (k ScheduleKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// WeekdaySet is a bitmask over the 1 (Sunday) .. 7 (Saturday) numbering.
type WeekdaySet uint8

func NewWeekdaySet(days ...int) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		if d >= 1 && d <= 7 {
			s |= 1 << uint(d-1)
		}
	}
	return s
}

func (s WeekdaySet) Contains(day int) bool {
	if day < 1 || day > 7 {
		return false
	}
	return s&(1<<uint(day-1)) != 0
}

// Days returns the members in ascending order.
func (s WeekdaySet) Days() []int {
	var days []int
	for d := 1; d <= 7; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

func (s WeekdaySet) Empty() bool {
	return s == 0
}

var weekdayNames = [...]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// ScheduleRule is the normalized form of a free-text schedule. The zero value
// is the Unrecognized rule, which is never due.
type ScheduleRule struct {
	kind     ScheduleKind
	weekdays WeekdaySet
	n        int
}

func DailyRule() ScheduleRule { return ScheduleRule{kind: ScheduleDaily} }

func WeekdaysRule(days WeekdaySet) ScheduleRule {
	return ScheduleRule{kind: ScheduleWeekdays, weekdays: days}
}

func EveryNDaysRule(n int) ScheduleRule {
	return countedRule(ScheduleEveryNDays, n)
}

func TimesPerWeekRule(n int) ScheduleRule {
	return countedRule(ScheduleTimesPerWeek, n)
}

func WeeklyQuotaRule(n int) ScheduleRule {
	return countedRule(ScheduleWeeklyQuota, n)
}

func DaysPerMonthRule(n int) ScheduleRule {
	return countedRule(ScheduleDaysPerMonth, n)
}

func countedRule(kind ScheduleKind, n int) ScheduleRule {
	if n <= 0 {
		return ScheduleRule{}
	}
	return ScheduleRule{kind: kind, n: n}
}

func (r ScheduleRule) Kind() ScheduleKind   { return r.kind }
func (r ScheduleRule) Weekdays() WeekdaySet { return r.weekdays }

// N is the count carried by EveryNDays, TimesPerWeek, WeeklyQuota and
// DaysPerMonth rules; zero for the others.
func (r ScheduleRule) N() int { return r.n }

func (r ScheduleRule) String() string {
	switch r.kind {
	case ScheduleDaily:
		return "Everyday"
	case ScheduleWeekdays:
		names := make([]string, 0, 7)
		for _, d := range r.weekdays.Days() {
			name := weekdayNames[d-1]
			names = append(names, strings.ToUpper(name[:1])+name[1:])
		}
		return "Every " + strings.Join(names, ", ")
	case ScheduleEveryNDays:
		return fmt.Sprintf("Every %d days", r.n)
	case ScheduleTimesPerWeek:
		return fmt.Sprintf("%d times a week", r.n)
	case ScheduleWeeklyQuota:
		return fmt.Sprintf("%d days a week", r.n)
	case ScheduleDaysPerMonth:
		return fmt.Sprintf("%d days a month", r.n)
	default:
		return "Unrecognized"
	}
}

var (
	everyNDaysRegex   = regexp.MustCompile(`^every\s+(\d+)\s+days?$`)
	timesAWeekRegex   = regexp.MustCompile(`(\d+)\s+times\s+a\s+week`)
	daysAWeekRegex    = regexp.MustCompile(`(once|twice|\d+\s+days?)\s+a\s+week`)
	daysAMonthRegex   = regexp.MustCompile(`(once|twice|\d+\s+days?)\s+a\s+month`)
	leadingCountRegex = regexp.MustCompile(`^\d+`)
)

// ParseSchedule converts a schedule descriptor into a rule. It is total:
// anything it does not recognize becomes the Unrecognized rule.
func ParseSchedule(text string) ScheduleRule {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return ScheduleRule{}
	}

	if strings.Contains(s, ",") {
		return WeekdaysRule(ExtractWeekdays(s))
	}

	if s == "everyday" || s == "every day" {
		return DailyRule()
	}

	if m := everyNDaysRegex.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return EveryNDaysRule(n)
		}
	}

	if strings.HasPrefix(s, "every ") && !strings.Contains(s, "days") {
		return WeekdaysRule(ExtractWeekdays(s))
	}

	if m := timesAWeekRegex.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return TimesPerWeekRule(n)
		}
	}

	if m := daysAWeekRegex.FindStringSubmatch(s); m != nil {
		if n := quotaCount(m[1]); n > 0 {
			return WeeklyQuotaRule(n)
		}
	}

	if m := daysAMonthRegex.FindStringSubmatch(s); m != nil {
		if n := quotaCount(m[1]); n > 0 {
			return DaysPerMonthRule(n)
		}
	}

	return ScheduleRule{}
}

func quotaCount(token string) int {
	switch token {
	case "once":
		return 1
	case "twice":
		return 2
	}
	n, err := strconv.Atoi(leadingCountRegex.FindString(token))
	if err != nil {
		return 0
	}
	return n
}

// ExtractWeekdays collects every English weekday name found in s.
func ExtractWeekdays(s string) WeekdaySet {
	lower := strings.ToLower(s)
	var set WeekdaySet
	for i, name := range weekdayNames {
		if strings.Contains(lower, name) {
			set |= NewWeekdaySet(i + 1)
		}
	}
	return set
}
