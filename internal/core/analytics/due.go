package analytics

import (
	"time"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

// IsDue reports whether h is expected to be acted upon on date. today anchors
// the monthly quota lookahead.
func (e *Engine) IsDue(h *domain.HabitSnapshot, date, today time.Time, vacation domain.VacationOracle) bool {
	return IsDue(h, e.Rule(h), date, today, vacation)
}

// IsDue evaluates an already parsed rule. Checks short-circuit in order:
// habit window, vacation exclusion, then the rule itself.
func IsDue(h *domain.HabitSnapshot, rule domain.ScheduleRule, date, today time.Time, vacation domain.VacationOracle) bool {
	if !h.ActiveOn(date) {
		return false
	}

	if domain.ExcludedByVacation(vacation, date) {
		return false
	}

	switch rule.Kind() {
	case domain.ScheduleDaily, domain.ScheduleWeeklyQuota:
		return true
	case domain.ScheduleWeekdays:
		return rule.Weekdays().Contains(domain.WeekdayNumber(date))
	case domain.ScheduleEveryNDays:
		elapsed := domain.DaysBetween(h.StartDate, date)
		return elapsed >= 0 && elapsed%rule.N() == 0
	case domain.ScheduleTimesPerWeek:
		weeks := domain.WeeksBetween(h.StartDate, date)
		return weeks >= 0 && weeks%rule.N() == 0
	case domain.ScheduleDaysPerMonth:
		return dueForMonthlyQuota(h, rule.N(), date, today)
	default:
		return false
	}
}

// dueForMonthlyQuota front-loads the remaining monthly quota into the days
// starting at today, so an unmet quota always shows upcoming due days.
func dueForMonthlyQuota(h *domain.HabitSnapshot, quota int, target, today time.Time) bool {
	if h.Progress(target) > 0 {
		return true
	}

	offset := domain.DaysBetween(today, target)
	if offset < 0 {
		return false
	}

	remainingNeeded := quota - h.CompletionsInMonth(target)
	if remainingNeeded <= 0 {
		return false
	}

	year, month, dayOfMonth := today.Date()
	daysRemaining := domain.DaysInMonth(year, month) - dayOfMonth + 1
	daysToShow := min(remainingNeeded, daysRemaining)

	return offset < daysToShow
}

// DueInfo bundles the due flag with the rule and day position for date.
func (e *Engine) DueInfo(h *domain.HabitSnapshot, date, today time.Time, vacation domain.VacationOracle) domain.DueInfo {
	rule := e.Rule(h)
	return domain.DueInfo{
		HabitID:    h.ID,
		Date:       domain.DayKey(date),
		Due:        IsDue(h, rule, date, today, vacation),
		Rule:       rule.Kind(),
		Schedule:   rule.String(),
		Completed:  h.IsCompleted(date),
		Percentage: h.CompletionPercentage(date),
		Position:   domain.PositionOf(date),
	}
}
