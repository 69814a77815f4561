package analytics_test

import (
	"time"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newHabit(id, schedule string, start time.Time, done ...time.Time) *domain.HabitSnapshot {
	history := make(map[string]int, len(done))
	for _, d := range done {
		history[domain.DayKey(d)] = 1
	}
	return &domain.HabitSnapshot{
		ID:                id,
		Name:              "Habit " + id,
		StartDate:         start,
		ScheduleText:      schedule,
		GoalText:          "1 time",
		CompletionHistory: history,
	}
}

func daysRange(from, to time.Time) []time.Time {
	var out []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

func activeVacation(from, to time.Time) *domain.VacationSchedule {
	return &domain.VacationSchedule{
		Active:  true,
		Periods: []domain.VacationPeriod{{Start: from, End: to}},
	}
}
