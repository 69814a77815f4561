package analytics

import (
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

const ConsistencyWindowDays = 7

// CurrentStreak counts consecutive days, ending yesterday, on which every
// habit in the set was completed. Today never breaks the streak. Habits that
// were not due on a day are still required. Active vacation days are skipped
// as well, which goes beyond the plain every-habit-every-day rule: a vacation
// day neither extends nor breaks the run, matching BestStreak.
func (e *Engine) CurrentStreak(habits []*domain.HabitSnapshot, today time.Time, vacation domain.VacationOracle) int {
	if len(habits) == 0 {
		return 0
	}

	floor := earliestRecord(habits, today.Location())
	streak := 0

	for d := domain.AddDays(domain.StartOfDay(today), -1); !d.Before(floor); d = domain.AddDays(d, -1) {
		if domain.ExcludedByVacation(vacation, d) {
			continue
		}

		allDone := lo.EveryBy(habits, func(h *domain.HabitSnapshot) bool {
			return h.IsCompleted(d)
		})
		if !allDone {
			break
		}
		streak++
	}

	return streak
}

// BestStreak is the longest run of completed days from the habit's start
// through today. Active vacation days neither extend nor break a run.
func (e *Engine) BestStreak(h *domain.HabitSnapshot, today time.Time, vacation domain.VacationOracle) int {
	y, m, d := h.StartDate.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	end := domain.StartOfDay(today)

	best, run := 0, 0
	for day := start; !day.After(end); day = domain.AddDays(day, 1) {
		if domain.ExcludedByVacation(vacation, day) {
			continue
		}

		if h.IsCompleted(day) {
			run++
			best = max(best, run)
		} else {
			run = 0
		}
	}

	return best
}

// LongestStreak is the best streak across the set.
func (e *Engine) LongestStreak(habits []*domain.HabitSnapshot, today time.Time, vacation domain.VacationOracle) int {
	longest := 0
	for _, h := range habits {
		longest = max(longest, e.BestStreak(h, today, vacation))
	}
	return longest
}

// ConsistencyRate is the percentage of habit x day slots completed over the
// trailing week ending today. Active vacation days leave the denominator.
func (e *Engine) ConsistencyRate(habits []*domain.HabitSnapshot, today time.Time, vacation domain.VacationOracle) float64 {
	slots, completed := 0, 0
	end := domain.StartOfDay(today)

	for i := ConsistencyWindowDays - 1; i >= 0; i-- {
		d := domain.AddDays(end, -i)
		if domain.ExcludedByVacation(vacation, d) {
			continue
		}
		for _, h := range habits {
			slots++
			if h.IsCompleted(d) {
				completed++
			}
		}
	}

	if slots == 0 {
		return 0
	}
	return float64(completed) / float64(slots) * 100
}

// CompletedToday counts habits with any progress recorded for today.
func (e *Engine) CompletedToday(habits []*domain.HabitSnapshot, today time.Time) int {
	return lo.CountBy(habits, func(h *domain.HabitSnapshot) bool {
		return h.IsCompleted(today)
	})
}

func (e *Engine) Statistics(habits []*domain.HabitSnapshot, today time.Time, vacation domain.VacationOracle) domain.StreakStatistics {
	stats := domain.StreakStatistics{
		CurrentStreak:            e.CurrentStreak(habits, today, vacation),
		LongestStreak:            e.LongestStreak(habits, today, vacation),
		TotalCompletionDaysToday: e.CompletedToday(habits, today),
		ConsistencyRate:          e.ConsistencyRate(habits, today, vacation),
	}

	e.logger.Debug("streak statistics computed",
		slog.Int("habits", len(habits)),
		slog.Int("current", stats.CurrentStreak),
		slog.Int("longest", stats.LongestStreak),
	)

	return stats
}

// earliestRecord bounds backward walks: no habit can be completed before it.
func earliestRecord(habits []*domain.HabitSnapshot, loc *time.Location) time.Time {
	floor := habits[0].EarliestRecord(loc)
	for _, h := range habits[1:] {
		if r := h.EarliestRecord(loc); r.Before(floor) {
			floor = r
		}
	}
	return floor
}
