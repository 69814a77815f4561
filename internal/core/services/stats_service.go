package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

type StatsService struct {
	habitRepo    domain.HabitRepository
	vacationRepo domain.VacationRepository
	engine       *analytics.Engine
	opts         options
}

func NewStatsService(habitRepo domain.HabitRepository, vacationRepo domain.VacationRepository, engine *analytics.Engine, opts ...Option) *StatsService {
	return &StatsService{
		habitRepo:    habitRepo,
		vacationRepo: vacationRepo,
		engine:       engine,
		opts:         buildOptions(opts),
	}
}

func (s *StatsService) today(t time.Time) time.Time {
	if t.IsZero() {
		return domain.StartOfDay(s.opts.clock())
	}
	return domain.StartOfDay(t)
}

// GetStreakStatistics computes the aggregate streak, longest streak, today's
// completions and consistency for all of the user's habits.
func (s *StatsService) GetStreakStatistics(ctx context.Context, userID string, today time.Time) (*domain.StreakStatistics, error) {
	started := time.Now()

	habits, vacation, err := loadUserData(ctx, s.habitRepo, s.vacationRepo, userID)
	if err != nil {
		return nil, err
	}

	stats := s.engine.Statistics(habits, s.today(today), vacation)
	s.opts.metrics.ObserveStats(time.Since(started).Seconds())

	return &stats, nil
}

// GetWeeklyStats reports, per habit, how many scheduled days in the range were
// completed. Only due days count toward the rates.
func (s *StatsService) GetWeeklyStats(ctx context.Context, input domain.StatsInput) (*domain.WeeklyStats, error) {
	loc := input.Location
	if loc == nil {
		loc = time.UTC
	}
	startDate := domain.StartOfDay(input.StartDate.In(loc))
	endDate := domain.StartOfDay(input.EndDate.In(loc))
	today := s.today(s.opts.clock().In(loc))

	habits, vacation, err := loadUserData(ctx, s.habitRepo, s.vacationRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	stats := &domain.WeeklyStats{
		StartDate:   domain.DayKey(startDate),
		EndDate:     domain.DayKey(endDate),
		TotalHabits: len(habits),
		HabitStats:  make([]domain.HabitStat, 0, len(habits)),
	}

	totalScheduled := 0
	totalCompleted := 0

	for _, h := range habits {
		rule := s.engine.Rule(h)
		hStat := domain.HabitStat{
			HabitID:       h.ID,
			HabitName:     h.Name,
			Schedule:      rule.String(),
			GoalAmount:    h.GoalAmount(),
			DailyProgress: make([]int, 0),
		}

		for d := startDate; !d.After(endDate); d = domain.AddDays(d, 1) {
			val := h.Progress(d)
			hStat.TotalValue += val
			hStat.DailyProgress = append(hStat.DailyProgress, val)

			if !analytics.IsDue(h, rule, d, today, vacation) {
				continue
			}
			hStat.ScheduledDays++
			if h.IsCompleted(d) {
				hStat.DaysCompleted++
			}
		}

		if hStat.ScheduledDays > 0 {
			hStat.CompletionRate = float64(hStat.DaysCompleted) / float64(hStat.ScheduledDays) * 100
		}
		totalScheduled += hStat.ScheduledDays
		totalCompleted += hStat.DaysCompleted

		stats.HabitStats = append(stats.HabitStats, hStat)
	}

	if totalScheduled > 0 {
		stats.OverallRate = float64(totalCompleted) / float64(totalScheduled) * 100
	}

	s.opts.logger.Debug("weekly stats computed",
		slog.String("user_id", input.UserID),
		slog.Int("habits", len(habits)),
		slog.Float64("overall_rate", stats.OverallRate),
	)

	return stats, nil
}

// GetDueInfo answers whether one of the user's habits is due on date.
func (s *StatsService) GetDueInfo(ctx context.Context, userID, habitID string, date, today time.Time) (*domain.DueInfo, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	var vacation domain.VacationOracle = domain.NoVacation
	if s.vacationRepo != nil {
		v, err := s.vacationRepo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load vacation schedule: %w", err)
		}
		if v != nil {
			vacation = v
		}
	}

	today = s.today(today)
	if date.IsZero() {
		date = today
	}

	info := s.engine.DueInfo(habit, domain.StartOfDay(date), today, vacation)
	return &info, nil
}
