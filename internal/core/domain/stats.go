package domain

import "time"

// StreakStatistics summarizes a habit set as of a reference day.
type StreakStatistics struct {
	CurrentStreak            int     `json:"current_streak"`
	LongestStreak            int     `json:"longest_streak"`
	TotalCompletionDaysToday int     `json:"total_completion_days_today"`
	ConsistencyRate          float64 `json:"consistency_rate"`
}

type WeeklyStats struct {
	StartDate   string      `json:"start_date"`
	EndDate     string      `json:"end_date"`
	TotalHabits int         `json:"total_habits"`
	OverallRate float64     `json:"overall_completion_rate"`
	HabitStats  []HabitStat `json:"habits"`
}

type HabitStat struct {
	HabitID        string  `json:"habit_id"`
	HabitName      string  `json:"habit_name"`
	Schedule       string  `json:"schedule"`
	GoalAmount     int     `json:"goal_amount"`
	TotalValue     int     `json:"total_value"`
	ScheduledDays  int     `json:"scheduled_days"`
	DaysCompleted  int     `json:"days_completed"`
	CompletionRate float64 `json:"completion_rate"`
	DailyProgress  []int   `json:"daily_progress"`
}

type StatsInput struct {
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	Location  *time.Location
}

// DueInfo answers whether one habit is due on one day.
type DueInfo struct {
	HabitID    string       `json:"habit_id"`
	Date       string       `json:"date"`
	Due        bool         `json:"due"`
	Rule       ScheduleKind `json:"rule"`
	Schedule   string       `json:"schedule"`
	Completed  bool         `json:"completed"`
	Percentage float64      `json:"percentage"`
	Position   DayPosition  `json:"position"`
}
