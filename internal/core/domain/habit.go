package domain

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrInvalidPage   = errors.New("invalid page (start must be >= 0 and size > 0)")
	ErrInvalidYear   = errors.New("invalid year")
	ErrInvalidMonth  = errors.New("invalid month (must be 1-12)")
)

const DefaultGoalAmount = 1

// HabitSnapshot is the read-only view of a habit handed to the engine by the
// storage layer. CompletionHistory maps day keys ("YYYY-MM-DD") to progress.
type HabitSnapshot struct {
	ID                string         `json:"id"`
	UserID            string         `json:"user_id"`
	Name              string         `json:"name"`
	StartDate         time.Time      `json:"start_date"`
	EndDate           *time.Time     `json:"end_date,omitempty"`
	ScheduleText      string         `json:"schedule"`
	GoalText          string         `json:"goal"`
	SortOrder         int            `json:"sort_order"`
	CompletionHistory map[string]int `json:"completion_history"`
}

var leadingIntegerRegex = regexp.MustCompile(`^\s*(-?\d+)`)

// ParseLeadingInteger reads the integer s starts with, ignoring leading
// whitespace. "5 times" and "3x" yield 5 and 3; "Read a book" yields (0, false).
func ParseLeadingInteger(s string) (int, bool) {
	m := leadingIntegerRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// GoalAmount is the target quantity encoded in GoalText, DefaultGoalAmount when
// no leading integer is present.
func (h *HabitSnapshot) GoalAmount() int {
	if n, ok := ParseLeadingInteger(h.GoalText); ok {
		return n
	}
	return DefaultGoalAmount
}

// Progress is the recorded amount for date's day key; missing records are 0.
func (h *HabitSnapshot) Progress(date time.Time) int {
	if h.CompletionHistory == nil {
		return 0
	}
	return h.CompletionHistory[DayKey(date)]
}

// CompletionPercentage maps the recorded progress on date to [0, 100].
// Goals of zero or less use binary done/not done semantics.
func (h *HabitSnapshot) CompletionPercentage(date time.Time) float64 {
	progress := h.Progress(date)
	goal := h.GoalAmount()

	if goal <= 0 {
		if progress > 0 {
			return 100.0
		}
		return 0.0
	}

	pct := 100.0 * float64(progress) / float64(goal)
	if pct < 0 {
		return 0.0
	}
	if pct > 100 {
		return 100.0
	}
	return pct
}

// IsCompleted is the coarse predicate used by streaks: any progress counts.
func (h *HabitSnapshot) IsCompleted(date time.Time) bool {
	return h.CompletionPercentage(date) > 0
}

// CompletionsInMonth counts days with progress in the calendar month of date.
func (h *HabitSnapshot) CompletionsInMonth(date time.Time) int {
	if len(h.CompletionHistory) == 0 {
		return 0
	}

	year, month, _ := date.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, date.Location())

	count := 0
	for i := 0; i < DaysInMonth(year, month); i++ {
		if h.CompletionHistory[DayKey(AddDays(first, i))] > 0 {
			count++
		}
	}
	return count
}

// ActiveOn reports whether date falls inside the habit's start/end window.
func (h *HabitSnapshot) ActiveOn(date time.Time) bool {
	if DaysBetween(h.StartDate, date) < 0 {
		return false
	}
	if h.EndDate != nil && DaysBetween(*h.EndDate, date) > 0 {
		return false
	}
	return true
}

// EarliestRecord returns the earliest day with any data for the habit: its
// start date or the first history key, whichever is older.
func (h *HabitSnapshot) EarliestRecord(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := h.StartDate.Date()
	earliest := time.Date(y, m, d, 0, 0, 0, 0, loc)
	for key := range h.CompletionHistory {
		day, err := ParseDayKey(key, loc)
		if err != nil {
			continue
		}
		if day.Before(earliest) {
			earliest = day
		}
	}
	return earliest
}
