package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseLeadingInteger(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		wantOk bool
	}{
		{name: "Success: Number followed by unit", input: "5 times", want: 5, wantOk: true},
		{name: "Success: Leading spaces", input: "   12 pages", want: 12, wantOk: true},
		{name: "Success: Zero", input: "0 glasses", want: 0, wantOk: true},
		{name: "Success: Negative", input: "-3 laps", want: -3, wantOk: true},
		{name: "Fallback: Text only", input: "Read a book", wantOk: false},
		{name: "Success: Number glued to unit", input: "5times", want: 5, wantOk: true},
		{name: "Success: Short suffix", input: "3x", want: 3, wantOk: true},
		{name: "Fallback: Number not leading", input: "times 5", wantOk: false},
		{name: "Fallback: Overflow", input: "99999999999999999999 steps", wantOk: false},
		{name: "Fallback: Empty", input: "", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.ParseLeadingInteger(tt.input)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestHabitSnapshot_CompletionPercentage(t *testing.T) {
	date := day(2024, 3, 10)
	key := domain.DayKey(date)

	tests := []struct {
		name     string
		goal     string
		progress int
		want     float64
	}{
		{name: "Success: Partial progress against goal", goal: "5 times", progress: 3, want: 60.0},
		{name: "Success: Goal exceeded clamps to 100", goal: "5 times", progress: 9, want: 100.0},
		{name: "Success: No leading integer defaults goal to 1", goal: "Meditate", progress: 1, want: 100.0},
		{name: "Success: Missing record is 0", goal: "5 times", progress: 0, want: 0.0},
		{name: "Binary: Zero goal with progress", goal: "0 pages", progress: 4, want: 100.0},
		{name: "Binary: Zero goal without progress", goal: "0 pages", progress: 0, want: 0.0},
		{name: "Binary: Negative goal with progress", goal: "-2 pages", progress: 1, want: 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &domain.HabitSnapshot{
				GoalText:          tt.goal,
				CompletionHistory: map[string]int{key: tt.progress},
			}
			assert.InDelta(t, tt.want, h.CompletionPercentage(date), 0.0001)
			assert.Equal(t, tt.want > 0, h.IsCompleted(date))
		})
	}

	t.Run("Edge Case: Nil history", func(t *testing.T) {
		h := &domain.HabitSnapshot{GoalText: "3 cups"}
		assert.Equal(t, 0.0, h.CompletionPercentage(date))
		assert.False(t, h.IsCompleted(date))
	})
}

func TestHabitSnapshot_ActiveOn(t *testing.T) {
	end := day(2024, 1, 20)
	h := &domain.HabitSnapshot{
		StartDate: time.Date(2024, 1, 10, 18, 30, 0, 0, time.UTC),
		EndDate:   &end,
	}

	assert.False(t, h.ActiveOn(day(2024, 1, 9)), "day before start")
	assert.True(t, h.ActiveOn(day(2024, 1, 10)), "start day counts from midnight")
	assert.True(t, h.ActiveOn(time.Date(2024, 1, 20, 23, 0, 0, 0, time.UTC)), "end day inclusive")
	assert.False(t, h.ActiveOn(day(2024, 1, 21)), "day after end")

	open := &domain.HabitSnapshot{StartDate: day(2024, 1, 1)}
	assert.True(t, open.ActiveOn(day(2030, 1, 1)), "no end date")
}

func TestHabitSnapshot_CompletionsInMonth(t *testing.T) {
	h := &domain.HabitSnapshot{
		CompletionHistory: map[string]int{
			"2024-02-01": 1,
			"2024-02-15": 2,
			"2024-02-29": 1,
			"2024-02-20": 0,
			"2024-03-01": 1,
			"garbage":    5,
		},
	}

	assert.Equal(t, 3, h.CompletionsInMonth(day(2024, 2, 10)))
	assert.Equal(t, 1, h.CompletionsInMonth(day(2024, 3, 31)))
	assert.Equal(t, 0, h.CompletionsInMonth(day(2024, 4, 1)))
}

func TestHabitSnapshot_EarliestRecord(t *testing.T) {
	h := &domain.HabitSnapshot{
		StartDate: day(2024, 5, 1),
		CompletionHistory: map[string]int{
			"2024-04-28": 1,
			"not-a-day":  1,
		},
	}
	assert.Equal(t, day(2024, 4, 28), h.EarliestRecord(time.UTC))

	h.CompletionHistory = nil
	assert.Equal(t, day(2024, 5, 1), h.EarliestRecord(nil))
}
