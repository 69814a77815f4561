package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

func TestGetWeeklyStats(t *testing.T) {
	t.Run("Success: Returns 200 with valid params", func(t *testing.T) {
		s := newTestServer(seededRepo())

		w := s.do(t, "GET", "/api/v1/stats/weekly?start_date=2024-01-01&end_date=2024-01-07", "user-1")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "total_habits")
		assert.Contains(t, w.Body.String(), "overall_completion_rate")

		var stats domain.WeeklyStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, 2, stats.TotalHabits)
		assert.Equal(t, 3, stats.HabitStats[0].DaysCompleted)
		assert.Equal(t, 7, stats.HabitStats[0].ScheduledDays)
		assert.Equal(t, 2, stats.HabitStats[1].ScheduledDays)
	})

	t.Run("Success: Returns 200 with Smart Defaults (No dates provided)", func(t *testing.T) {
		s := newTestServer(seededRepo())

		w := s.do(t, "GET", "/api/v1/stats/weekly", "user-1")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Security: 400 Bad Request on DoS Attempt (Range too big)", func(t *testing.T) {
		s := newTestServer(seededRepo())

		w := s.do(t, "GET", "/api/v1/stats/weekly?start_date=2022-01-01&end_date=2024-01-01", "user-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "range too large")
	})

	t.Run("Validation: 400 Bad Request on Invalid Dates (Start > End)", func(t *testing.T) {
		s := newTestServer(seededRepo())

		w := s.do(t, "GET", "/api/v1/stats/weekly?start_date=2024-01-10&end_date=2024-01-01", "user-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "start_date cannot be after end_date")
	})

	t.Run("Validation: 400 Bad Request on Malformed Date", func(t *testing.T) {
		s := newTestServer(seededRepo())

		w := s.do(t, "GET", "/api/v1/stats/weekly?start_date=not-a-date", "user-1")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Security: 401 Unauthorized if no User ID", func(t *testing.T) {
		s := newTestServer(seededRepo())

		w := s.do(t, "GET", "/api/v1/stats/weekly", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failure: 500 Internal Server Error on DB Fail", func(t *testing.T) {
		habitRepo := new(MockHabitRepo)
		habitRepo.On("ListByUserID", mock.Anything, "user-1").Return(nil, errors.New("db boom"))
		s := newTestServer(habitRepo)

		w := s.do(t, "GET", "/api/v1/stats/weekly", "user-1")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetStreakStatistics(t *testing.T) {
	t.Run("Success: Date overrides today", func(t *testing.T) {
		s := newTestServer(seededRepo())

		w := s.do(t, "GET", "/api/v1/stats/streaks?date=2024-01-02", "user-1")
		require.Equal(t, http.StatusOK, w.Code)

		var stats domain.StreakStatistics
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, 1, stats.CurrentStreak)
		assert.Equal(t, 2, stats.LongestStreak)
		assert.Equal(t, 1, stats.TotalCompletionDaysToday)
	})

	t.Run("Validation: Malformed date", func(t *testing.T) {
		s := newTestServer(seededRepo())

		w := s.do(t, "GET", "/api/v1/stats/streaks?date=02/01/2024", "user-1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failure: 500 on repository error", func(t *testing.T) {
		habitRepo := new(MockHabitRepo)
		habitRepo.On("ListByUserID", mock.Anything, "user-1").Return(nil, errors.New("db boom"))
		s := newTestServer(habitRepo)

		w := s.do(t, "GET", "/api/v1/stats/streaks", "user-1")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetDueInfo(t *testing.T) {
	t.Run("Success: Weekday rule", func(t *testing.T) {
		s := newTestServer(seededRepo())

		// 2024-01-05 is a Friday.
		w := s.do(t, "GET", "/api/v1/habits/h2/due?date=2024-01-05&today=2024-01-05", "user-1")
		require.Equal(t, http.StatusOK, w.Code)

		var info domain.DueInfo
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
		assert.True(t, info.Due)
		assert.Equal(t, "2024-01-05", info.Date)
		assert.Equal(t, "Every Monday, Friday", info.Schedule)
	})

	t.Run("Success: Not due on other weekdays", func(t *testing.T) {
		s := newTestServer(seededRepo())

		w := s.do(t, "GET", "/api/v1/habits/h2/due?date=2024-01-03&today=2024-01-03", "user-1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"due":false`)
	})

	t.Run("Security: 404 for another user's habit", func(t *testing.T) {
		s := newTestServer(seededRepo())

		w := s.do(t, "GET", "/api/v1/habits/h3/due", "user-1")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failure: 404 for unknown habit", func(t *testing.T) {
		s := newTestServer(seededRepo())

		w := s.do(t, "GET", "/api/v1/habits/missing/due", "user-1")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
