package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
)

const maxDaysRange = 366

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats/streaks", h.GetStreakStatistics)
	r.GET("/stats/weekly", h.GetWeeklyStats)
	r.GET("/habits/:id/due", h.GetDueInfo)
}

// GetStreakStatistics accepts an optional ?date= that stands in for today.
func (h *StatsHandler) GetStreakStatistics(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	today, ok := queryDate(c, "date")
	if !ok {
		return
	}

	stats, err := h.svc.GetStreakStatistics(c.Request.Context(), userID, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) GetWeeklyStats(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	endDate, ok := queryDate(c, "end_date")
	if !ok {
		return
	}
	if endDate.IsZero() {
		endDate = domain.StartOfDay(time.Now().UTC())
	}

	startDate, ok := queryDate(c, "start_date")
	if !ok {
		return
	}
	if startDate.IsZero() {
		startDate = endDate.AddDate(0, 0, -6)
	}

	if startDate.After(endDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date cannot be after end_date"})
		return
	}

	if domain.DaysBetween(startDate, endDate) > maxDaysRange {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date range too large, max 1 year allowed"})
		return
	}

	stats, err := h.svc.GetWeeklyStats(c.Request.Context(), domain.StatsInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve statistics"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) GetDueInfo(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	date, ok := queryDate(c, "date")
	if !ok {
		return
	}
	today, ok := queryDate(c, "today")
	if !ok {
		return
	}

	info, err := h.svc.GetDueInfo(c.Request.Context(), userID, c.Param("id"), date, today)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}
