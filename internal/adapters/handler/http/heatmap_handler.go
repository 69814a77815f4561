package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
)

const maxPageSize = 100

// Warmer pre-computes a user's year heatmap in the background.
type Warmer interface {
	Enqueue(userID string, year int) string
}

// SnapshotInvalidator drops any per-user data cached in front of the
// repositories.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, userID string)
}

type HeatmapHandler struct {
	svc          *services.HeatmapService
	warmer       Warmer
	invalidators []SnapshotInvalidator
	pageSize     int
}

func NewHeatmapHandler(svc *services.HeatmapService, warmer Warmer, pageSize int, invalidators ...SnapshotInvalidator) *HeatmapHandler {
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return &HeatmapHandler{
		svc:          svc,
		warmer:       warmer,
		invalidators: invalidators,
		pageSize:     pageSize,
	}
}

func (h *HeatmapHandler) RegisterRoutes(r *gin.RouterGroup) {
	heatmap := r.Group("/heatmap")
	{
		heatmap.GET("/week", h.GetWeek)
		heatmap.GET("/month", h.GetMonth)
		heatmap.GET("/year", h.GetYearPage)
		heatmap.GET("/year/stream", h.StreamYearPage)
		heatmap.POST("/invalidate", h.Invalidate)
	}
}

func (h *HeatmapHandler) GetWeek(c *gin.Context) {
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

	hm, err := h.svc.Week(c.Request.Context(), userID, date, today)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, hm)
}

func (h *HeatmapHandler) GetMonth(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	year, ok := queryInt(c, "year", now.Year())
	if !ok {
		return
	}
	month, ok := queryInt(c, "month", int(now.Month()))
	if !ok {
		return
	}
	today, ok := queryDate(c, "today")
	if !ok {
		return
	}

	hm, err := h.svc.Month(c.Request.Context(), userID, year, time.Month(month), today)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, hm)
}

func (h *HeatmapHandler) yearRequest(c *gin.Context) (services.YearPageRequest, bool) {
	userID, ok := requireUser(c)
	if !ok {
		return services.YearPageRequest{}, false
	}

	year, ok := queryInt(c, "year", time.Now().UTC().Year())
	if !ok {
		return services.YearPageRequest{}, false
	}
	start, ok := queryInt(c, "start", 0)
	if !ok {
		return services.YearPageRequest{}, false
	}
	size, ok := queryInt(c, "size", h.pageSize)
	if !ok {
		return services.YearPageRequest{}, false
	}
	today, ok := queryDate(c, "today")
	if !ok {
		return services.YearPageRequest{}, false
	}

	return services.YearPageRequest{
		UserID:     userID,
		Year:       year,
		StartIndex: start,
		PageSize:   min(size, maxPageSize),
		Today:      today,
	}, true
}

func (h *HeatmapHandler) GetYearPage(c *gin.Context) {
	req, ok := h.yearRequest(c)
	if !ok {
		return
	}

	page, err := h.svc.YearPage(c.Request.Context(), req, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// StreamYearPage generates a year page in the background and reports it as
// server-sent events: "progress" while habits are processed, then a single
// "page" or "error". Disconnecting cancels generation.
func (h *HeatmapHandler) StreamYearPage(c *gin.Context) {
	req, ok := h.yearRequest(c)
	if !ok {
		return
	}

	progress := make(chan float64, 16)
	results := h.svc.YearPageAsync(c.Request.Context(), req, func(fraction float64) {
		select {
		case progress <- fraction:
		default:
		}
	})

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	for {
		select {
		case fraction := <-progress:
			c.SSEvent("progress", gin.H{"fraction": fraction})
			c.Writer.Flush()
		case res := <-results:
			if res.Err != nil {
				c.SSEvent("error", gin.H{"error": res.Err.Error()})
			} else {
				c.SSEvent("page", res.Page)
			}
			c.Writer.Flush()
			return
		}
	}
}

// Invalidate clears cached heatmap rows and the caller's cached snapshots,
// then queues a warm-up of the requested (or current) year.
func (h *HeatmapHandler) Invalidate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	year, ok := queryInt(c, "year", time.Now().UTC().Year())
	if !ok {
		return
	}
	if year < services.MinYear || year > services.MaxYear {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}

	for _, inv := range h.invalidators {
		inv.Invalidate(c.Request.Context(), userID)
	}
	h.svc.Invalidate()

	resp := gin.H{"status": "invalidated"}
	if h.warmer != nil {
		if jobID := h.warmer.Enqueue(userID, year); jobID != "" {
			resp["warmup_job_id"] = jobID
		}
	}

	c.JSON(http.StatusAccepted, resp)
}
