package domain

import (
	"strconv"
	"time"
)

const (
	WeekColumns   = 7
	MonthGridRows = 5
	MonthGridCols = 7
	MonthCells    = MonthGridRows * MonthGridCols
)

type HeatmapView string

const (
	HeatmapViewWeek  HeatmapView = "week"
	HeatmapViewMonth HeatmapView = "month"
	HeatmapViewYear  HeatmapView = "year"
)

// HeatmapCell is one day of one habit. Intensity is the coarse 0-3 bucket;
// Percentage always carries the precise value.
type HeatmapCell struct {
	Intensity  int     `json:"intensity"`
	Scheduled  bool    `json:"scheduled"`
	Percentage float64 `json:"percentage"`
}

// IntensityBucket maps a completion percentage to 0..3.
func IntensityBucket(pct float64) int {
	switch {
	case pct <= 0:
		return 0
	case pct < 25:
		return 1
	case pct < 50:
		return 2
	default:
		return 3
	}
}

func ScheduledCell(pct float64) HeatmapCell {
	return HeatmapCell{
		Intensity:  IntensityBucket(pct),
		Scheduled:  true,
		Percentage: pct,
	}
}

type HeatmapRow struct {
	HabitID string        `json:"habit_id"`
	Name    string        `json:"name"`
	Cells   []HeatmapCell `json:"cells"`
}

// Heatmap is a habit x day matrix plus the per-day total row.
type Heatmap struct {
	View  HeatmapView   `json:"view"`
	Start time.Time     `json:"start"`
	Days  []string      `json:"days"`
	Rows  []HeatmapRow  `json:"rows"`
	Total []HeatmapCell `json:"total"`
}

// YearPage is one slice of the habit list rendered for a whole year.
type YearPage struct {
	Year       int          `json:"year"`
	DaysInYear int          `json:"days_in_year"`
	StartIndex int          `json:"start_index"`
	PageSize   int          `json:"page_size"`
	TotalRows  int          `json:"total_rows"`
	NextIndex  int          `json:"next_index"`
	Done       bool         `json:"done"`
	Rows       []HeatmapRow `json:"rows"`
}

// YearCacheKey identifies one habit's year of cells in the heatmap cache.
// Cells depend on the reference day (past days and monthly quota lookahead),
// so rows computed for another today never match.
func YearCacheKey(habitID string, year int, today time.Time) string {
	return habitID + "-" + strconv.Itoa(year) + "@" + DayKey(today)
}
