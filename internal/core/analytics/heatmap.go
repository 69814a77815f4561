package analytics

import (
	"time"

	"github.com/samber/lo"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

// Cell renders one habit on one day. Unscheduled days are the zero cell.
func Cell(h *domain.HabitSnapshot, rule domain.ScheduleRule, date, today time.Time, vacation domain.VacationOracle) domain.HeatmapCell {
	if !IsDue(h, rule, date, today, vacation) {
		return domain.HeatmapCell{}
	}
	return domain.ScheduledCell(h.CompletionPercentage(date))
}

func (e *Engine) Cell(h *domain.HabitSnapshot, date, today time.Time, vacation domain.VacationOracle) domain.HeatmapCell {
	return Cell(h, e.Rule(h), date, today, vacation)
}

// TotalCell averages the percentage over the scheduled cells of one day.
func TotalCell(cells []domain.HeatmapCell) domain.HeatmapCell {
	scheduled := lo.Filter(cells, func(c domain.HeatmapCell, _ int) bool {
		return c.Scheduled
	})
	if len(scheduled) == 0 {
		return domain.HeatmapCell{}
	}

	sum := lo.SumBy(scheduled, func(c domain.HeatmapCell) float64 {
		return c.Percentage
	})
	return domain.ScheduledCell(sum / float64(len(scheduled)))
}

// TotalRow builds the per-column total over rows of equal length.
func TotalRow(rows []domain.HeatmapRow, columns int) []domain.HeatmapCell {
	total := make([]domain.HeatmapCell, columns)
	column := make([]domain.HeatmapCell, 0, len(rows))

	for i := 0; i < columns; i++ {
		column = column[:0]
		for _, r := range rows {
			if i < len(r.Cells) {
				column = append(column, r.Cells[i])
			}
		}
		total[i] = TotalCell(column)
	}
	return total
}

func (e *Engine) rowFor(h *domain.HabitSnapshot, days []time.Time, today time.Time, vacation domain.VacationOracle) domain.HeatmapRow {
	rule := e.Rule(h)
	cells := make([]domain.HeatmapCell, len(days))
	for i, d := range days {
		if d.IsZero() {
			continue
		}
		cells[i] = Cell(h, rule, d, today, vacation)
	}
	return domain.HeatmapRow{HabitID: h.ID, Name: h.Name, Cells: cells}
}

func (e *Engine) matrix(view domain.HeatmapView, habits []*domain.HabitSnapshot, days []time.Time, today time.Time, vacation domain.VacationOracle) domain.Heatmap {
	rows := lo.Map(habits, func(h *domain.HabitSnapshot, _ int) domain.HeatmapRow {
		return e.rowFor(h, days, today, vacation)
	})

	labels := lo.Map(days, func(d time.Time, _ int) string {
		if d.IsZero() {
			return ""
		}
		return domain.DayKey(d)
	})

	return domain.Heatmap{
		View:  view,
		Start: days[0],
		Days:  labels,
		Rows:  rows,
		Total: TotalRow(rows, len(days)),
	}
}

// WeekStart returns the Sunday starting date's week.
func WeekStart(date time.Time) time.Time {
	d := domain.StartOfDay(date)
	return domain.AddDays(d, -int(d.Weekday()))
}

// WeekHeatmap renders the seven days of the week containing date.
func (e *Engine) WeekHeatmap(habits []*domain.HabitSnapshot, date, today time.Time, vacation domain.VacationOracle) domain.Heatmap {
	start := WeekStart(date)
	days := make([]time.Time, domain.WeekColumns)
	for i := range days {
		days[i] = domain.AddDays(start, i)
	}
	return e.matrix(domain.HeatmapViewWeek, habits, days, today, vacation)
}

// MonthHeatmap renders a 5x7 grid in row-major order where cell i is day i+1
// of the month. Cells past the end of the month stay empty.
func (e *Engine) MonthHeatmap(habits []*domain.HabitSnapshot, year int, month time.Month, today time.Time, vacation domain.VacationOracle) domain.Heatmap {
	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	length := domain.DaysInMonth(year, month)

	days := make([]time.Time, domain.MonthCells)
	for i := 0; i < domain.MonthCells && i < length; i++ {
		days[i] = domain.AddDays(first, i)
	}

	heatmap := e.matrix(domain.HeatmapViewMonth, habits, days, today, vacation)
	heatmap.Start = first
	return heatmap
}

// YearRow renders every day of year for one habit: 366 cells in leap years,
// 365 otherwise.
func (e *Engine) YearRow(h *domain.HabitSnapshot, year int, today time.Time, vacation domain.VacationOracle) []domain.HeatmapCell {
	rule := e.Rule(h)
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, today.Location())

	cells := make([]domain.HeatmapCell, domain.DaysInYear(year))
	for i := range cells {
		cells[i] = Cell(h, rule, domain.AddDays(first, i), today, vacation)
	}
	return cells
}
