package domain

import "time"

// VacationOracle reports vacation exclusion. Days are only excluded while
// IsActive is true.
type VacationOracle interface {
	IsActive() bool
	IsVacationDay(date time.Time) bool
}

// VacationPeriod is an inclusive range of calendar days.
type VacationPeriod struct {
	Start time.Time `json:"start" db:"start_date"`
	End   time.Time `json:"end" db:"end_date"`
}

func (p VacationPeriod) Contains(date time.Time) bool {
	return DaysBetween(p.Start, date) >= 0 && DaysBetween(date, p.End) >= 0
}

// VacationSchedule is the per-user vacation state loaded from storage.
type VacationSchedule struct {
	UserID  string           `json:"user_id"`
	Active  bool             `json:"active"`
	Periods []VacationPeriod `json:"periods"`
}

var _ VacationOracle = (*VacationSchedule)(nil)

func (v *VacationSchedule) IsActive() bool {
	return v != nil && v.Active
}

func (v *VacationSchedule) IsVacationDay(date time.Time) bool {
	if v == nil {
		return false
	}
	for _, p := range v.Periods {
		if p.Contains(date) {
			return true
		}
	}
	return false
}

type noVacation struct{}

func (noVacation) IsActive() bool                { return false }
func (noVacation) IsVacationDay(time.Time) bool { return false }

// NoVacation never excludes any day.
var NoVacation VacationOracle = noVacation{}

// ExcludedByVacation is true when oracle is active and covers date.
func ExcludedByVacation(oracle VacationOracle, date time.Time) bool {
	return oracle != nil && oracle.IsActive() && oracle.IsVacationDay(date)
}
