package domain

import (
	"context"
)

// HabitRepository is the read-only storage port the engine is fed from.
type HabitRepository interface {
	// ListByUserID returns the user's habits in display order, each with its
	// completion history populated.
	ListByUserID(ctx context.Context, userID string) ([]*HabitSnapshot, error)

	// GetByID returns a single habit with its completion history.
	GetByID(ctx context.Context, id string) (*HabitSnapshot, error)
}

type VacationRepository interface {
	// GetByUserID returns the user's vacation state. Users without any
	// vacation data get an inactive, empty schedule.
	GetByUserID(ctx context.Context, userID string) (*VacationSchedule, error)
}

// HeatmapCache memoizes one habit's year of cells keyed by YearCacheKey.
type HeatmapCache interface {
	Get(key string) ([]HeatmapCell, bool)
	Set(key string, cells []HeatmapCell)
	Clear()
}
