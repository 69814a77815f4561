package repository

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

var (
	_ domain.HabitRepository    = (*InMemoryHabitRepository)(nil)
	_ domain.VacationRepository = (*InMemoryVacationRepository)(nil)
)

type InMemoryHabitRepository struct {
	store map[string]*domain.HabitSnapshot

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		store: make(map[string]*domain.HabitSnapshot),
	}
}

// Save stores a copy of the snapshot, replacing any habit with the same ID.
func (r *InMemoryHabitRepository) Save(habit *domain.HabitSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[habit.ID] = clone(habit)
}

// Record sets the amount logged for one day of a habit.
func (r *InMemoryHabitRepository) Record(habitID, dayKey string, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.store[habitID]
	if !ok {
		return domain.ErrHabitNotFound
	}
	if h.CompletionHistory == nil {
		h.CompletionHistory = make(map[string]int)
	}
	h.CompletionHistory[dayKey] = amount
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.HabitSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.store[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return clone(habit), nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.HabitSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habits := []*domain.HabitSnapshot{}
	for _, h := range r.store {
		if h.UserID == userID {
			habits = append(habits, clone(h))
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		if habits[i].SortOrder != habits[j].SortOrder {
			return habits[i].SortOrder < habits[j].SortOrder
		}
		return habits[i].ID < habits[j].ID
	})

	return habits, nil
}

func clone(h *domain.HabitSnapshot) *domain.HabitSnapshot {
	c := *h
	c.CompletionHistory = maps.Clone(h.CompletionHistory)
	return &c
}

type InMemoryVacationRepository struct {
	store map[string]*domain.VacationSchedule

	mu sync.RWMutex
}

func NewInMemoryVacationRepository() *InMemoryVacationRepository {
	return &InMemoryVacationRepository{
		store: make(map[string]*domain.VacationSchedule),
	}
}

func (r *InMemoryVacationRepository) Save(schedule *domain.VacationSchedule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[schedule.UserID] = schedule
}

func (r *InMemoryVacationRepository) GetByUserID(ctx context.Context, userID string) (*domain.VacationSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if v, ok := r.store[userID]; ok {
		return v, nil
	}
	return &domain.VacationSchedule{UserID: userID}, nil
}
