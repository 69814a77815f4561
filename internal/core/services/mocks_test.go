package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
)

type MockHabitRepo struct {
	mock.Mock
}

func (m *MockHabitRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.HabitSnapshot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.HabitSnapshot), args.Error(1)
}

func (m *MockHabitRepo) GetByID(ctx context.Context, id string) (*domain.HabitSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HabitSnapshot), args.Error(1)
}

type MockVacationRepo struct {
	mock.Mock
}

func (m *MockVacationRepo) GetByUserID(ctx context.Context, userID string) (*domain.VacationSchedule, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VacationSchedule), args.Error(1)
}
