package mocks

import (
	"context"

	"github.com/showgrid/theatre-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockShowtimeRepo struct {
	mock.Mock
	domain.ShowtimeRepository
}

func (m *MockShowtimeRepo) GetActiveById(ctx context.Context, id int) (*domain.ShowtimeCapacity, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShowtimeCapacity), args.Error(1)
}

func (m *MockShowtimeRepo) GetByScreen(ctx context.Context, screenID int) ([]domain.ShowtimeDetail, error) {
	args := m.Called(ctx, screenID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShowtimeDetail), args.Error(1)
}

func (m *MockShowtimeRepo) Create(ctx context.Context, showtime *domain.Showtime) (bool, error) {
	args := m.Called(ctx, showtime)
	return args.Bool(0), args.Error(1)
}

func (m *MockShowtimeRepo) Update(ctx context.Context, showtime *domain.Showtime) error {
	args := m.Called(ctx, showtime)
	return args.Error(0)
}

func (m *MockShowtimeRepo) DeactivateByIds(ctx context.Context, ids []int) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockShowtimeRepo) DeactivatePast(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShowtimeRepo) GetSeatMap(ctx context.Context, showID, userID int) (*domain.SeatMap, error) {
	args := m.Called(ctx, showID, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatMap), args.Error(1)
}
