package mocks

import (
	"context"

	"github.com/showgrid/theatre-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTheatreRepo struct {
	mock.Mock
	domain.TheatreRepository
}

func (m *MockTheatreRepo) GetAll(
	ctx context.Context,
	pagination domain.Pagination) ([]domain.Theatre, *domain.Metadata, error) {

	args := m.Called(ctx, pagination)

	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Theatre), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockTheatreRepo) GetById(ctx context.Context, id int) (*domain.Theatre, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Theatre), args.Error(1)
}

func (m *MockTheatreRepo) Create(ctx context.Context, theatre *domain.Theatre) error {
	args := m.Called(ctx, theatre)
	return args.Error(0)
}

func (m *MockTheatreRepo) Update(ctx context.Context, theatre *domain.Theatre) error {
	args := m.Called(ctx, theatre)
	return args.Error(0)
}

func (m *MockTheatreRepo) Deactivate(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
