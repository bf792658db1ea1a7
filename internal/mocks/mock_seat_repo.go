package mocks

import (
	"context"

	"github.com/cineflow/cineflow/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSeatRepo struct {
	mock.Mock
	domain.SeatRepository
}

func (m *MockSeatRepo) GetSeatMapByShowtime(ctx context.Context, showtimeID int) (*domain.SeatMap, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatMap), args.Error(1)
}

func (m *MockSeatRepo) GetSeatsByRoomAndCodes(
	ctx context.Context,
	roomID int,
	codes []string) ([]domain.Seat, error) {

	args := m.Called(ctx, roomID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}
