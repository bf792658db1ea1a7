package mocks

import (
	"context"
	"time"

	"github.com/cineflow/cineflow/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTicketRepo struct {
	mock.Mock
	domain.TicketRepository
}

func (m *MockTicketRepo) CreatePurchase(ctx context.Context, purchase *domain.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockTicketRepo) GetTicketsByUser(ctx context.Context, userID int) ([]domain.UserTicket, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserTicket), args.Error(1)
}

func (m *MockTicketRepo) CancelTickets(
	ctx context.Context,
	ticketIDs []int,
	requesterID int,
	now time.Time) (*domain.CancellationResult, error) {

	args := m.Called(ctx, ticketIDs, requesterID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CancellationResult), args.Error(1)
}

func (m *MockTicketRepo) CheckIn(ctx context.Context, ticketID, usherID int, now time.Time) (*domain.CheckIn, error) {
	args := m.Called(ctx, ticketID, usherID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckIn), args.Error(1)
}
