package mocks

import (
	"context"
	"time"

	"github.com/cineflow/cineflow/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockCreditRepo struct {
	mock.Mock
	domain.CreditRepository
}

func (m *MockCreditRepo) GetBalance(ctx context.Context, userID int, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCreditRepo) GetActiveEntriesByUser(
	ctx context.Context,
	userID int,
	now time.Time) ([]domain.CreditEntry, error) {

	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditEntry), args.Error(1)
}
