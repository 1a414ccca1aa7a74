package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sitediary/internal/domain"
)

// MockUsageRepo is a mock implementation of port.UsageRepository.
type MockUsageRepo struct {
	mock.Mock
}

func (m *MockUsageRepo) Increment(ctx context.Context, provider, month string, limit int) (int, error) {
	args := m.Called(ctx, provider, month, limit)
	return args.Int(0), args.Error(1)
}

func (m *MockUsageRepo) ListByMonth(ctx context.Context, month string) ([]domain.APIUsage, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.APIUsage), args.Error(1)
}
