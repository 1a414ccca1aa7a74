package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sitediary/internal/domain"
)

// MockUsageService is a mock implementation of service.UsageService.
type MockUsageService struct {
	mock.Mock
}

func (m *MockUsageService) Charge(ctx context.Context, provider string) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

func (m *MockUsageService) ForMonth(ctx context.Context, month string) ([]domain.APIUsage, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.APIUsage), args.Error(1)
}
