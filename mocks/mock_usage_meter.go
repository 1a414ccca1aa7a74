package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockUsageMeter is a mock implementation of port.UsageMeter.
type MockUsageMeter struct {
	mock.Mock
}

func (m *MockUsageMeter) Charge(ctx context.Context, provider string) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}
