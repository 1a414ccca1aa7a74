package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sitediary/internal/port"
)

// MockContactParser is a mock implementation of port.ContactParser.
type MockContactParser struct {
	mock.Mock
}

func (m *MockContactParser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ParseOutput), args.Error(1)
}
