package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sitediary/internal/port"
)

// MockPartnerEnricher is a mock implementation of port.PartnerEnricher.
type MockPartnerEnricher struct {
	mock.Mock
}

func (m *MockPartnerEnricher) Enrich(ctx context.Context, input port.EnrichInput) (*port.EnrichOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.EnrichOutput), args.Error(1)
}
