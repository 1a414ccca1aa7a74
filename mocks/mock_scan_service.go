package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sitediary/internal/port"
	"sitediary/internal/service"
)

// MockScanService is a mock implementation of service.ScanService.
type MockScanService struct {
	mock.Mock
}

func (m *MockScanService) ScanCard(ctx context.Context, image []byte) (*service.ScanResult, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScanResult), args.Error(1)
}

func (m *MockScanService) ParseText(ctx context.Context, text string) (*service.ScanResult, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScanResult), args.Error(1)
}

// MockEnrichService is a mock implementation of service.EnrichService.
type MockEnrichService struct {
	mock.Mock
}

func (m *MockEnrichService) Enrich(ctx context.Context, req service.EnrichRequest) (*port.EnrichOutput, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.EnrichOutput), args.Error(1)
}
