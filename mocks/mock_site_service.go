package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"sitediary/internal/domain"
	"sitediary/internal/port"
	"sitediary/internal/service"
)

// MockSiteService is a mock implementation of service.SiteService.
type MockSiteService struct {
	mock.Mock
}

func (m *MockSiteService) Create(ctx context.Context, input service.SiteInput) (*domain.Site, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockSiteService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Site, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockSiteService) List(ctx context.Context, filter port.SiteFilter) ([]domain.Site, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Site), args.Error(1)
}

func (m *MockSiteService) Update(ctx context.Context, id uuid.UUID, input service.SiteInput) (*domain.Site, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockSiteService) ToggleArchived(ctx context.Context, id uuid.UUID) (*domain.Site, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockSiteService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
