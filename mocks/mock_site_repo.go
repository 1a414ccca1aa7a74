package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"sitediary/internal/domain"
	"sitediary/internal/port"
)

// MockSiteRepo is a mock implementation of port.SiteRepository.
type MockSiteRepo struct {
	mock.Mock
}

func (m *MockSiteRepo) Create(ctx context.Context, site *domain.Site) error {
	args := m.Called(ctx, site)
	return args.Error(0)
}

func (m *MockSiteRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Site, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockSiteRepo) List(ctx context.Context, filter port.SiteFilter) ([]domain.Site, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Site), args.Error(1)
}

func (m *MockSiteRepo) Update(ctx context.Context, site *domain.Site) error {
	args := m.Called(ctx, site)
	return args.Error(0)
}

func (m *MockSiteRepo) ToggleArchived(ctx context.Context, id uuid.UUID) (*domain.Site, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

func (m *MockSiteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
