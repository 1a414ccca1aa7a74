package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"sitediary/internal/domain"
	"sitediary/internal/port"
)

// MockPartnerRepo is a mock implementation of port.PartnerRepository.
type MockPartnerRepo struct {
	mock.Mock
}

func (m *MockPartnerRepo) Create(ctx context.Context, partner *domain.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *MockPartnerRepo) CreateBatch(ctx context.Context, partners []domain.Partner) (int, error) {
	args := m.Called(ctx, partners)
	return args.Int(0), args.Error(1)
}

func (m *MockPartnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockPartnerRepo) List(ctx context.Context, filter port.PartnerFilter) ([]domain.Partner, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Partner), args.Error(1)
}

func (m *MockPartnerRepo) ListSpecialties(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPartnerRepo) Update(ctx context.Context, partner *domain.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *MockPartnerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
