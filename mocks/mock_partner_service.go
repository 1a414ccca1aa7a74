package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"sitediary/internal/domain"
	"sitediary/internal/port"
	"sitediary/internal/service"
)

// MockPartnerService is a mock implementation of service.PartnerService.
type MockPartnerService struct {
	mock.Mock
}

func (m *MockPartnerService) Create(ctx context.Context, input service.PartnerInput) (*domain.Partner, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockPartnerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockPartnerService) List(ctx context.Context, filter port.PartnerFilter) ([]domain.Partner, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Partner), args.Error(1)
}

func (m *MockPartnerService) Specialties(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPartnerService) Update(ctx context.Context, id uuid.UUID, input service.PartnerInput) (*domain.Partner, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockPartnerService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPartnerService) ExportCSV(ctx context.Context, w io.Writer, filter port.PartnerFilter) error {
	args := m.Called(ctx, w, filter)
	return args.Error(0)
}

func (m *MockPartnerService) Import(ctx context.Context, r io.Reader) (*service.ImportResult, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}
