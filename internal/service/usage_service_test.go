package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sitediary/internal/domain"
	"sitediary/internal/service"
	"sitediary/mocks"
)

func TestUsageService_Charge(t *testing.T) {
	repo := new(mocks.MockUsageRepo)
	svc := service.NewUsageService(repo, 1000)
	month := domain.UsageMonth(time.Now())

	repo.On("Increment", mock.Anything, domain.ProviderVision, month, 1000).Return(12, nil).Once()
	require.NoError(t, svc.Charge(context.Background(), domain.ProviderVision))

	repo.On("Increment", mock.Anything, domain.ProviderVision, month, 1000).Return(0, domain.ErrQuotaExceeded).Once()
	assert.ErrorIs(t, svc.Charge(context.Background(), domain.ProviderVision), domain.ErrQuotaExceeded)

	repo.On("Increment", mock.Anything, domain.ProviderVision, month, 1000).Return(0, errors.New("db down")).Once()
	assert.NoError(t, svc.Charge(context.Background(), domain.ProviderVision))

	repo.AssertExpectations(t)
}

func TestUsageService_ForMonth(t *testing.T) {
	repo := new(mocks.MockUsageRepo)
	svc := service.NewUsageService(repo, 0)

	rows := []domain.APIUsage{{Month: "2025-02", Provider: domain.ProviderClaude, Calls: 3}}
	repo.On("ListByMonth", mock.Anything, "2025-02").Return(rows, nil)
	repo.On("ListByMonth", mock.Anything, domain.UsageMonth(time.Now())).Return([]domain.APIUsage{}, nil)

	got, err := svc.ForMonth(context.Background(), " 2025-02 ")
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	got, err = svc.ForMonth(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.ForMonth(context.Background(), "2025-13")
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
	_, err = svc.ForMonth(context.Background(), "Feb 2025")
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
}
