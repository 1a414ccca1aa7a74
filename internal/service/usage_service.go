package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"sitediary/internal/domain"
	"sitediary/internal/port"
)

// UsageService meters third-party calls and reports monthly counters.
type UsageService interface {
	port.UsageMeter
	ForMonth(ctx context.Context, month string) ([]domain.APIUsage, error)
}

type usageService struct {
	repo  port.UsageRepository
	limit int
	now   func() time.Time
}

// NewUsageService creates a UsageService. limit is the monthly call limit of
// every metered provider; 0 means unlimited.
func NewUsageService(repo port.UsageRepository, limit int) UsageService {
	return &usageService{repo: repo, limit: limit, now: time.Now}
}

// Charge counts one call. Only an exhausted quota blocks the call; when the
// counter itself cannot be written the call is let through and logged.
func (s *usageService) Charge(ctx context.Context, provider string) error {
	calls, err := s.repo.Increment(ctx, provider, domain.UsageMonth(s.now()), s.limit)
	if err != nil {
		if errors.Is(err, domain.ErrQuotaExceeded) {
			zap.L().Warn("usageService.Charge: quota exceeded",
				zap.String("provider", provider), zap.Int("limit", s.limit))
			return err
		}
		zap.L().Error("usageService.Charge: counter not updated",
			zap.String("provider", provider), zap.Error(err))
		return nil
	}
	zap.L().Debug("usageService.Charge", zap.String("provider", provider), zap.Int("calls", calls))
	return nil
}

func (s *usageService) ForMonth(ctx context.Context, month string) ([]domain.APIUsage, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		month = domain.UsageMonth(s.now())
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, domain.ErrInvalidMonth
	}
	return s.repo.ListByMonth(ctx, month)
}
