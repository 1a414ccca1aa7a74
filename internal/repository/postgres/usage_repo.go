package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sitediary/internal/domain"
	"sitediary/internal/port"
)

type usageRepo struct {
	db *sqlx.DB
}

// NewUsageRepo creates a new PostgreSQL-backed UsageRepository.
func NewUsageRepo(db *sqlx.DB) port.UsageRepository {
	return &usageRepo{db: db}
}

func (r *usageRepo) Increment(ctx context.Context, provider, month string, limit int) (int, error) {
	// A single statement so concurrent callers can never push calls past limit.
	var calls int
	err := r.db.GetContext(ctx, &calls, `
		INSERT INTO api_usage (month, provider, calls, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (month, provider) DO UPDATE
		SET calls = api_usage.calls + 1, updated_at = NOW()
		WHERE $3 = 0 OR api_usage.calls < $3
		RETURNING calls`,
		month, provider, limit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrQuotaExceeded
		}
		return 0, fmt.Errorf("usageRepo.Increment: %w", err)
	}
	return calls, nil
}

func (r *usageRepo) ListByMonth(ctx context.Context, month string) ([]domain.APIUsage, error) {
	usage := []domain.APIUsage{}
	err := r.db.SelectContext(ctx, &usage,
		"SELECT month, provider, calls, updated_at FROM api_usage WHERE month = $1 ORDER BY provider ASC", month)
	if err != nil {
		return nil, fmt.Errorf("usageRepo.ListByMonth: %w", err)
	}
	return usage, nil
}
