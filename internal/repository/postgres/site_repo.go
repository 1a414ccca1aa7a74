package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sitediary/internal/domain"
	"sitediary/internal/port"
)

type siteRepo struct {
	db *sqlx.DB
}

// NewSiteRepo creates a new PostgreSQL-backed SiteRepository.
func NewSiteRepo(db *sqlx.DB) port.SiteRepository {
	return &siteRepo{db: db}
}

func (r *siteRepo) Create(ctx context.Context, site *domain.Site) error {
	site.ID = uuid.New()
	now := time.Now().UTC()
	site.CreatedAt = now
	site.UpdatedAt = now

	query := `INSERT INTO sites (id, title, address, employer, maps_url, vat, tax_office, archived,
		created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		site.ID, site.Title, site.Address, site.Employer, site.MapsURL, site.VAT, site.TaxOffice,
		site.Archived, site.CreatedAt, site.UpdatedAt)
	if err != nil {
		return fmt.Errorf("siteRepo.Create: %w", err)
	}
	return nil
}

func (r *siteRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Site, error) {
	var site domain.Site
	err := r.db.GetContext(ctx, &site, "SELECT * FROM sites WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSiteNotFound
		}
		return nil, fmt.Errorf("siteRepo.GetByID: %w", err)
	}
	return &site, nil
}

func (r *siteRepo) List(ctx context.Context, filter port.SiteFilter) ([]domain.Site, error) {
	var (
		where []string
		args  []interface{}
	)
	if !filter.IncludeArchived {
		where = append(where, "archived = false")
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, likePattern(q))
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR address ILIKE $%d)", len(args), len(args)))
	}

	query := "SELECT * FROM sites"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY archived ASC, title ASC"

	sites := []domain.Site{}
	if err := r.db.SelectContext(ctx, &sites, query, args...); err != nil {
		return nil, fmt.Errorf("siteRepo.List: %w", err)
	}
	return sites, nil
}

func (r *siteRepo) Update(ctx context.Context, site *domain.Site) error {
	site.UpdatedAt = time.Now().UTC()
	query := `UPDATE sites SET title = $1, address = $2, employer = $3, maps_url = $4, vat = $5,
		tax_office = $6, archived = $7, updated_at = $8
		WHERE id = $9`
	result, err := r.db.ExecContext(ctx, query,
		site.Title, site.Address, site.Employer, site.MapsURL, site.VAT, site.TaxOffice,
		site.Archived, site.UpdatedAt, site.ID)
	if err != nil {
		return fmt.Errorf("siteRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSiteNotFound
	}
	return nil
}

func (r *siteRepo) ToggleArchived(ctx context.Context, id uuid.UUID) (*domain.Site, error) {
	var site domain.Site
	err := r.db.GetContext(ctx, &site,
		`UPDATE sites SET archived = NOT archived, updated_at = NOW() WHERE id = $1 RETURNING *`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSiteNotFound
		}
		return nil, fmt.Errorf("siteRepo.ToggleArchived: %w", err)
	}
	return &site, nil
}

func (r *siteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sites WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("siteRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrSiteNotFound
	}
	return nil
}
