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

const insertPartnerQuery = `INSERT INTO partners (id, company, contact_last_name, contact_first_name,
	specialty, email, phone_business, phone_cell, address, google_maps_url, created_at, updated_at)
	VALUES (:id, :company, :contact_last_name, :contact_first_name, :specialty, :email,
	:phone_business, :phone_cell, :address, :google_maps_url, :created_at, :updated_at)`

type partnerRepo struct {
	db *sqlx.DB
}

// NewPartnerRepo creates a new PostgreSQL-backed PartnerRepository.
func NewPartnerRepo(db *sqlx.DB) port.PartnerRepository {
	return &partnerRepo{db: db}
}

func stampNew(p *domain.Partner, now time.Time) {
	p.ID = uuid.New()
	p.CreatedAt = now
	p.UpdatedAt = now
}

func (r *partnerRepo) Create(ctx context.Context, partner *domain.Partner) error {
	stampNew(partner, time.Now().UTC())
	if _, err := r.db.NamedExecContext(ctx, insertPartnerQuery, partner); err != nil {
		return fmt.Errorf("partnerRepo.Create: %w", err)
	}
	return nil
}

// CreateBatch inserts partners in one transaction. Nothing is written when
// any row fails.
func (r *partnerRepo) CreateBatch(ctx context.Context, partners []domain.Partner) (int, error) {
	if len(partners) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("partnerRepo.CreateBatch begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareNamedContext(ctx, insertPartnerQuery)
	if err != nil {
		return 0, fmt.Errorf("partnerRepo.CreateBatch prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i := range partners {
		stampNew(&partners[i], now)
		if _, err := stmt.ExecContext(ctx, &partners[i]); err != nil {
			return 0, fmt.Errorf("partnerRepo.CreateBatch row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("partnerRepo.CreateBatch commit: %w", err)
	}
	return len(partners), nil
}

func (r *partnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Partner, error) {
	var partner domain.Partner
	err := r.db.GetContext(ctx, &partner, "SELECT * FROM partners WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPartnerNotFound
		}
		return nil, fmt.Errorf("partnerRepo.GetByID: %w", err)
	}
	return &partner, nil
}

func (r *partnerRepo) List(ctx context.Context, filter port.PartnerFilter) ([]domain.Partner, error) {
	var (
		where []string
		args  []interface{}
	)
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, likePattern(q))
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(company ILIKE $%d OR contact_last_name ILIKE $%d OR contact_first_name ILIKE $%d OR email ILIKE $%d)",
			n, n, n, n))
	}
	if s := strings.TrimSpace(filter.Specialty); s != "" {
		args = append(args, s)
		where = append(where, fmt.Sprintf("lower(specialty) = lower($%d)", len(args)))
	}

	query := "SELECT * FROM partners"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY company ASC"

	partners := []domain.Partner{}
	if err := r.db.SelectContext(ctx, &partners, query, args...); err != nil {
		return nil, fmt.Errorf("partnerRepo.List: %w", err)
	}
	return partners, nil
}

func (r *partnerRepo) ListSpecialties(ctx context.Context) ([]string, error) {
	specialties := []string{}
	err := r.db.SelectContext(ctx, &specialties,
		`SELECT DISTINCT btrim(specialty) AS specialty FROM partners
		 WHERE specialty IS NOT NULL AND btrim(specialty) <> ''
		 ORDER BY specialty ASC`)
	if err != nil {
		return nil, fmt.Errorf("partnerRepo.ListSpecialties: %w", err)
	}
	return specialties, nil
}

func (r *partnerRepo) Update(ctx context.Context, partner *domain.Partner) error {
	partner.UpdatedAt = time.Now().UTC()
	query := `UPDATE partners SET company = :company, contact_last_name = :contact_last_name,
		contact_first_name = :contact_first_name, specialty = :specialty, email = :email,
		phone_business = :phone_business, phone_cell = :phone_cell, address = :address,
		google_maps_url = :google_maps_url, updated_at = :updated_at
		WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, partner)
	if err != nil {
		return fmt.Errorf("partnerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPartnerNotFound
	}
	return nil
}

func (r *partnerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM partners WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("partnerRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPartnerNotFound
	}
	return nil
}
