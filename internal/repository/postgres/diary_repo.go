package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sitediary/internal/domain"
	"sitediary/internal/port"
)

const defaultDiaryLimit = 50

// diaries.date is a DATE column; it is read back as text so the model keeps
// the YYYY-MM-DD form.
const diaryColumns = `id, site_id, to_char(date, 'YYYY-MM-DD') AS date, weather, activities, notes,
	created_by, created_at, updated_at`

type diaryRepo struct {
	db *sqlx.DB
}

// NewDiaryRepo creates a new PostgreSQL-backed DiaryRepository.
func NewDiaryRepo(db *sqlx.DB) port.DiaryRepository {
	return &diaryRepo{db: db}
}

func (r *diaryRepo) Create(ctx context.Context, diary *domain.Diary) error {
	diary.ID = uuid.New()
	now := time.Now().UTC()
	diary.CreatedAt = now
	diary.UpdatedAt = now

	query := `INSERT INTO diaries (id, site_id, date, weather, activities, notes, created_by,
		created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		diary.ID, diary.SiteID, diary.Date, diary.Weather, diary.Activities, diary.Notes,
		diary.CreatedBy, diary.CreatedAt, diary.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrSiteNotFound
		}
		return fmt.Errorf("diaryRepo.Create: %w", err)
	}
	return nil
}

func (r *diaryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Diary, error) {
	var diary domain.Diary
	err := r.db.GetContext(ctx, &diary, "SELECT "+diaryColumns+" FROM diaries WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDiaryNotFound
		}
		return nil, fmt.Errorf("diaryRepo.GetByID: %w", err)
	}
	return &diary, nil
}

func (r *diaryRepo) List(ctx context.Context, filter port.DiaryFilter) ([]domain.Diary, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultDiaryLimit
	}

	diaries := []domain.Diary{}
	var err error
	if filter.SiteID != nil {
		err = r.db.SelectContext(ctx, &diaries,
			"SELECT "+diaryColumns+" FROM diaries WHERE site_id = $1 ORDER BY date DESC, created_at DESC LIMIT $2",
			*filter.SiteID, limit)
	} else {
		err = r.db.SelectContext(ctx, &diaries,
			"SELECT "+diaryColumns+" FROM diaries ORDER BY date DESC, created_at DESC LIMIT $1", limit)
	}
	if err != nil {
		return nil, fmt.Errorf("diaryRepo.List: %w", err)
	}
	return diaries, nil
}

func (r *diaryRepo) Update(ctx context.Context, diary *domain.Diary) error {
	diary.UpdatedAt = time.Now().UTC()
	query := `UPDATE diaries SET site_id = $1, date = $2, weather = $3, activities = $4, notes = $5,
		updated_at = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		diary.SiteID, diary.Date, diary.Weather, diary.Activities, diary.Notes, diary.UpdatedAt, diary.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrSiteNotFound
		}
		return fmt.Errorf("diaryRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDiaryNotFound
	}
	return nil
}

func (r *diaryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM diaries WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("diaryRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDiaryNotFound
	}
	return nil
}
