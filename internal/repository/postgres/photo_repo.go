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

type diaryPhotoRepo struct {
	db *sqlx.DB
}

// NewDiaryPhotoRepo creates a new PostgreSQL-backed DiaryPhotoRepository.
func NewDiaryPhotoRepo(db *sqlx.DB) port.DiaryPhotoRepository {
	return &diaryPhotoRepo{db: db}
}

func (r *diaryPhotoRepo) Create(ctx context.Context, photo *domain.DiaryPhoto) error {
	photo.ID = uuid.New()
	photo.CreatedAt = time.Now().UTC()

	query := `INSERT INTO diary_photos (id, diary_id, storage_path, content_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		photo.ID, photo.DiaryID, photo.StoragePath, photo.ContentType, photo.SizeBytes, photo.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrDiaryNotFound
		}
		return fmt.Errorf("diaryPhotoRepo.Create: %w", err)
	}
	return nil
}

func (r *diaryPhotoRepo) GetByID(ctx context.Context, diaryID, photoID uuid.UUID) (*domain.DiaryPhoto, error) {
	var photo domain.DiaryPhoto
	err := r.db.GetContext(ctx, &photo,
		"SELECT * FROM diary_photos WHERE id = $1 AND diary_id = $2", photoID, diaryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("diaryPhotoRepo.GetByID: %w", err)
	}
	return &photo, nil
}

func (r *diaryPhotoRepo) ListByDiary(ctx context.Context, diaryID uuid.UUID) ([]domain.DiaryPhoto, error) {
	photos := []domain.DiaryPhoto{}
	err := r.db.SelectContext(ctx, &photos,
		"SELECT * FROM diary_photos WHERE diary_id = $1 ORDER BY created_at ASC", diaryID)
	if err != nil {
		return nil, fmt.Errorf("diaryPhotoRepo.ListByDiary: %w", err)
	}
	return photos, nil
}

func (r *diaryPhotoRepo) Delete(ctx context.Context, diaryID, photoID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM diary_photos WHERE id = $1 AND diary_id = $2", photoID, diaryID)
	if err != nil {
		return fmt.Errorf("diaryPhotoRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}
