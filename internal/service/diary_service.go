package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sitediary/internal/config"
	"sitediary/internal/domain"
	"sitediary/internal/port"
)

const presignConcurrency = 8

// DiaryInput is the DTO for creating and updating diaries. An empty Date
// means today.
type DiaryInput struct {
	SiteID     *uuid.UUID `json:"site_id"`
	Date       string     `json:"date"`
	Weather    *string    `json:"weather"`
	Activities *string    `json:"activities"`
	Notes      *string    `json:"notes"`
}

// PhotoFile is one uploaded image.
type PhotoFile struct {
	Filename string
	Size     int64
	Content  io.ReadSeeker
}

// PhotoFailure reports a photo that could not be stored.
type PhotoFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// UploadPhotosResult lists the stored photos and the ones that were skipped.
type UploadPhotosResult struct {
	Uploaded []domain.DiaryPhoto `json:"uploaded"`
	Failed   []PhotoFailure      `json:"failed"`
}

// PhotoWithURL is a diary photo with a short-lived download link.
type PhotoWithURL struct {
	domain.DiaryPhoto
	URL string `json:"url"`
}

// DiaryDetail is a diary together with its site and photos.
type DiaryDetail struct {
	Diary  *domain.Diary  `json:"diary"`
	Site   *domain.Site   `json:"site"`
	Photos []PhotoWithURL `json:"photos"`
}

// DiaryService defines the diary and diary photo contract.
type DiaryService interface {
	Create(ctx context.Context, createdBy uuid.UUID, input DiaryInput) (*domain.Diary, error)
	Get(ctx context.Context, id uuid.UUID) (*DiaryDetail, error)
	List(ctx context.Context, filter port.DiaryFilter) ([]domain.Diary, error)
	Update(ctx context.Context, id uuid.UUID, input DiaryInput) (*domain.Diary, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadPhotos(ctx context.Context, diaryID uuid.UUID, files []PhotoFile) (*UploadPhotosResult, error)
	PhotoURLs(ctx context.Context, diaryID uuid.UUID) (map[string]string, error)
	DeletePhoto(ctx context.Context, diaryID, photoID uuid.UUID) error
}

type diaryService struct {
	diaries port.DiaryRepository
	photos  port.DiaryPhotoRepository
	sites   port.SiteRepository
	storage port.ObjectStorage
	cfg     *config.S3Config
	now     func() time.Time
}

// NewDiaryService creates a new DiaryService implementation.
func NewDiaryService(
	diaries port.DiaryRepository,
	photos port.DiaryPhotoRepository,
	sites port.SiteRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) DiaryService {
	return &diaryService{
		diaries: diaries,
		photos:  photos,
		sites:   sites,
		storage: storage,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *diaryService) Create(ctx context.Context, createdBy uuid.UUID, input DiaryInput) (*domain.Diary, error) {
	diary := &domain.Diary{}
	if err := s.apply(diary, input); err != nil {
		return nil, err
	}
	if _, err := s.sites.GetByID(ctx, diary.SiteID); err != nil {
		return nil, err
	}
	if createdBy != uuid.Nil {
		diary.CreatedBy = &createdBy
	}
	if err := s.diaries.Create(ctx, diary); err != nil {
		return nil, err
	}
	return diary, nil
}

func (s *diaryService) Get(ctx context.Context, id uuid.UUID) (*DiaryDetail, error) {
	diary, err := s.diaries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &DiaryDetail{Diary: diary, Photos: []PhotoWithURL{}}
	site, err := s.sites.GetByID(ctx, diary.SiteID)
	switch {
	case err == nil:
		detail.Site = site
	case !errors.Is(err, domain.ErrSiteNotFound):
		return nil, fmt.Errorf("diaryService.Get: %w", err)
	}

	photos, err := s.photos.ListByDiary(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("diaryService.Get: %w", err)
	}
	urls := s.presign(ctx, photos)
	for _, p := range photos {
		detail.Photos = append(detail.Photos, PhotoWithURL{DiaryPhoto: p, URL: urls[p.StoragePath]})
	}
	return detail, nil
}

func (s *diaryService) List(ctx context.Context, filter port.DiaryFilter) ([]domain.Diary, error) {
	return s.diaries.List(ctx, filter)
}

func (s *diaryService) Update(ctx context.Context, id uuid.UUID, input DiaryInput) (*domain.Diary, error) {
	diary, err := s.diaries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.SiteID == nil {
		input.SiteID = &diary.SiteID
	}
	if input.Date == "" {
		input.Date = diary.Date
	}
	if err := s.apply(diary, input); err != nil {
		return nil, err
	}
	if err := s.diaries.Update(ctx, diary); err != nil {
		return nil, err
	}
	return diary, nil
}

func (s *diaryService) Delete(ctx context.Context, id uuid.UUID) error {
	photos, err := s.photos.ListByDiary(ctx, id)
	if err != nil {
		return fmt.Errorf("diaryService.Delete: %w", err)
	}
	if err := s.diaries.Delete(ctx, id); err != nil {
		return err
	}
	for _, p := range photos {
		if err := s.storage.Delete(ctx, s.cfg.Bucket, p.StoragePath); err != nil {
			zap.L().Warn("diaryService.Delete: photo object left behind",
				zap.String("diary_id", id.String()), zap.String("key", p.StoragePath), zap.Error(err))
		}
	}
	return nil
}

func (s *diaryService) UploadPhotos(ctx context.Context, diaryID uuid.UUID, files []PhotoFile) (*UploadPhotosResult, error) {
	if len(files) == 0 {
		return nil, domain.ErrNoPhotos
	}
	if _, err := s.diaries.GetByID(ctx, diaryID); err != nil {
		return nil, err
	}

	result := &UploadPhotosResult{Uploaded: []domain.DiaryPhoto{}, Failed: []PhotoFailure{}}
	for _, f := range files {
		photo, err := s.uploadOne(ctx, diaryID, f)
		if err != nil {
			zap.L().Warn("diaryService.UploadPhotos: photo skipped",
				zap.String("diary_id", diaryID.String()), zap.String("filename", f.Filename), zap.Error(err))
			result.Failed = append(result.Failed, PhotoFailure{Filename: f.Filename, Error: err.Error()})
			continue
		}
		result.Uploaded = append(result.Uploaded, *photo)
	}

	if len(result.Uploaded) == 0 {
		return result, domain.ErrUploadFailed
	}
	return result, nil
}

func (s *diaryService) uploadOne(ctx context.Context, diaryID uuid.UUID, f PhotoFile) (*domain.DiaryPhoto, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(f.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if limit := s.cfg.MaxFileSizeMB * 1024 * 1024; limit > 0 && f.Size > limit {
		return nil, domain.ErrFileTooLarge
	}

	buf := make([]byte, 512)
	n, err := f.Content.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading photo header: %w", err)
	}
	contentType := http.DetectContentType(buf[:n])
	if _, ok := domain.AllowedContentTypes[contentType]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := f.Content.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking photo: %w", err)
	}

	key := PhotoKey(diaryID, s.now(), f.Filename)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        f.Content,
		ContentType: contentType,
		Size:        f.Size,
	}); err != nil {
		zap.L().Error("diaryService.uploadOne: storage upload failed", zap.String("key", key), zap.Error(err))
		return nil, domain.ErrUploadFailed
	}

	photo := &domain.DiaryPhoto{
		DiaryID:     diaryID,
		StoragePath: key,
		ContentType: contentType,
		SizeBytes:   f.Size,
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		_ = s.storage.Delete(ctx, s.cfg.Bucket, key)
		return nil, fmt.Errorf("recording photo: %w", err)
	}
	return photo, nil
}

func (s *diaryService) PhotoURLs(ctx context.Context, diaryID uuid.UUID) (map[string]string, error) {
	if _, err := s.diaries.GetByID(ctx, diaryID); err != nil {
		return nil, err
	}
	photos, err := s.photos.ListByDiary(ctx, diaryID)
	if err != nil {
		return nil, fmt.Errorf("diaryService.PhotoURLs: %w", err)
	}
	return s.presign(ctx, photos), nil
}

// presign signs every photo concurrently. Photos that fail to sign are
// left out of the map.
func (s *diaryService) presign(ctx context.Context, photos []domain.DiaryPhoto) map[string]string {
	urls := make(map[string]string, len(photos))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(presignConcurrency)
	for _, p := range photos {
		key := p.StoragePath
		g.Go(func() error {
			url, err := s.storage.GetPresignedURL(gctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
			if err != nil {
				zap.L().Warn("diaryService.presign: failed", zap.String("key", key), zap.Error(err))
				return nil
			}
			mu.Lock()
			urls[key] = url
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return urls
}

func (s *diaryService) DeletePhoto(ctx context.Context, diaryID, photoID uuid.UUID) error {
	photo, err := s.photos.GetByID(ctx, diaryID, photoID)
	if err != nil {
		return err
	}
	if err := s.photos.Delete(ctx, diaryID, photoID); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, s.cfg.Bucket, photo.StoragePath); err != nil {
		zap.L().Warn("diaryService.DeletePhoto: photo object left behind",
			zap.String("key", photo.StoragePath), zap.Error(err))
	}
	return nil
}

func (s *diaryService) apply(diary *domain.Diary, input DiaryInput) error {
	if input.SiteID == nil || *input.SiteID == uuid.Nil {
		return domain.ErrDiarySiteRequired
	}
	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = s.now().Format(time.DateOnly)
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return domain.ErrInvalidDiaryDate
	}

	diary.SiteID = *input.SiteID
	diary.Date = date
	diary.Weather = cleanPtr(input.Weather)
	diary.Activities = cleanPtr(input.Activities)
	diary.Notes = cleanPtr(input.Notes)
	return nil
}

// PhotoKey builds the object key of a diary photo:
// {diaryID}/{unixMillis}-{filename}.
func PhotoKey(diaryID uuid.UUID, at time.Time, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "." || name == "/" {
		name = "photo"
	}
	return fmt.Sprintf("%s/%d-%s", diaryID, at.UnixMilli(), name)
}
