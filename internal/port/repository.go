package port

import (
	"context"

	"github.com/google/uuid"

	"sitediary/internal/domain"
)

// UserRepository defines the contract for app user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
}

// SiteFilter narrows a site listing. Query matches title or address.
type SiteFilter struct {
	Query           string
	IncludeArchived bool
}

// SiteRepository defines the contract for site persistence.
type SiteRepository interface {
	Create(ctx context.Context, site *domain.Site) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Site, error)
	List(ctx context.Context, filter SiteFilter) ([]domain.Site, error)
	Update(ctx context.Context, site *domain.Site) error
	ToggleArchived(ctx context.Context, id uuid.UUID) (*domain.Site, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DiaryFilter narrows a diary listing. A nil SiteID lists every site.
type DiaryFilter struct {
	SiteID *uuid.UUID
	Limit  int
}

// DiaryRepository defines the contract for diary persistence.
type DiaryRepository interface {
	Create(ctx context.Context, diary *domain.Diary) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Diary, error)
	List(ctx context.Context, filter DiaryFilter) ([]domain.Diary, error)
	Update(ctx context.Context, diary *domain.Diary) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DiaryPhotoRepository defines the contract for diary photo metadata.
type DiaryPhotoRepository interface {
	Create(ctx context.Context, photo *domain.DiaryPhoto) error
	GetByID(ctx context.Context, diaryID, photoID uuid.UUID) (*domain.DiaryPhoto, error)
	ListByDiary(ctx context.Context, diaryID uuid.UUID) ([]domain.DiaryPhoto, error)
	Delete(ctx context.Context, diaryID, photoID uuid.UUID) error
}

// PartnerFilter narrows a partner listing. Query matches company, contact
// names or email; Specialty is an exact, case-insensitive match.
type PartnerFilter struct {
	Query     string
	Specialty string
}

// PartnerRepository defines the contract for partner persistence.
type PartnerRepository interface {
	Create(ctx context.Context, partner *domain.Partner) error
	CreateBatch(ctx context.Context, partners []domain.Partner) (int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Partner, error)
	List(ctx context.Context, filter PartnerFilter) ([]domain.Partner, error)
	ListSpecialties(ctx context.Context) ([]string, error)
	Update(ctx context.Context, partner *domain.Partner) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UsageRepository counts metered provider calls per calendar month.
type UsageRepository interface {
	// Increment atomically adds one call for provider in month and returns the
	// new count. With limit > 0 the increment is refused with
	// domain.ErrQuotaExceeded once the counter has reached limit.
	Increment(ctx context.Context, provider, month string, limit int) (int, error)
	ListByMonth(ctx context.Context, month string) ([]domain.APIUsage, error)
}

// UsageMeter charges one call of a metered provider against the current
// month. It returns domain.ErrQuotaExceeded once the monthly limit is reached.
type UsageMeter interface {
	Charge(ctx context.Context, provider string) error
}
