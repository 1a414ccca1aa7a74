package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"sitediary/internal/domain"
	"sitediary/internal/port"
)

// SiteInput is the DTO for creating and updating sites.
type SiteInput struct {
	Title     string  `json:"title"`
	Address   *string `json:"address"`
	Employer  *string `json:"employer"`
	MapsURL   *string `json:"maps_url"`
	VAT       *string `json:"vat"`
	TaxOffice *string `json:"tax_office"`
	Archived  *bool   `json:"archived"`
}

// SiteService defines the site management contract.
type SiteService interface {
	Create(ctx context.Context, input SiteInput) (*domain.Site, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Site, error)
	List(ctx context.Context, filter port.SiteFilter) ([]domain.Site, error)
	Update(ctx context.Context, id uuid.UUID, input SiteInput) (*domain.Site, error)
	ToggleArchived(ctx context.Context, id uuid.UUID) (*domain.Site, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type siteService struct {
	repo port.SiteRepository
}

// NewSiteService creates a new SiteService implementation.
func NewSiteService(repo port.SiteRepository) SiteService {
	return &siteService{repo: repo}
}

func (s *siteService) Create(ctx context.Context, input SiteInput) (*domain.Site, error) {
	site := &domain.Site{}
	if err := applySiteInput(site, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *siteService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Site, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *siteService) List(ctx context.Context, filter port.SiteFilter) ([]domain.Site, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	return s.repo.List(ctx, filter)
}

func (s *siteService) Update(ctx context.Context, id uuid.UUID, input SiteInput) (*domain.Site, error) {
	site, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applySiteInput(site, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *siteService) ToggleArchived(ctx context.Context, id uuid.UUID) (*domain.Site, error) {
	return s.repo.ToggleArchived(ctx, id)
}

func (s *siteService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func applySiteInput(site *domain.Site, input SiteInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.ErrSiteTitleRequired
	}
	site.Title = title
	site.Address = cleanPtr(input.Address)
	site.Employer = cleanPtr(input.Employer)
	site.MapsURL = cleanPtr(input.MapsURL)
	site.VAT = cleanPtr(input.VAT)
	site.TaxOffice = cleanPtr(input.TaxOffice)
	if input.Archived != nil {
		site.Archived = *input.Archived
	}
	return nil
}
