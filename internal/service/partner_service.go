package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sitediary/internal/csvexport"
	"sitediary/internal/domain"
	"sitediary/internal/partnerimport"
	"sitediary/internal/port"
)

const mapsSearchURL = "https://www.google.com/maps/search/?api=1&query="

// PartnerInput is the DTO for creating and updating partners.
type PartnerInput struct {
	Company          string  `json:"company"`
	ContactLastName  *string `json:"contact_last_name"`
	ContactFirstName *string `json:"contact_first_name"`
	Specialty        *string `json:"specialty"`
	Email            *string `json:"email"`
	PhoneBusiness    *string `json:"phone_business"`
	PhoneCell        *string `json:"phone_cell"`
	Address          *string `json:"address"`
	GoogleMapsURL    *string `json:"google_maps_url"`
}

// ImportSkip explains why a spreadsheet row was not imported.
type ImportSkip struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResult summarises a spreadsheet import.
type ImportResult struct {
	Inserted int          `json:"inserted"`
	Skipped  []ImportSkip `json:"skipped"`
}

// PartnerService defines the partner directory contract.
type PartnerService interface {
	Create(ctx context.Context, input PartnerInput) (*domain.Partner, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Partner, error)
	List(ctx context.Context, filter port.PartnerFilter) ([]domain.Partner, error)
	Specialties(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id uuid.UUID, input PartnerInput) (*domain.Partner, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExportCSV(ctx context.Context, w io.Writer, filter port.PartnerFilter) error
	Import(ctx context.Context, r io.Reader) (*ImportResult, error)
}

type partnerService struct {
	repo port.PartnerRepository
}

// NewPartnerService creates a new PartnerService implementation.
func NewPartnerService(repo port.PartnerRepository) PartnerService {
	return &partnerService{repo: repo}
}

func (s *partnerService) Create(ctx context.Context, input PartnerInput) (*domain.Partner, error) {
	partner := &domain.Partner{}
	if err := applyPartnerInput(partner, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, partner); err != nil {
		return nil, err
	}
	return partner, nil
}

func (s *partnerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Partner, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *partnerService) List(ctx context.Context, filter port.PartnerFilter) ([]domain.Partner, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Specialty = strings.TrimSpace(filter.Specialty)
	return s.repo.List(ctx, filter)
}

func (s *partnerService) Specialties(ctx context.Context) ([]string, error) {
	return s.repo.ListSpecialties(ctx)
}

func (s *partnerService) Update(ctx context.Context, id uuid.UUID, input PartnerInput) (*domain.Partner, error) {
	partner, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyPartnerInput(partner, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, partner); err != nil {
		return nil, err
	}
	return partner, nil
}

func (s *partnerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *partnerService) ExportCSV(ctx context.Context, w io.Writer, filter port.PartnerFilter) error {
	partners, err := s.List(ctx, filter)
	if err != nil {
		return err
	}

	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("partnerService.ExportCSV: %w", err)
	}
	if err := cw.WritePartners(partners); err != nil {
		return fmt.Errorf("partnerService.ExportCSV: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func (s *partnerService) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	records, err := partnerimport.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSpreadsheet, err)
	}

	result := &ImportResult{Skipped: []ImportSkip{}}
	partners := make([]domain.Partner, 0, len(records))
	for _, rec := range records {
		var p domain.Partner
		if err := applyPartnerInput(&p, recordInput(rec)); err != nil {
			result.Skipped = append(result.Skipped, ImportSkip{Line: rec.Line, Reason: err.Error()})
			continue
		}
		partners = append(partners, p)
	}

	n, err := s.repo.CreateBatch(ctx, partners)
	if err != nil {
		return nil, fmt.Errorf("partnerService.Import: %w", err)
	}
	result.Inserted = n

	zap.L().Info("partnerService.Import: done",
		zap.Int("inserted", result.Inserted), zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

func recordInput(rec partnerimport.Record) PartnerInput {
	opt := func(col partnerimport.Column) *string {
		v := rec.Get(col)
		return &v
	}
	return PartnerInput{
		Company:          rec.Get(partnerimport.ColCompany),
		ContactLastName:  opt(partnerimport.ColLastName),
		ContactFirstName: opt(partnerimport.ColFirstName),
		Specialty:        opt(partnerimport.ColSpecialty),
		Email:            opt(partnerimport.ColEmail),
		PhoneBusiness:    opt(partnerimport.ColPhoneBusiness),
		PhoneCell:        opt(partnerimport.ColPhoneCell),
		Address:          opt(partnerimport.ColAddress),
		GoogleMapsURL:    opt(partnerimport.ColMapsURL),
	}
}

func applyPartnerInput(p *domain.Partner, input PartnerInput) error {
	company := cleanString(input.Company)
	if company == nil {
		return domain.ErrCompanyRequired
	}
	p.Company = *company
	p.ContactLastName = cleanPtr(input.ContactLastName)
	p.ContactFirstName = cleanPtr(input.ContactFirstName)
	p.Specialty = cleanPtr(input.Specialty)
	p.Email = cleanPtr(input.Email)
	p.PhoneBusiness = cleanPtr(input.PhoneBusiness)
	p.PhoneCell = cleanPtr(input.PhoneCell)
	p.Address = cleanPtr(input.Address)
	p.GoogleMapsURL = cleanPtr(input.GoogleMapsURL)
	if p.GoogleMapsURL == nil {
		p.GoogleMapsURL = MapsURL(deref(p.Address))
	}
	return nil
}

// MapsURL returns a Google Maps search link for address, or nil when the
// address is blank.
func MapsURL(address string) *string {
	a := cleanString(address)
	if a == nil {
		return nil
	}
	u := mapsSearchURL + strings.ReplaceAll(url.QueryEscape(*a), "+", "%20")
	return &u
}
