package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sitediary/internal/domain"
	"sitediary/internal/port"
	"sitediary/internal/service"
	"sitediary/mocks"
)

func TestSiteService_Create_CleansOptionalFields(t *testing.T) {
	repo := new(mocks.MockSiteRepo)
	svc := service.NewSiteService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Site")).Return(nil)

	site, err := svc.Create(context.Background(), service.SiteInput{
		Title:    "  Πολυκατοικία Γλυφάδα ",
		Address:  strPtr(" Λαζαράκη 12 "),
		Employer: strPtr("   "),
		VAT:      strPtr("null"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Πολυκατοικία Γλυφάδα", site.Title)
	assert.Equal(t, "Λαζαράκη 12", *site.Address)
	assert.Nil(t, site.Employer)
	assert.Nil(t, site.VAT)
	assert.False(t, site.Archived)
	repo.AssertExpectations(t)
}

func TestSiteService_Create_TitleRequired(t *testing.T) {
	svc := service.NewSiteService(new(mocks.MockSiteRepo))

	_, err := svc.Create(context.Background(), service.SiteInput{Title: " "})
	assert.ErrorIs(t, err, domain.ErrSiteTitleRequired)
}

func TestSiteService_Update(t *testing.T) {
	repo := new(mocks.MockSiteRepo)
	svc := service.NewSiteService(repo)

	id := uuid.New()
	existing := &domain.Site{ID: id, Title: "Old", Address: strPtr("Somewhere")}
	archived := true
	repo.On("GetByID", mock.Anything, id).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	site, err := svc.Update(context.Background(), id, service.SiteInput{Title: "New", Archived: &archived})
	require.NoError(t, err)
	assert.Equal(t, "New", site.Title)
	assert.Nil(t, site.Address)
	assert.True(t, site.Archived)
}

func TestSiteService_Update_NotFound(t *testing.T) {
	repo := new(mocks.MockSiteRepo)
	svc := service.NewSiteService(repo)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrSiteNotFound)

	_, err := svc.Update(context.Background(), id, service.SiteInput{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrSiteNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSiteService_List_TrimsQuery(t *testing.T) {
	repo := new(mocks.MockSiteRepo)
	svc := service.NewSiteService(repo)
	repo.On("List", mock.Anything, port.SiteFilter{Query: "γλυφ", IncludeArchived: true}).Return([]domain.Site{}, nil)

	sites, err := svc.List(context.Background(), port.SiteFilter{Query: "  γλυφ ", IncludeArchived: true})
	require.NoError(t, err)
	assert.Empty(t, sites)
	repo.AssertExpectations(t)
}
