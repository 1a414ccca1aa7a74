package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sitediary/internal/domain"
	"sitediary/internal/port"
	"sitediary/internal/service"
	"sitediary/mocks"
)

func TestEnrichService_Enrich(t *testing.T) {
	enricher := new(mocks.MockPartnerEnricher)
	meter := new(mocks.MockUsageMeter)
	svc := service.NewEnrichService(enricher, meter)

	meter.On("Charge", mock.Anything, domain.ProviderEnrich).Return(nil)
	enricher.On("Enrich", mock.Anything, port.EnrichInput{
		Known:   map[string]string{"company": "ACME LTD"},
		Missing: []string{"email", "website"},
	}).Return(&port.EnrichOutput{
		Fields:    map[string]string{"email": "info@acme.gr", "company": "ACME Limited"},
		ModelUsed: "gemini-2.5-pro",
	}, nil)

	out, err := svc.Enrich(context.Background(), service.EnrichRequest{
		Known:   map[string]string{"company": " ACME LTD ", "email": "nan"},
		Missing: []string{"website", "email", "vat"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"email": "info@acme.gr"}, out.Fields)
	enricher.AssertExpectations(t)
	meter.AssertExpectations(t)
}

func TestEnrichService_Enrich_DefaultsMissingToUnknownFields(t *testing.T) {
	enricher := new(mocks.MockPartnerEnricher)
	meter := new(mocks.MockUsageMeter)
	svc := service.NewEnrichService(enricher, meter)

	meter.On("Charge", mock.Anything, domain.ProviderEnrich).Return(nil)
	enricher.On("Enrich", mock.Anything, mock.MatchedBy(func(in port.EnrichInput) bool {
		return len(in.Missing) == len(port.EnrichFields)-2
	})).Return(&port.EnrichOutput{Fields: map[string]string{}, Message: "no extra information found"}, nil)

	out, err := svc.Enrich(context.Background(), service.EnrichRequest{
		Known: map[string]string{"company": "ACME", "phone": "2101234567"},
	})
	require.NoError(t, err)
	assert.Equal(t, "no extra information found", out.Message)
}

func TestEnrichService_Enrich_Guards(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		svc := service.NewEnrichService(nil, new(mocks.MockUsageMeter))
		_, err := svc.Enrich(context.Background(), service.EnrichRequest{Known: map[string]string{"company": "x"}})
		assert.ErrorIs(t, err, domain.ErrEnrichDisabled)
	})

	t.Run("nothing known", func(t *testing.T) {
		svc := service.NewEnrichService(new(mocks.MockPartnerEnricher), new(mocks.MockUsageMeter))
		_, err := svc.Enrich(context.Background(), service.EnrichRequest{Known: map[string]string{"company": " "}})
		assert.ErrorIs(t, err, domain.ErrNothingKnown)
	})

	t.Run("quota", func(t *testing.T) {
		enricher := new(mocks.MockPartnerEnricher)
		meter := new(mocks.MockUsageMeter)
		meter.On("Charge", mock.Anything, domain.ProviderEnrich).Return(domain.ErrQuotaExceeded)
		svc := service.NewEnrichService(enricher, meter)

		_, err := svc.Enrich(context.Background(), service.EnrichRequest{Known: map[string]string{"company": "x"}})
		assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
		enricher.AssertNotCalled(t, "Enrich", mock.Anything, mock.Anything)
	})

	t.Run("everything known", func(t *testing.T) {
		known := map[string]string{}
		for _, f := range port.EnrichFields {
			known[f] = "v"
		}
		svc := service.NewEnrichService(new(mocks.MockPartnerEnricher), new(mocks.MockUsageMeter))
		out, err := svc.Enrich(context.Background(), service.EnrichRequest{Known: known})
		require.NoError(t, err)
		assert.Empty(t, out.Fields)
	})

	t.Run("provider failure", func(t *testing.T) {
		enricher := new(mocks.MockPartnerEnricher)
		meter := new(mocks.MockUsageMeter)
		meter.On("Charge", mock.Anything, mock.Anything).Return(nil)
		enricher.On("Enrich", mock.Anything, mock.Anything).Return(nil, domain.ErrEnrichFailed)
		svc := service.NewEnrichService(enricher, meter)

		_, err := svc.Enrich(context.Background(), service.EnrichRequest{Known: map[string]string{"company": "x"}})
		assert.ErrorIs(t, err, domain.ErrEnrichFailed)
	})
}
