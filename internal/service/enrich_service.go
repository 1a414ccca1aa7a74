package service

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"sitediary/internal/domain"
	"sitediary/internal/port"
)

// EnrichRequest is the DTO for partner enrichment. An empty Missing asks for
// every field that is not already known.
type EnrichRequest struct {
	Known   map[string]string `json:"known"`
	Missing []string          `json:"missing"`
}

// EnrichService looks up missing partner details.
type EnrichService interface {
	Enrich(ctx context.Context, req EnrichRequest) (*port.EnrichOutput, error)
}

type enrichService struct {
	enricher port.PartnerEnricher
	meter    port.UsageMeter
}

// NewEnrichService creates an EnrichService. enricher may be nil when no
// model is configured.
func NewEnrichService(enricher port.PartnerEnricher, meter port.UsageMeter) EnrichService {
	return &enrichService{enricher: enricher, meter: meter}
}

func (s *enrichService) Enrich(ctx context.Context, req EnrichRequest) (*port.EnrichOutput, error) {
	if s.enricher == nil {
		return nil, domain.ErrEnrichDisabled
	}

	known := map[string]string{}
	for k, v := range req.Known {
		if c := cleanString(v); c != nil {
			known[strings.TrimSpace(k)] = *c
		}
	}
	if len(known) == 0 {
		return nil, domain.ErrNothingKnown
	}

	missing := make([]string, 0, len(port.EnrichFields))
	for _, f := range port.EnrichFields {
		if _, ok := known[f]; ok {
			continue
		}
		if len(req.Missing) == 0 || slices.Contains(req.Missing, f) {
			missing = append(missing, f)
		}
	}
	if len(missing) == 0 {
		return &port.EnrichOutput{Fields: map[string]string{}, Message: "nothing to look up"}, nil
	}

	if err := s.meter.Charge(ctx, domain.ProviderEnrich); err != nil {
		return nil, err
	}

	out, err := s.enricher.Enrich(ctx, port.EnrichInput{Known: known, Missing: missing})
	if err != nil {
		zap.L().Error("enrichService.Enrich: provider failed", zap.Error(err))
		return nil, err
	}

	for k := range out.Fields {
		if !slices.Contains(missing, k) {
			delete(out.Fields, k)
		}
	}
	return out, nil
}
