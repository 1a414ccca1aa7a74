package port

import "context"

// EnrichFields are the partner keys an enricher may fill.
var EnrichFields = []string{"company", "first_name", "last_name", "title", "email", "phone", "address", "website"}

// EnrichInput lists what is already known about a partner and which fields
// should be looked up.
type EnrichInput struct {
	Known   map[string]string
	Missing []string
}

// EnrichOutput holds suggested values keyed by partner field. When nothing
// was found Fields is empty and Message explains why.
type EnrichOutput struct {
	Fields    map[string]string `json:"fields"`
	Message   string            `json:"message,omitempty"`
	ModelUsed string            `json:"model_used"`
}

// PartnerEnricher looks up missing partner details with an LLM.
type PartnerEnricher interface {
	Enrich(ctx context.Context, input EnrichInput) (*EnrichOutput, error)
}
