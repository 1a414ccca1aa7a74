package parser

import (
	"context"

	"sitediary/internal/contact"
	"sitediary/internal/domain"
	"sitediary/internal/port"
)

// LocalParser runs the regex ContactExtractor. It never calls the network and
// never fails, which makes it the last link of every fallback chain.
type LocalParser struct{}

// NewLocalParser creates a LocalParser.
func NewLocalParser() *LocalParser {
	return &LocalParser{}
}

func (p *LocalParser) Parse(_ context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	c := contact.Extract(input.Text)
	return &port.ParseOutput{
		Contact:   &c,
		ModelUsed: domain.ProviderLocal,
	}, nil
}
