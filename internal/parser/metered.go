package parser

import (
	"context"
	"fmt"

	"sitediary/internal/port"
)

// MeteredParser charges every call of the wrapped provider to a UsageMeter.
// A provider over its monthly quota fails before any network call is made.
type MeteredParser struct {
	next     port.ContactParser
	provider string
	meter    port.UsageMeter
}

// NewMeteredParser wraps next so that each Parse is counted under provider.
func NewMeteredParser(next port.ContactParser, provider string, meter port.UsageMeter) *MeteredParser {
	return &MeteredParser{next: next, provider: provider, meter: meter}
}

func (m *MeteredParser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	if err := m.meter.Charge(ctx, m.provider); err != nil {
		return nil, fmt.Errorf("parser %s: %w", m.provider, err)
	}
	return m.next.Parse(ctx, input)
}
