package ocr

import (
	"context"
	"fmt"

	"sitediary/internal/port"
)

// Metered charges every call of the wrapped recognizer to a UsageMeter.
type Metered struct {
	next     port.TextRecognizer
	provider string
	meter    port.UsageMeter
}

// NewMetered wraps next so that each Recognize is counted under provider.
func NewMetered(next port.TextRecognizer, provider string, meter port.UsageMeter) *Metered {
	return &Metered{next: next, provider: provider, meter: meter}
}

func (m *Metered) Recognize(ctx context.Context, input port.RecognizeInput) (*port.RecognizeOutput, error) {
	if err := m.meter.Charge(ctx, m.provider); err != nil {
		return nil, fmt.Errorf("ocr %s: %w", m.provider, err)
	}
	return m.next.Recognize(ctx, input)
}
