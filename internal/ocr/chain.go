package ocr

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"sitediary/internal/domain"
	"sitediary/internal/port"
)

// Chain tries recognizers in order and returns the first non-empty text.
// A recognizer that errors or reads nothing hands over to the next one.
// It implements port.TextRecognizer.
type Chain struct {
	recognizers []port.TextRecognizer
	names       []string
}

// NewChain creates a Chain from an ordered list of recognizers and their names.
func NewChain(recognizers []port.TextRecognizer, names []string) *Chain {
	return &Chain{recognizers: recognizers, names: names}
}

// Len returns the number of recognizers in the chain.
func (c *Chain) Len() int {
	return len(c.recognizers)
}

func (c *Chain) Recognize(ctx context.Context, input port.RecognizeInput) (*port.RecognizeOutput, error) {
	var lastErr error
	var emptyFrom string

	for i, r := range c.recognizers {
		out, err := r.Recognize(ctx, input)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("ocr.Chain: %w", ctx.Err())
			}
			zap.L().Warn("ocr.Chain: recognizer failed", zap.String("provider", c.names[i]), zap.Error(err))
			lastErr = err
			continue
		}
		if strings.TrimSpace(out.Text) == "" {
			zap.L().Info("ocr.Chain: recognizer found no text", zap.String("provider", c.names[i]))
			emptyFrom = c.names[i]
			continue
		}
		if out.Provider == "" {
			out.Provider = c.names[i]
		}
		return out, nil
	}

	if emptyFrom != "" {
		return &port.RecognizeOutput{Provider: emptyFrom}, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRecognitionFailed, lastErr)
	}
	return nil, fmt.Errorf("%w: no recognizer configured", domain.ErrRecognitionFailed)
}
