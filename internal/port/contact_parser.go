package port

import (
	"context"

	"sitediary/internal/contact"
)

// ParseInput carries OCR text to a contact parser.
type ParseInput struct {
	Text string
}

// ParseOutput contains the structured contact produced by a parser.
type ParseOutput struct {
	Contact    *contact.ParsedContact
	ModelUsed  string
	PromptUsed string
}

// ContactParser turns OCR text into a ParsedContact. AI providers and the
// local regex extractor both implement it.
type ContactParser interface {
	Parse(ctx context.Context, input ParseInput) (*ParseOutput, error)
}
