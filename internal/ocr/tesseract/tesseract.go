//go:build tesseract

// Package tesseract reads text from images with a local Tesseract install
// through gosseract. Build with -tags tesseract; Tesseract and the "ell" and
// "eng" traineddata must be installed:
//
//	apt-get install tesseract-ocr tesseract-ocr-ell
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"sitediary/internal/config"
	"sitediary/internal/domain"
	"sitediary/internal/port"
)

// Available reports whether Tesseract support was compiled in.
const Available = true

// Recognizer implements port.TextRecognizer with Tesseract.
type Recognizer struct {
	languages []string
}

// New creates a Tesseract recognizer for the configured languages.
func New(cfg *config.OCRConfig) (*Recognizer, error) {
	return &Recognizer{languages: cfg.TesseractLanguages}, nil
}

// Recognize runs Tesseract on the image. A gosseract client is not safe for
// concurrent use, so each call gets its own.
func (r *Recognizer) Recognize(ctx context.Context, input port.RecognizeInput) (*port.RecognizeOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if len(r.languages) > 0 {
		if err := client.SetLanguage(r.languages...); err != nil {
			return nil, fmt.Errorf("tesseract.Recognize: set language: %w", err)
		}
	}
	if err := client.SetImageFromBytes(input.Image); err != nil {
		return nil, fmt.Errorf("tesseract.Recognize: set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("tesseract.Recognize: %w", err)
	}
	return &port.RecognizeOutput{
		Text:     strings.TrimSpace(text),
		Provider: domain.ProviderTesseract,
	}, nil
}
