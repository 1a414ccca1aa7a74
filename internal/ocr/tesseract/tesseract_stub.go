//go:build !tesseract

// Package tesseract is the stub used when the "tesseract" build tag is not
// set. New always returns ErrNotEnabled.
package tesseract

import (
	"context"
	"errors"

	"sitediary/internal/config"
	"sitediary/internal/port"
)

// ErrNotEnabled is returned when Tesseract support was not compiled in.
var ErrNotEnabled = errors.New("tesseract support not enabled; rebuild with -tags tesseract")

// Available reports whether Tesseract support was compiled in.
const Available = false

// Recognizer is never constructed in stub builds.
type Recognizer struct{}

// New always fails in stub builds.
func New(_ *config.OCRConfig) (*Recognizer, error) {
	return nil, ErrNotEnabled
}

func (r *Recognizer) Recognize(_ context.Context, _ port.RecognizeInput) (*port.RecognizeOutput, error) {
	return nil, ErrNotEnabled
}
