//go:build !tesseract

package tesseract_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"sitediary/internal/config"
	"sitediary/internal/ocr/tesseract"
	"sitediary/internal/port"
)

func TestStub(t *testing.T) {
	assert.False(t, tesseract.Available)

	r, err := tesseract.New(&config.OCRConfig{})
	assert.Nil(t, r)
	assert.ErrorIs(t, err, tesseract.ErrNotEnabled)

	_, err = (&tesseract.Recognizer{}).Recognize(context.Background(), port.RecognizeInput{})
	assert.ErrorIs(t, err, tesseract.ErrNotEnabled)
}
