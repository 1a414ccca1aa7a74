package ocr_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sitediary/internal/domain"
	"sitediary/internal/ocr"
	"sitediary/internal/port"
	"sitediary/mocks"
)

var img = port.RecognizeInput{Image: []byte("jpeg"), ContentType: "image/jpeg"}

func TestChain_FirstWithText(t *testing.T) {
	r1 := new(mocks.MockTextRecognizer)
	r2 := new(mocks.MockTextRecognizer)
	r1.On("Recognize", mock.Anything, img).Return(&port.RecognizeOutput{Text: "ACME"}, nil)

	out, err := ocr.NewChain([]port.TextRecognizer{r1, r2}, []string{"vision", "tesseract"}).
		Recognize(context.Background(), img)

	require.NoError(t, err)
	assert.Equal(t, "ACME", out.Text)
	assert.Equal(t, "vision", out.Provider)
	r2.AssertNotCalled(t, "Recognize", mock.Anything, mock.Anything)
}

func TestChain_ErrorThenText(t *testing.T) {
	r1 := new(mocks.MockTextRecognizer)
	r2 := new(mocks.MockTextRecognizer)
	r1.On("Recognize", mock.Anything, img).Return(nil, errors.New("boom"))
	r2.On("Recognize", mock.Anything, img).Return(&port.RecognizeOutput{Text: "ACME", Provider: "tesseract"}, nil)

	out, err := ocr.NewChain([]port.TextRecognizer{r1, r2}, []string{"vision", "tesseract"}).
		Recognize(context.Background(), img)

	require.NoError(t, err)
	assert.Equal(t, "tesseract", out.Provider)
}

func TestChain_EmptyThenText(t *testing.T) {
	r1 := new(mocks.MockTextRecognizer)
	r2 := new(mocks.MockTextRecognizer)
	r1.On("Recognize", mock.Anything, img).Return(&port.RecognizeOutput{Text: "  \n"}, nil)
	r2.On("Recognize", mock.Anything, img).Return(&port.RecognizeOutput{Text: "ACME"}, nil)

	out, err := ocr.NewChain([]port.TextRecognizer{r1, r2}, []string{"vision", "tesseract"}).
		Recognize(context.Background(), img)

	require.NoError(t, err)
	assert.Equal(t, "ACME", out.Text)
}

func TestChain_NoTextAnywhere(t *testing.T) {
	r1 := new(mocks.MockTextRecognizer)
	r2 := new(mocks.MockTextRecognizer)
	r1.On("Recognize", mock.Anything, img).Return(&port.RecognizeOutput{}, nil)
	r2.On("Recognize", mock.Anything, img).Return(nil, errors.New("boom"))

	out, err := ocr.NewChain([]port.TextRecognizer{r1, r2}, []string{"vision", "tesseract"}).
		Recognize(context.Background(), img)

	require.NoError(t, err)
	assert.Empty(t, out.Text)
	assert.Equal(t, "vision", out.Provider)
}

func TestChain_AllFail(t *testing.T) {
	r1 := new(mocks.MockTextRecognizer)
	r1.On("Recognize", mock.Anything, img).Return(nil, errors.New("boom"))

	_, err := ocr.NewChain([]port.TextRecognizer{r1}, []string{"vision"}).
		Recognize(context.Background(), img)

	assert.ErrorIs(t, err, domain.ErrRecognitionFailed)
}

func TestChain_Empty(t *testing.T) {
	c := ocr.NewChain(nil, nil)

	_, err := c.Recognize(context.Background(), img)

	assert.Zero(t, c.Len())
	assert.ErrorIs(t, err, domain.ErrRecognitionFailed)
}

func TestMetered(t *testing.T) {
	meter := new(mocks.MockUsageMeter)
	next := new(mocks.MockTextRecognizer)
	meter.On("Charge", mock.Anything, domain.ProviderVision).Return(domain.ErrQuotaExceeded).Once()

	_, err := ocr.NewMetered(next, domain.ProviderVision, meter).Recognize(context.Background(), img)

	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	next.AssertNotCalled(t, "Recognize", mock.Anything, mock.Anything)

	meter.On("Charge", mock.Anything, domain.ProviderVision).Return(nil).Once()
	next.On("Recognize", mock.Anything, img).Return(&port.RecognizeOutput{Text: "x"}, nil)

	out, err := ocr.NewMetered(next, domain.ProviderVision, meter).Recognize(context.Background(), img)

	require.NoError(t, err)
	assert.Equal(t, "x", out.Text)
}
