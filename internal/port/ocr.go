package port

import "context"

// RecognizeInput is an image to run text recognition on.
type RecognizeInput struct {
	Image       []byte
	ContentType string
}

// RecognizeOutput is the recognised text and the provider that produced it.
type RecognizeOutput struct {
	Text     string
	Provider string
}

// TextRecognizer extracts text from an image. A recognizer that finds no
// text returns an empty Text and a nil error.
type TextRecognizer interface {
	Recognize(ctx context.Context, input RecognizeInput) (*RecognizeOutput, error)
}
