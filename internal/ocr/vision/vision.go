// Package vision reads text from images with the Google Cloud Vision API.
package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	visionapi "google.golang.org/api/vision/v1"

	"sitediary/internal/config"
	"sitediary/internal/domain"
	"sitediary/internal/port"
)

const featureTextDetection = "TEXT_DETECTION"

// ErrRateLimited is returned when Vision answers 429.
var ErrRateLimited = errors.New("vision: rate limited")

// Recognizer implements port.TextRecognizer on top of images:annotate.
type Recognizer struct {
	svc     *visionapi.Service
	hints   []string
	timeout time.Duration
}

// New creates a Vision recognizer. The API key and endpoint come from cfg;
// opts are appended last so tests can redirect the client.
func New(ctx context.Context, cfg *config.OCRConfig, opts ...option.ClientOption) (*Recognizer, error) {
	var all []option.ClientOption
	if cfg.VisionAPIKey != "" {
		all = append(all, option.WithAPIKey(cfg.VisionAPIKey))
	}
	if cfg.VisionEndpoint != "" {
		all = append(all, option.WithEndpoint(cfg.VisionEndpoint))
	}
	all = append(all, opts...)

	svc, err := visionapi.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("vision.New: %w", err)
	}
	return &Recognizer{
		svc:     svc,
		hints:   cfg.LanguageHints,
		timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
	}, nil
}

func (r *Recognizer) Recognize(ctx context.Context, input port.RecognizeInput) (*port.RecognizeOutput, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	req := &visionapi.BatchAnnotateImagesRequest{
		Requests: []*visionapi.AnnotateImageRequest{
			{
				Image:    &visionapi.Image{Content: base64.StdEncoding.EncodeToString(input.Image)},
				Features: []*visionapi.Feature{{Type: featureTextDetection, MaxResults: 1}},
				ImageContext: &visionapi.ImageContext{
					LanguageHints: r.hints,
				},
			},
		},
	}

	resp, err := r.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		var gErr *googleapi.Error
		if errors.As(err, &gErr) && gErr.Code == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return nil, fmt.Errorf("vision.Recognize: %w", err)
	}

	if err := annotateError(resp); err != nil {
		return nil, err
	}
	return &port.RecognizeOutput{
		Text:     strings.TrimSpace(textOf(resp)),
		Provider: domain.ProviderVision,
	}, nil
}

func textOf(resp *visionapi.BatchAnnotateImagesResponse) string {
	if len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return ""
	}
	r := resp.Responses[0]
	if r.FullTextAnnotation != nil && r.FullTextAnnotation.Text != "" {
		return r.FullTextAnnotation.Text
	}
	if len(r.TextAnnotations) > 0 && r.TextAnnotations[0] != nil {
		return r.TextAnnotations[0].Description
	}
	return ""
}

// annotateError reports a per-image failure carried inside a 200 response.
func annotateError(resp *visionapi.BatchAnnotateImagesResponse) error {
	if len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return nil
	}
	if st := resp.Responses[0].Error; st != nil && st.Message != "" {
		return fmt.Errorf("vision.Recognize: annotate failed (code %d): %s", st.Code, st.Message)
	}
	return nil
}
