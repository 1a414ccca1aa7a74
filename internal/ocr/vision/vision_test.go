package vision_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"sitediary/internal/config"
	"sitediary/internal/domain"
	"sitediary/internal/ocr/vision"
	"sitediary/internal/port"
)

func newTestRecognizer(t *testing.T, handler http.HandlerFunc) *vision.Recognizer {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	r, err := vision.New(context.Background(),
		&config.OCRConfig{LanguageHints: []string{"el", "en"}, TimeoutSecs: 5},
		option.WithEndpoint(server.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return r
}

func TestRecognizer_FullText(t *testing.T) {
	r := newTestRecognizer(t, func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/v1/images:annotate", req.URL.Path)

		var body struct {
			Requests []struct {
				Image struct {
					Content string `json:"content"`
				} `json:"image"`
				Features []struct {
					Type string `json:"type"`
				} `json:"features"`
				ImageContext struct {
					LanguageHints []string `json:"languageHints"`
				} `json:"imageContext"`
			} `json:"requests"`
		}
		assert.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		if assert.Len(t, body.Requests, 1) {
			got := body.Requests[0]
			assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("img")), got.Image.Content)
			assert.Equal(t, "TEXT_DETECTION", got.Features[0].Type)
			assert.Equal(t, []string{"el", "en"}, got.ImageContext.LanguageHints)
		}

		_, _ = w.Write([]byte(`{"responses":[{"fullTextAnnotation":{"text":"ACME LTD\nJohn Smith\n"}}]}`))
	})

	out, err := r.Recognize(context.Background(), port.RecognizeInput{Image: []byte("img"), ContentType: "image/jpeg"})

	require.NoError(t, err)
	assert.Equal(t, "ACME LTD\nJohn Smith", out.Text)
	assert.Equal(t, domain.ProviderVision, out.Provider)
}

func TestRecognizer_FallsBackToTextAnnotations(t *testing.T) {
	r := newTestRecognizer(t, func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"responses":[{"textAnnotations":[{"description":"ΑΛΦΑ ΑΕ"}]}]}`))
	})

	out, err := r.Recognize(context.Background(), port.RecognizeInput{Image: []byte("img")})

	require.NoError(t, err)
	assert.Equal(t, "ΑΛΦΑ ΑΕ", out.Text)
}

func TestRecognizer_NoText(t *testing.T) {
	r := newTestRecognizer(t, func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"responses":[{}]}`))
	})

	out, err := r.Recognize(context.Background(), port.RecognizeInput{Image: []byte("img")})

	require.NoError(t, err)
	assert.Empty(t, out.Text)
}

func TestRecognizer_AnnotateError(t *testing.T) {
	r := newTestRecognizer(t, func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(`{"responses":[{"error":{"code":3,"message":"Bad image data."}}]}`))
	})

	_, err := r.Recognize(context.Background(), port.RecognizeInput{Image: []byte("img")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad image data.")
}

func TestRecognizer_RateLimited(t *testing.T) {
	r := newTestRecognizer(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota"}}`))
	})

	_, err := r.Recognize(context.Background(), port.RecognizeInput{Image: []byte("img")})

	assert.True(t, errors.Is(err, vision.ErrRateLimited))
}
