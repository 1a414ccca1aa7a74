package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitediary/internal/config"
	"sitediary/internal/parser"
	"sitediary/internal/parser/gemini"
	"sitediary/internal/port"
)

func newTestParser(serverURL string) *gemini.Parser {
	cfg := &config.ParserProviderConfig{
		Provider:    "gemini",
		APIKey:      "test-gemini-key",
		TimeoutSecs: 5,
	}
	return gemini.NewParserWithEndpoint(cfg, serverURL)
}

func geminiBody(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content":      map[string]interface{}{"parts": []map[string]interface{}{{"text": text}}},
				"finishReason": "STOP",
			},
		},
	}
}

func TestGeminiParser_Parse_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		genCfg := reqBody["generationConfig"].(map[string]interface{})
		assert.Equal(t, "application/json", genCfg["responseMimeType"])

		_ = json.NewEncoder(w).Encode(geminiBody(`{"lang":"el","company":{"value":"ΑΛΦΑ ΑΕ","confidence":0.9},"email":{"value":"info@alfa.gr","confidence":0.99}}`))
	}))
	defer server.Close()

	result, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{Text: "ΑΛΦΑ ΑΕ info@alfa.gr"})

	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", result.ModelUsed)
	assert.Equal(t, "ΑΛΦΑ ΑΕ", result.Contact.Company.Value)
	assert.Equal(t, "info@alfa.gr", result.Contact.Email.Value)
	assert.False(t, result.Contact.Phones.Present())
}

func TestGeminiParser_Parse_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	_, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{Text: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestGeminiParser_Parse_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{Text: "x"})

	var rlErr *parser.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "gemini", rlErr.Provider)
}
