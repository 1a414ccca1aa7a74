package openai_test

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
	"sitediary/internal/parser/openai"
	"sitediary/internal/port"
)

func newTestParser(serverURL string) *openai.Parser {
	cfg := &config.ParserProviderConfig{
		Provider:     "openai",
		APIKey:       "sk-test",
		DefaultModel: "gpt-4o",
		TimeoutSecs:  5,
	}
	return openai.NewParserWithEndpoint(cfg, serverURL)
}

func completion(content, finish string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"content": content}, "finish_reason": finish},
		},
	}
}

func TestOpenAIParser_Parse_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "gpt-4o", reqBody["model"])
		format := reqBody["response_format"].(map[string]interface{})
		assert.Equal(t, "json_object", format["type"])
		assert.Len(t, reqBody["messages"], 2)

		_ = json.NewEncoder(w).Encode(completion(`{"website":{"value":"www.acme.gr","confidence":0.9}}`, "stop"))
	}))
	defer server.Close()

	result, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{Text: "www.acme.gr"})

	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", result.ModelUsed)
	assert.Equal(t, "www.acme.gr", result.Contact.Website.Value)
}

func TestOpenAIParser_Parse_Length(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(completion(`{"company":`, "length"))
	}))
	defer server.Close()

	_, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{Text: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestOpenAIParser_Parse_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "5")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{Text: "x"})

	var rlErr *parser.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "openai", rlErr.Provider)
}
