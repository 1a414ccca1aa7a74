package claude_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitediary/internal/config"
	"sitediary/internal/parser"
	"sitediary/internal/parser/claude"
	"sitediary/internal/port"
)

const contactJSON = `{"lang":"en","company":{"value":"ACME LTD","confidence":0.95},"first_name":{"value":"John","confidence":0.9},"phones":{"value":["+30 694 1234567"],"confidence":0.9}}`

func newTestParser(serverURL string) *claude.Parser {
	cfg := &config.ParserProviderConfig{
		Provider:     "claude",
		APIKey:       "test-api-key",
		DefaultModel: "claude-sonnet-4-20250514",
		TimeoutSecs:  5,
	}
	return claude.NewParserWithEndpoint(cfg, serverURL)
}

func TestClaudeParser_Parse_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "claude-sonnet-4-20250514", reqBody["model"])

		messages := reqBody["messages"].([]interface{})
		assert.Len(t, messages, 1)
		msg := messages[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])
		assert.Contains(t, msg["content"], "ACME LTD\nJohn Smith")

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content":     []map[string]interface{}{{"type": "text", "text": contactJSON}},
			"stop_reason": "end_turn",
		})
	}))
	defer server.Close()

	result, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{Text: "ACME LTD\nJohn Smith"})

	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-20250514", result.ModelUsed)
	assert.NotEmpty(t, result.PromptUsed)
	assert.Equal(t, "ACME LTD", result.Contact.Company.Value)
	assert.Equal(t, 0.95, result.Contact.Company.Confidence)
	assert.Equal(t, []string{"+30 694 1234567"}, result.Contact.Phones.Value)
	assert.Equal(t, "ACME LTD\nJohn Smith", result.Contact.RawText)
}

func TestClaudeParser_Parse_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "45")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	_, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{Text: "x"})

	var rlErr *parser.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, "claude", rlErr.Provider)
	assert.Equal(t, 45*time.Second, rlErr.RetryAfter)
}

func TestClaudeParser_Parse_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal"}`))
	}))
	defer server.Close()

	_, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{Text: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClaudeParser_Parse_Truncated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content":     []map[string]interface{}{{"type": "text", "text": `{"company":`}},
			"stop_reason": "max_tokens",
		})
	}))
	defer server.Close()

	_, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{Text: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestClaudeParser_Parse_NotAContact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]interface{}{{"type": "text", "text": "Sorry, I cannot help."}},
		})
	}))
	defer server.Close()

	_, err := newTestParser(server.URL).Parse(context.Background(), port.ParseInput{Text: "x"})

	assert.ErrorIs(t, err, parser.ErrInvalidOutput)
}

func TestClaudeParser_Registered(t *testing.T) {
	p, err := parser.NewParser(&config.ParserProviderConfig{Provider: "claude", APIKey: "k"})

	require.NoError(t, err)
	assert.IsType(t, &claude.Parser{}, p)
}
