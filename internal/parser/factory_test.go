package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitediary/internal/config"
	"sitediary/internal/parser"
	"sitediary/internal/port"
)

func TestFactory_RegisterAndCreate(t *testing.T) {
	parser.RegisterProvider("test-provider", func(cfg *config.ParserProviderConfig) (port.ContactParser, error) {
		return &stubParser{model: cfg.DefaultModel}, nil
	})

	p, err := parser.NewParser(&config.ParserProviderConfig{
		Provider:     "test-provider",
		APIKey:       "key",
		DefaultModel: "test-model",
	})

	require.NoError(t, err)
	out, err := p.Parse(context.Background(), port.ParseInput{})
	require.NoError(t, err)
	assert.Equal(t, "test-model", out.ModelUsed)
	assert.Contains(t, parser.Providers(), "test-provider")
}

func TestFactory_UnknownProvider(t *testing.T) {
	p, err := parser.NewParser(&config.ParserProviderConfig{
		Provider: "nonexistent-provider-xyz",
		APIKey:   "key",
	})

	assert.Nil(t, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parser provider")
}

func TestFactory_MissingAPIKey(t *testing.T) {
	parser.RegisterProvider("keyless", func(cfg *config.ParserProviderConfig) (port.ContactParser, error) {
		return &stubParser{}, nil
	})

	_, err := parser.NewParser(&config.ParserProviderConfig{Provider: "keyless"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key")
}

// stubParser is a minimal ContactParser for testing the factory.
type stubParser struct {
	model string
}

func (s *stubParser) Parse(_ context.Context, _ port.ParseInput) (*port.ParseOutput, error) {
	return &port.ParseOutput{ModelUsed: s.model}, nil
}
