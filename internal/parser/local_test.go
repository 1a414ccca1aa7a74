package parser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sitediary/internal/domain"
	"sitediary/internal/parser"
	"sitediary/internal/port"
	"sitediary/mocks"
)

func TestLocalParser_Parse(t *testing.T) {
	out, err := parser.NewLocalParser().Parse(context.Background(), cardInput)

	require.NoError(t, err)
	assert.Equal(t, domain.ProviderLocal, out.ModelUsed)
	assert.Equal(t, "ACME LTD", out.Contact.Company.Value)
	assert.Equal(t, "john@acme.gr", out.Contact.Email.Value)
}

func TestLocalParser_EmptyText(t *testing.T) {
	out, err := parser.NewLocalParser().Parse(context.Background(), port.ParseInput{})

	require.NoError(t, err)
	assert.False(t, out.Contact.Company.Present())
}

func TestMeteredParser_ChargesBeforeCalling(t *testing.T) {
	meter := new(mocks.MockUsageMeter)
	next := new(mocks.MockContactParser)

	meter.On("Charge", mock.Anything, "claude").Return(nil).Once()
	next.On("Parse", mock.Anything, cardInput).Return(fallbackOutput("claude"), nil).Once()

	out, err := parser.NewMeteredParser(next, "claude", meter).Parse(context.Background(), cardInput)

	require.NoError(t, err)
	assert.Equal(t, "claude", out.ModelUsed)
	meter.AssertExpectations(t)
	next.AssertExpectations(t)
}

func TestMeteredParser_QuotaExceeded(t *testing.T) {
	meter := new(mocks.MockUsageMeter)
	next := new(mocks.MockContactParser)

	meter.On("Charge", mock.Anything, "claude").Return(domain.ErrQuotaExceeded)

	_, err := parser.NewMeteredParser(next, "claude", meter).Parse(context.Background(), cardInput)

	assert.True(t, errors.Is(err, domain.ErrQuotaExceeded))
	next.AssertNotCalled(t, "Parse", mock.Anything, mock.Anything)
}
