package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"sitediary/internal/domain"
	"sitediary/internal/handler"
	"sitediary/mocks"
)

func TestUsageHandler_ForMonth(t *testing.T) {
	usageSvc := new(mocks.MockUsageService)
	h := handler.NewUsageHandler(usageSvc)

	usageSvc.On("ForMonth", mock.Anything, "2025-03").Return([]domain.APIUsage{
		{Month: "2025-03", Provider: domain.ProviderVision, Calls: 42},
	}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/usage?month=2025-03", nil)
	h.ForMonth(c)

	assert.Equal(t, http.StatusOK, w.Code)
	rows := decode(t, w).Data.([]interface{})
	assert.Len(t, rows, 1)
}

func TestUsageHandler_InvalidMonth(t *testing.T) {
	usageSvc := new(mocks.MockUsageService)
	h := handler.NewUsageHandler(usageSvc)
	usageSvc.On("ForMonth", mock.Anything, "March").Return(nil, domain.ErrInvalidMonth)

	c, w := newContext(http.MethodGet, "/api/v1/usage?month=March", nil)
	h.ForMonth(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
