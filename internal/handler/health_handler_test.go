package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"sitediary/internal/handler"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	h := handler.NewHealthHandler(stubPinger{})

	c, w := newContext(http.MethodGet, "/healthz", nil)
	h.Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newContext(http.MethodGet, "/readyz", nil)
	h.Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	h = handler.NewHealthHandler(stubPinger{err: errors.New("connection refused")})
	c, w = newContext(http.MethodGet, "/readyz", nil)
	h.Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
}
