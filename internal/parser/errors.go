package parser

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidOutput is returned when a provider answers with something that
// is not a contact document.
var ErrInvalidOutput = errors.New("provider returned invalid contact output")

// defaultRetryAfter applies when a 429 carries no usable Retry-After.
const defaultRetryAfter = 60

// RateLimitError indicates a provider returned HTTP 429.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. If retryAfterSecs is 0, defaults to 60s.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	if retryAfterSecs <= 0 {
		retryAfterSecs = defaultRetryAfter
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: time.Duration(retryAfterSecs) * time.Second,
		Provider:   provider,
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Both delta-seconds and HTTP-date forms are accepted; anything else is 0.
func ParseRetryAfterHeader(val string) int {
	val = strings.TrimSpace(val)
	if val == "" {
		return 0
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return max(secs, 0)
	}
	if at, err := http.ParseTime(val); err == nil {
		return max(int(time.Until(at).Seconds()), 0)
	}
	return 0
}

// StatusError builds the error for a non-200 provider response; 429 becomes a
// RateLimitError so the fallback chain can open the provider's circuit.
func StatusError(provider string, resp *http.Response, body []byte) error {
	baseErr := fmt.Errorf("%s API error (status %d): %s", provider, resp.StatusCode, truncate(string(body), 500))
	if resp.StatusCode == http.StatusTooManyRequests {
		return NewRateLimitError(provider, baseErr, ParseRetryAfterHeader(resp.Header.Get("Retry-After")))
	}
	return baseErr
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
