package parser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"sitediary/internal/port"
)

// circuitState tracks rate-limit backoff for a single parser.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackOption configures a FallbackParser.
type FallbackOption func(*FallbackParser)

// WithCallTimeout bounds every single provider attempt by d.
func WithCallTimeout(d time.Duration) FallbackOption {
	return func(f *FallbackParser) { f.callTimeout = d }
}

// FallbackParser tries contact parsers in order, skipping those with open
// circuits. It implements port.ContactParser.
type FallbackParser struct {
	parsers     []port.ContactParser
	circuits    []*circuitState
	names       []string
	callTimeout time.Duration
}

// NewFallbackParser creates a FallbackParser from an ordered list of parsers and their names.
func NewFallbackParser(parsers []port.ContactParser, names []string, opts ...FallbackOption) *FallbackParser {
	circuits := make([]*circuitState, len(parsers))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	f := &FallbackParser{
		parsers:  parsers,
		circuits: circuits,
		names:    names,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Names returns the provider names in the order they are tried.
func (f *FallbackParser) Names() []string {
	return append([]string(nil), f.names...)
}

func (f *FallbackParser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	now := time.Now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, p := range f.parsers {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			zap.L().Info("parser.FallbackParser: skipping provider, circuit open",
				zap.String("provider", f.names[i]), zap.Time("reset_at", resetAt))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := f.attempt(ctx, p, input)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("parser.FallbackParser: %w", ctx.Err())
		}

		zap.L().Warn("parser.FallbackParser: provider failed",
			zap.String("provider", f.names[i]), zap.Error(err))
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil || allRateLimited {
		retryAfter := time.Until(earliestReset)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all parsers rate limited"), int(retryAfter.Seconds()))
	}

	return nil, fmt.Errorf("all parsers failed: %w", lastErr)
}

func (f *FallbackParser) attempt(ctx context.Context, p port.ContactParser, input port.ParseInput) (*port.ParseOutput, error) {
	if f.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.callTimeout)
		defer cancel()
	}
	return p.Parse(ctx, input)
}
