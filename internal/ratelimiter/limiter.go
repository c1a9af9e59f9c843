package ratelimiter

import (
	"context"

	"golang.org/x/time/rate"
)

// APILimiters holds one token bucket limiter per external API.
// Each limiter enforces a steady-state rate; burst equals the rate so no
// extra burst capacity accumulates above the configured per-second maximum.
type APILimiters struct {
	limiters map[string]*rate.Limiter
}

// New creates an APILimiters with ratePerSec tokens per second for each
// named API.
func New(ratePerSec int, apis ...string) *APILimiters {
	r := rate.Limit(ratePerSec)
	burst := ratePerSec

	limiters := make(map[string]*rate.Limiter, len(apis))
	for _, api := range apis {
		limiters[api] = rate.NewLimiter(r, burst)
	}
	return &APILimiters{limiters: limiters}
}

// Wait blocks until the API's limiter grants a token. APIs without a
// registered limiter are not limited. Returns a non-nil error only if ctx
// is cancelled while waiting.
func (al *APILimiters) Wait(ctx context.Context, api string) error {
	lim, ok := al.limiters[api]
	if !ok {
		return nil
	}
	return lim.Wait(ctx)
}
