// Package ratelimit paces requests against the registry. The site bans IPs
// that hammer the form, so the batch runner waits on a Pacer between records.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum interval between consecutive records using the
// token bucket from golang.org/x/time/rate with a burst of one.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer that releases one record per interval. A zero or
// negative interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next record may proceed or the context is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return p.limiter.Wait(ctx)
}

// Interval returns the configured minimum spacing between records.
func (p *Pacer) Interval() time.Duration {
	if p.limiter.Limit() == rate.Inf {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(p.limiter.Limit()))
}
