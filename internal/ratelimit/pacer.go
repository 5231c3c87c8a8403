// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package ratelimit spaces out calls to remote services.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum interval between calls. The first call passes
// immediately.
type Pacer struct {
	limiter *rate.Limiter
	waited  time.Duration
}

// NewPacer returns a Pacer allowing one call per interval. A non-positive
// interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call is allowed or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.limiter == nil {
		return ctx.Err()
	}
	start := time.Now()
	err := p.limiter.Wait(ctx)
	p.waited += time.Since(start)
	return err
}

// Waited returns the total time spent blocked in Wait.
func (p *Pacer) Waited() time.Duration {
	if p == nil {
		return 0
	}
	return p.waited
}
