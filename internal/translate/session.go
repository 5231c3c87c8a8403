// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ManuGH/epgtrans/internal/cache"
	"github.com/ManuGH/epgtrans/internal/epg"
	xglog "github.com/ManuGH/epgtrans/internal/log"
	"github.com/ManuGH/epgtrans/internal/metrics"
	"github.com/ManuGH/epgtrans/internal/ratelimit"
	"github.com/ManuGH/epgtrans/internal/resilience"
	"github.com/cenkalti/backoff/v5"
)

// previewRunes is how much of a string progress logs show.
const previewRunes = 30

// Options configure a Session.
type Options struct {
	// Provider names the backend in logs and spans.
	Provider string
	From     string
	To       string
	// Attempts is the number of remote calls per string before falling back.
	Attempts int
	// Delay is the minimum spacing between remote calls.
	Delay time.Duration
	// RetryDelay is the wait between failed attempts when BackOff is nil.
	RetryDelay time.Duration
	// Timeout bounds a single remote call. Zero means no extra bound.
	Timeout time.Duration
	// BackOff builds the policy between failed attempts.
	BackOff func() backoff.BackOff
	// BreakerThreshold is the number of consecutive failed strings that
	// opens the circuit. Zero disables the breaker.
	BreakerThreshold int
	BreakerReset     time.Duration
}

// Stats summarizes a session.
type Stats struct {
	// Calls counts successful remote translations.
	Calls int
	// Failures counts strings that fell back to the original text.
	Failures int
	// Rejected counts strings skipped while the circuit was open.
	Rejected int
	// CacheHits counts lookups answered from the cache.
	CacheHits int
	// CacheEntries is the number of distinct translated strings.
	CacheEntries int
}

// Session translates strings for one run. It owns the cache and counters
// and is not safe for concurrent use.
type Session struct {
	client  Client
	opts    Options
	cache   cache.Cache[string, string]
	pacer   *ratelimit.Pacer
	breaker *resilience.CircuitBreaker
	stats   Stats
}

// NewSession wires a Client with caching, pacing, retries and the breaker.
func NewSession(client Client, opts Options) *Session {
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	s := &Session{
		client: client,
		opts:   opts,
		cache:  cache.NewMemory[string, string](),
		pacer:  ratelimit.NewPacer(opts.Delay),
	}
	if opts.BreakerThreshold > 0 {
		s.breaker = resilience.NewCircuitBreaker("translate", opts.BreakerThreshold, opts.BreakerReset,
			resilience.WithIgnore(func(err error) bool { return errors.Is(err, context.Canceled) }))
	}
	return s
}

// Translate returns text in the target language, or text itself when it is
// blank or every attempt failed. Failures are logged, never returned.
func (s *Session) Translate(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		metrics.RecordTranslation(metrics.OutcomeSkipped)
		return text
	}
	if v, ok := s.cache.Get(text); ok {
		metrics.RecordTranslation(metrics.OutcomeCached)
		return v
	}

	logger := xglog.WithComponentFromContext(ctx, "translate")

	var translated string
	call := func() error {
		var err error
		translated, err = s.remote(ctx, text)
		return err
	}
	var err error
	if s.breaker != nil {
		err = s.breaker.Execute(call)
	} else {
		err = call()
	}

	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		s.stats.Rejected++
		metrics.RecordTranslation(metrics.OutcomeBreakerOpen)
		logger.Debug().
			Str(xglog.FieldEvent, "translate.breaker_open").
			Str(xglog.FieldSource, preview(text)).
			Msg("translation service unavailable, keeping original text")
		return text
	case err != nil:
		s.stats.Failures++
		metrics.RecordTranslation(metrics.OutcomeFailure)
		logger.Warn().
			Err(err).
			Str(xglog.FieldEvent, "translate.fallback").
			Str(xglog.FieldSource, preview(text)).
			Int(xglog.FieldAttempts, s.opts.Attempts).
			Msg("all translation attempts failed, returning original text")
		return text
	}

	s.cache.Set(text, translated)
	s.stats.Calls++
	metrics.RecordTranslation(metrics.OutcomeSuccess)
	metrics.SetTranslationCacheEntries(s.cache.Len())
	logger.Info().
		Str(xglog.FieldEvent, "translate.call").
		Int(xglog.FieldCall, s.stats.Calls).
		Str(xglog.FieldSource, preview(text)).
		Str(xglog.FieldTarget, preview(translated)).
		Msg("translated")
	return translated
}

// remote runs the bounded retry loop for one string.
func (s *Session) remote(ctx context.Context, text string) (string, error) {
	logger := xglog.WithComponentFromContext(ctx, "translate")
	attempt := 0

	op := func() (string, error) {
		attempt++
		if err := s.pacer.Wait(ctx); err != nil {
			return "", backoff.Permanent(err)
		}

		callCtx := ctx
		if s.opts.Timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
			defer cancel()
		}

		start := time.Now()
		out, err := s.client.Translate(callCtx, text, s.opts.From, s.opts.To)
		metrics.ObserveTranslationAttempt(time.Since(start))
		if err == nil && strings.TrimSpace(out) == "" {
			err = ErrEmptyTranslation
		}
		if err == nil {
			return out, nil
		}

		metrics.IncTranslationRetry()
		logger.Warn().
			Err(err).
			Str(xglog.FieldEvent, "translate.attempt_failed").
			Int(xglog.FieldAttempt, attempt).
			Int(xglog.FieldAttempts, s.opts.Attempts).
			Str(xglog.FieldSource, preview(text)).
			Msg("translation attempt failed")
		if ctx.Err() != nil {
			return "", backoff.Permanent(ctx.Err())
		}
		return "", err
	}

	out, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(s.newBackOff()),
		backoff.WithMaxTries(uint(s.opts.Attempts)),
		backoff.WithMaxElapsedTime(0),
	)
	if err != nil {
		return "", fmt.Errorf("%w after %d attempts: %w", ErrTranslation, attempt, err)
	}
	return out, nil
}

func (s *Session) newBackOff() backoff.BackOff {
	if s.opts.BackOff != nil {
		return s.opts.BackOff()
	}
	if s.opts.RetryDelay <= 0 {
		return &backoff.ZeroBackOff{}
	}
	return backoff.NewConstantBackOff(s.opts.RetryDelay)
}

// Programme returns a copy of p with its first title and first desc
// translated. A lang attribute on translated text is relabelled to the
// target language.
func (s *Session) Programme(ctx context.Context, p epg.Programme) epg.Programme {
	out := p.Clone()
	s.first(ctx, out.Titles)
	s.first(ctx, out.Descs)
	return out
}

func (s *Session) first(ctx context.Context, ts []epg.Text) {
	if len(ts) == 0 || ts[0].Value == "" {
		return
	}
	t := &ts[0]
	orig := t.Value
	t.Value = s.Translate(ctx, orig)
	if t.Lang != "" && t.Value != orig {
		t.Lang = s.opts.To
	}
}

// Stats returns the session counters.
func (s *Session) Stats() Stats {
	st := s.stats
	cs := s.cache.Stats()
	st.CacheHits = int(cs.Hits)
	st.CacheEntries = cs.CurrentSize
	return st
}
