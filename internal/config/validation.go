// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// Validate checks a resolved configuration. Every problem is reported,
// joined, and wraps ErrInvalidConfig.
func Validate(cfg AppConfig) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if err := validateHTTPURL(cfg.Source.URL); err != nil {
		add("source.url: %v", err)
	}
	if cfg.Source.Timeout <= 0 {
		add("source.timeout must be positive, got %s", cfg.Source.Timeout)
	}
	if cfg.Source.MaxBytes <= 0 {
		add("source.maxBytes must be positive, got %d", cfg.Source.MaxBytes)
	}
	if strings.TrimSpace(cfg.OutputPath) == "" {
		add("output.path is empty")
	}
	if !hasNonBlank(cfg.Channels) {
		add("channels: allow-list is empty")
	}

	tr := cfg.Translation
	switch tr.Provider {
	case "google":
		if err := validateHTTPURL(tr.Google.Endpoint); err != nil {
			add("translation.google.endpoint: %v", err)
		}
	case "openai":
		if strings.TrimSpace(tr.OpenAI.APIKey) == "" {
			add("translation.openai.apiKey is required for provider openai")
		}
		if tr.OpenAI.BaseURL != "" {
			if err := validateHTTPURL(tr.OpenAI.BaseURL); err != nil {
				add("translation.openai.baseURL: %v", err)
			}
		}
	default:
		add("translation.provider %q unsupported (google, openai)", tr.Provider)
	}
	from, fromErr := language.Parse(tr.From)
	if fromErr != nil {
		add("translation.from %q: %v", tr.From, fromErr)
	}
	to, toErr := language.Parse(tr.To)
	if toErr != nil {
		add("translation.to %q: %v", tr.To, toErr)
	}
	if fromErr == nil && toErr == nil && from == to {
		add("translation.from and translation.to are both %q", tr.From)
	}
	if tr.Attempts < 1 {
		add("translation.attempts must be at least 1, got %d", tr.Attempts)
	}
	if tr.Delay < 0 || tr.RetryDelay < 0 {
		add("translation delays must not be negative")
	}
	if tr.Timeout <= 0 {
		add("translation.timeout must be positive, got %s", tr.Timeout)
	}
	if tr.BreakerThreshold < 0 {
		add("translation.breaker.threshold must not be negative, got %d", tr.BreakerThreshold)
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "", "console", "json":
	default:
		add("logging.format %q unsupported (console, json)", cfg.LogFormat)
	}

	if cfg.Tracing.Enabled {
		switch cfg.Tracing.Exporter {
		case "grpc", "http":
		default:
			add("tracing.exporter %q unsupported (grpc, http)", cfg.Tracing.Exporter)
		}
		if strings.TrimSpace(cfg.Tracing.Endpoint) == "" {
			add("tracing.endpoint is empty")
		}
	}

	return errors.Join(errs...)
}

func validateHTTPURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

func hasNonBlank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
