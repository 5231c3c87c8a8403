// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package jobs

import (
	"fmt"

	"github.com/ManuGH/epgtrans/internal/config"
	"github.com/ManuGH/epgtrans/internal/platform/httpx"
	"github.com/ManuGH/epgtrans/internal/translate"
)

// newTranslationClient builds the configured translation backend.
func newTranslationClient(cfg config.TranslationConfig) (translate.Client, error) {
	switch cfg.Provider {
	case "", "google":
		return translate.NewGoogleClient(cfg.Google.Endpoint, httpx.NewClient(cfg.Timeout)), nil
	case "openai":
		return translate.NewOpenAIClient(translate.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
		}, httpx.NewClient(cfg.Timeout)), nil
	default:
		return nil, fmt.Errorf("%w: translation provider %q", config.ErrInvalidConfig, cfg.Provider)
	}
}

// sessionOptions maps configuration onto translate.Options.
func sessionOptions(cfg config.TranslationConfig) translate.Options {
	provider := cfg.Provider
	if provider == "" {
		provider = "google"
	}
	return translate.Options{
		Provider:         provider,
		From:             cfg.From,
		To:               cfg.To,
		Attempts:         cfg.Attempts,
		Delay:            cfg.Delay,
		RetryDelay:       cfg.RetryDelay,
		Timeout:          cfg.Timeout,
		BreakerThreshold: cfg.BreakerThreshold,
		BreakerReset:     cfg.BreakerReset,
	}
}
