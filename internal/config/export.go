// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

// Redacted replaces secrets in dumped configuration.
const Redacted = "***"

// ToFileConfig converts a resolved configuration back to its YAML form.
// Secrets are replaced by Redacted.
func ToFileConfig(cfg AppConfig) FileConfig {
	tr := cfg.Translation
	apiKey := ""
	if tr.OpenAI.APIKey != "" {
		apiKey = Redacted
	}
	return FileConfig{
		Source: &FileSource{
			URL:       cfg.Source.URL,
			Timeout:   ptr(cfg.Source.Timeout),
			MaxBytes:  ptr(cfg.Source.MaxBytes),
			UserAgent: cfg.Source.UserAgent,
		},
		Output:   &FileOutput{Path: cfg.OutputPath},
		Channels: append([]string(nil), cfg.Channels...),
		Translation: &FileTranslation{
			Provider:   tr.Provider,
			From:       tr.From,
			To:         tr.To,
			Attempts:   ptr(tr.Attempts),
			Delay:      ptr(tr.Delay),
			RetryDelay: ptr(tr.RetryDelay),
			Timeout:    ptr(tr.Timeout),
			Breaker: &FileBreaker{
				Threshold: ptr(tr.BreakerThreshold),
				Reset:     ptr(tr.BreakerReset),
			},
			Google: &FileGoogle{Endpoint: tr.Google.Endpoint},
			OpenAI: &FileOpenAI{APIKey: apiKey, Model: tr.OpenAI.Model, BaseURL: tr.OpenAI.BaseURL},
		},
		Logging: &FileLogging{Level: cfg.LogLevel, Format: cfg.LogFormat},
		Metrics: &FileMetrics{Textfile: cfg.MetricsTextfile},
		Tracing: &FileTracing{
			Enabled:      ptr(cfg.Tracing.Enabled),
			Exporter:     cfg.Tracing.Exporter,
			Endpoint:     cfg.Tracing.Endpoint,
			SamplingRate: ptr(cfg.Tracing.SamplingRate),
		},
	}
}

func ptr[T any](v T) *T { return &v }
