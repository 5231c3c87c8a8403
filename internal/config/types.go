// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

// AppConfig is the resolved configuration of a run.
type AppConfig struct {
	Version string

	Source      SourceConfig
	OutputPath  string
	Channels    []string
	Translation TranslationConfig

	LogLevel  string
	LogFormat string

	MetricsTextfile string
	Tracing         TracingConfig
}

// SourceConfig describes where the compressed guide is fetched from.
type SourceConfig struct {
	URL       string
	Timeout   time.Duration
	MaxBytes  int64
	UserAgent string
}

// TranslationConfig controls the remote translation step.
type TranslationConfig struct {
	Provider   string // "google" or "openai"
	From       string // source language code
	To         string // target language code
	Attempts   int
	Delay      time.Duration // spacing between remote calls
	RetryDelay time.Duration // wait after a failed attempt
	Timeout    time.Duration // per attempt

	BreakerThreshold int // consecutive exhausted strings; 0 disables
	BreakerReset     time.Duration

	Google GoogleConfig
	OpenAI OpenAIConfig
}

// GoogleConfig configures the public Google translate endpoint.
type GoogleConfig struct {
	Endpoint string
}

// OpenAIConfig configures the chat-completion translation backend.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// TracingConfig configures OpenTelemetry export.
type TracingConfig struct {
	Enabled      bool
	Exporter     string // "grpc" or "http"
	Endpoint     string
	SamplingRate float64
}

// FileConfig is the YAML file representation. Pointer fields distinguish
// "unset" from zero values.
type FileConfig struct {
	Source      *FileSource      `yaml:"source,omitempty"`
	Output      *FileOutput      `yaml:"output,omitempty"`
	Channels    []string         `yaml:"channels,omitempty"`
	Translation *FileTranslation `yaml:"translation,omitempty"`
	Logging     *FileLogging     `yaml:"logging,omitempty"`
	Metrics     *FileMetrics     `yaml:"metrics,omitempty"`
	Tracing     *FileTracing     `yaml:"tracing,omitempty"`
}

type FileSource struct {
	URL       string         `yaml:"url,omitempty"`
	Timeout   *time.Duration `yaml:"timeout,omitempty"`
	MaxBytes  *int64         `yaml:"maxBytes,omitempty"`
	UserAgent string         `yaml:"userAgent,omitempty"`
}

type FileOutput struct {
	Path string `yaml:"path,omitempty"`
}

type FileTranslation struct {
	Provider   string         `yaml:"provider,omitempty"`
	From       string         `yaml:"from,omitempty"`
	To         string         `yaml:"to,omitempty"`
	Attempts   *int           `yaml:"attempts,omitempty"`
	Delay      *time.Duration `yaml:"delay,omitempty"`
	RetryDelay *time.Duration `yaml:"retryDelay,omitempty"`
	Timeout    *time.Duration `yaml:"timeout,omitempty"`
	Breaker    *FileBreaker   `yaml:"breaker,omitempty"`
	Google     *FileGoogle    `yaml:"google,omitempty"`
	OpenAI     *FileOpenAI    `yaml:"openai,omitempty"`
}

type FileBreaker struct {
	Threshold *int           `yaml:"threshold,omitempty"`
	Reset     *time.Duration `yaml:"reset,omitempty"`
}

type FileGoogle struct {
	Endpoint string `yaml:"endpoint,omitempty"`
}

type FileOpenAI struct {
	APIKey  string `yaml:"apiKey,omitempty"`
	Model   string `yaml:"model,omitempty"`
	BaseURL string `yaml:"baseURL,omitempty"`
}

type FileLogging struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

type FileMetrics struct {
	Textfile string `yaml:"textfile,omitempty"`
}

type FileTracing struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Exporter     string   `yaml:"exporter,omitempty"`
	Endpoint     string   `yaml:"endpoint,omitempty"`
	SamplingRate *float64 `yaml:"samplingRate,omitempty"`
}
