// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults reproduce the values the tool was first deployed with.
const (
	DefaultSourceURL        = "https://epgshare01.online/epgshare01/epg_ripper_PL1.xml.gz"
	DefaultOutputPath       = "epg-en.xml"
	DefaultSourceTimeout    = 2 * time.Minute
	DefaultMaxBytes   int64 = 512 << 20
	DefaultProvider         = "google"
	DefaultFromLang         = "pl"
	DefaultToLang           = "en"
	DefaultAttempts         = 3
	DefaultDelay            = 1 * time.Second
	DefaultRetryDelay       = 2 * time.Second
	DefaultTimeout          = 15 * time.Second
	DefaultBreakerThreshold = 0
	DefaultBreakerReset     = 1 * time.Minute
	DefaultGoogleEndpoint   = "https://translate.googleapis.com/translate_a/single"
	DefaultOpenAIModel      = "gpt-4o-mini"
	DefaultTracingExporter  = "grpc"
	DefaultTracingEndpoint  = "localhost:4317"
)

// DefaultChannels is the allow-list used when none is configured.
var DefaultChannels = []string{"Sportklub HD.pl", "Sportklub.HD.pl"}

// Environment keys. They take precedence over the config file.
const (
	EnvSourceURL        = "EPGTRANS_SOURCE_URL"
	EnvSourceTimeout    = "EPGTRANS_SOURCE_TIMEOUT"
	EnvMaxBytes         = "EPGTRANS_MAX_BYTES"
	EnvUserAgent        = "EPGTRANS_USER_AGENT"
	EnvOutput           = "EPGTRANS_OUTPUT"
	EnvChannels         = "EPGTRANS_CHANNELS"
	EnvProvider         = "EPGTRANS_PROVIDER"
	EnvFrom             = "EPGTRANS_FROM"
	EnvTo               = "EPGTRANS_TO"
	EnvAttempts         = "EPGTRANS_ATTEMPTS"
	EnvDelay            = "EPGTRANS_DELAY"
	EnvRetryDelay       = "EPGTRANS_RETRY_DELAY"
	EnvTimeout          = "EPGTRANS_TRANSLATE_TIMEOUT"
	EnvBreakerThreshold = "EPGTRANS_BREAKER_THRESHOLD"
	EnvBreakerReset     = "EPGTRANS_BREAKER_RESET"
	EnvGoogleEndpoint   = "EPGTRANS_GOOGLE_ENDPOINT"
	EnvOpenAIKey        = "EPGTRANS_OPENAI_API_KEY"
	EnvOpenAIModel      = "EPGTRANS_OPENAI_MODEL"
	EnvOpenAIBaseURL    = "EPGTRANS_OPENAI_BASE_URL"
	EnvLogLevel         = "LOG_LEVEL"
	EnvLogFormat        = "LOG_FORMAT"
	EnvMetricsTextfile  = "EPGTRANS_METRICS_TEXTFILE"
	EnvTracingEnabled   = "EPGTRANS_TRACING_ENABLED"
	EnvTracingExporter  = "EPGTRANS_TRACING_EXPORTER"
	EnvTracingEndpoint  = "EPGTRANS_TRACING_ENDPOINT"
	EnvTracingSampling  = "EPGTRANS_TRACING_SAMPLING_RATE"
)

// channelSeparator splits EPGTRANS_CHANNELS; ids themselves contain spaces and dots.
const channelSeparator = ","

// Loader handles configuration loading with precedence
type Loader struct {
	configPath      string
	version         string
	ConsumedEnvKeys map[string]struct{} // Mechanical tracking of consumed keys
}

// NewLoader creates a new configuration loader
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		version:         version,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envInt(key string, defaultVal int) int {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt(key, defaultVal)
}

func (l *Loader) envInt64(key string, defaultVal int64) int64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt64(key, defaultVal)
}

func (l *Loader) envDuration(key string, defaultVal time.Duration) time.Duration {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseDuration(key, defaultVal)
}

func (l *Loader) envFloat(key string, defaultVal float64) float64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseFloat(key, defaultVal)
}

func (l *Loader) envList(key string, defaultVal []string) []string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseList(key, channelSeparator, defaultVal)
}

// Load loads configuration with precedence: ENV > File > Defaults,
// then validates the result.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()
	cfg.Version = l.version

	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		mergeFileConfig(&cfg, fileCfg)
	}

	l.mergeEnvConfig(&cfg)

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		Source: SourceConfig{
			URL:      DefaultSourceURL,
			Timeout:  DefaultSourceTimeout,
			MaxBytes: DefaultMaxBytes,
		},
		OutputPath: DefaultOutputPath,
		Channels:   append([]string(nil), DefaultChannels...),
		Translation: TranslationConfig{
			Provider:         DefaultProvider,
			From:             DefaultFromLang,
			To:               DefaultToLang,
			Attempts:         DefaultAttempts,
			Delay:            DefaultDelay,
			RetryDelay:       DefaultRetryDelay,
			Timeout:          DefaultTimeout,
			BreakerThreshold: DefaultBreakerThreshold,
			BreakerReset:     DefaultBreakerReset,
			Google:           GoogleConfig{Endpoint: DefaultGoogleEndpoint},
			OpenAI:           OpenAIConfig{Model: DefaultOpenAIModel},
		},
		LogLevel:  "info",
		LogFormat: "console",
		Tracing: TracingConfig{
			Exporter:     DefaultTracingExporter,
			Endpoint:     DefaultTracingEndpoint,
			SamplingRate: 1.0,
		},
	}
}

func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	// Parse YAML with strict mode (unknown fields cause errors)
	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &FileConfig{}, nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	// Strict: Ensure no multiple documents or trailing content
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return &fileCfg, nil
}

// mergeFileConfig copies every field set in src over dst.
func mergeFileConfig(dst *AppConfig, src *FileConfig) {
	if src == nil {
		return
	}
	if s := src.Source; s != nil {
		setString(&dst.Source.URL, s.URL)
		setString(&dst.Source.UserAgent, s.UserAgent)
		setPtr(&dst.Source.Timeout, s.Timeout)
		setPtr(&dst.Source.MaxBytes, s.MaxBytes)
	}
	if o := src.Output; o != nil {
		setString(&dst.OutputPath, o.Path)
	}
	if len(src.Channels) > 0 {
		dst.Channels = append([]string(nil), src.Channels...)
	}
	if t := src.Translation; t != nil {
		setString(&dst.Translation.Provider, t.Provider)
		setString(&dst.Translation.From, t.From)
		setString(&dst.Translation.To, t.To)
		setPtr(&dst.Translation.Attempts, t.Attempts)
		setPtr(&dst.Translation.Delay, t.Delay)
		setPtr(&dst.Translation.RetryDelay, t.RetryDelay)
		setPtr(&dst.Translation.Timeout, t.Timeout)
		if b := t.Breaker; b != nil {
			setPtr(&dst.Translation.BreakerThreshold, b.Threshold)
			setPtr(&dst.Translation.BreakerReset, b.Reset)
		}
		if g := t.Google; g != nil {
			setString(&dst.Translation.Google.Endpoint, g.Endpoint)
		}
		if o := t.OpenAI; o != nil {
			setString(&dst.Translation.OpenAI.APIKey, o.APIKey)
			setString(&dst.Translation.OpenAI.Model, o.Model)
			setString(&dst.Translation.OpenAI.BaseURL, o.BaseURL)
		}
	}
	if lg := src.Logging; lg != nil {
		setString(&dst.LogLevel, lg.Level)
		setString(&dst.LogFormat, lg.Format)
	}
	if m := src.Metrics; m != nil {
		setString(&dst.MetricsTextfile, m.Textfile)
	}
	if tr := src.Tracing; tr != nil {
		setPtr(&dst.Tracing.Enabled, tr.Enabled)
		setString(&dst.Tracing.Exporter, tr.Exporter)
		setString(&dst.Tracing.Endpoint, tr.Endpoint)
		setPtr(&dst.Tracing.SamplingRate, tr.SamplingRate)
	}
}

func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.Source.URL = l.envString(EnvSourceURL, cfg.Source.URL)
	cfg.Source.Timeout = l.envDuration(EnvSourceTimeout, cfg.Source.Timeout)
	cfg.Source.MaxBytes = l.envInt64(EnvMaxBytes, cfg.Source.MaxBytes)
	cfg.Source.UserAgent = l.envString(EnvUserAgent, cfg.Source.UserAgent)
	cfg.OutputPath = l.envString(EnvOutput, cfg.OutputPath)
	cfg.Channels = l.envList(EnvChannels, cfg.Channels)

	tr := &cfg.Translation
	tr.Provider = l.envString(EnvProvider, tr.Provider)
	tr.From = l.envString(EnvFrom, tr.From)
	tr.To = l.envString(EnvTo, tr.To)
	tr.Attempts = l.envInt(EnvAttempts, tr.Attempts)
	tr.Delay = l.envDuration(EnvDelay, tr.Delay)
	tr.RetryDelay = l.envDuration(EnvRetryDelay, tr.RetryDelay)
	tr.Timeout = l.envDuration(EnvTimeout, tr.Timeout)
	tr.BreakerThreshold = l.envInt(EnvBreakerThreshold, tr.BreakerThreshold)
	tr.BreakerReset = l.envDuration(EnvBreakerReset, tr.BreakerReset)
	tr.Google.Endpoint = l.envString(EnvGoogleEndpoint, tr.Google.Endpoint)
	tr.OpenAI.APIKey = l.envString(EnvOpenAIKey, tr.OpenAI.APIKey)
	tr.OpenAI.Model = l.envString(EnvOpenAIModel, tr.OpenAI.Model)
	tr.OpenAI.BaseURL = l.envString(EnvOpenAIBaseURL, tr.OpenAI.BaseURL)

	cfg.LogLevel = l.envString(EnvLogLevel, cfg.LogLevel)
	cfg.LogFormat = l.envString(EnvLogFormat, cfg.LogFormat)
	cfg.MetricsTextfile = l.envString(EnvMetricsTextfile, cfg.MetricsTextfile)

	cfg.Tracing.Enabled = l.envBool(EnvTracingEnabled, cfg.Tracing.Enabled)
	cfg.Tracing.Exporter = l.envString(EnvTracingExporter, cfg.Tracing.Exporter)
	cfg.Tracing.Endpoint = l.envString(EnvTracingEndpoint, cfg.Tracing.Endpoint)
	cfg.Tracing.SamplingRate = l.envFloat(EnvTracingSampling, cfg.Tracing.SamplingRate)
}

func setString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

func setPtr[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
