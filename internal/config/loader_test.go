// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader("", "v1.2.3").Load()
	require.NoError(t, err)

	assert.Equal(t, "v1.2.3", cfg.Version)
	assert.Equal(t, DefaultSourceURL, cfg.Source.URL)
	assert.Equal(t, DefaultOutputPath, cfg.OutputPath)
	assert.Equal(t, []string{"Sportklub HD.pl", "Sportklub.HD.pl"}, cfg.Channels)
	assert.Equal(t, "pl", cfg.Translation.From)
	assert.Equal(t, "en", cfg.Translation.To)
	assert.Equal(t, 3, cfg.Translation.Attempts)
	assert.Equal(t, time.Second, cfg.Translation.Delay)
	assert.Equal(t, 2*time.Second, cfg.Translation.RetryDelay)
	assert.Equal(t, "google", cfg.Translation.Provider)
	assert.Zero(t, cfg.Translation.BreakerThreshold, "breaker is opt-in")
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoad_DefaultChannelsNotShared(t *testing.T) {
	cfg := Defaults()
	cfg.Channels[0] = "mutated"
	assert.Equal(t, "Sportklub HD.pl", DefaultChannels[0])
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
source:
  url: https://guides.example.com/de.xml.gz
  timeout: 30s
output:
  path: /tmp/out.xml
channels:
  - "Das Erste.de"
  - "ZDF.de"
translation:
  from: de
  to: en
  attempts: 5
  delay: 250ms
  breaker:
    threshold: 4
logging:
  level: debug
  format: json
metrics:
  textfile: /tmp/epgtrans.prom
`)

	cfg, err := NewLoader(path, "dev").Load()
	require.NoError(t, err)

	assert.Equal(t, "https://guides.example.com/de.xml.gz", cfg.Source.URL)
	assert.Equal(t, 30*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "/tmp/out.xml", cfg.OutputPath)
	assert.Equal(t, []string{"Das Erste.de", "ZDF.de"}, cfg.Channels)
	assert.Equal(t, "de", cfg.Translation.From)
	assert.Equal(t, 5, cfg.Translation.Attempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Translation.Delay)
	assert.Equal(t, DefaultRetryDelay, cfg.Translation.RetryDelay, "unset keys keep defaults")
	assert.Equal(t, 4, cfg.Translation.BreakerThreshold, "file enables the breaker")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/tmp/epgtrans.prom", cfg.MetricsTextfile)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "config.yml", `
output:
  path: from-file.xml
translation:
  to: de
`)
	t.Setenv(EnvOutput, "from-env.xml")
	t.Setenv(EnvChannels, "A.pl, B HD.pl ,,")
	t.Setenv(EnvAttempts, "4")
	t.Setenv(EnvRetryDelay, "10ms")

	l := NewLoader(path, "dev")
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env.xml", cfg.OutputPath)
	assert.Equal(t, "de", cfg.Translation.To)
	assert.Equal(t, []string{"A.pl", "B HD.pl"}, cfg.Channels)
	assert.Equal(t, 4, cfg.Translation.Attempts)
	assert.Equal(t, 10*time.Millisecond, cfg.Translation.RetryDelay)
	assert.Contains(t, l.ConsumedEnvKeys, EnvChannels)
	assert.Contains(t, l.ConsumedEnvKeys, EnvTracingSampling)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv(EnvAttempts, "many")
	t.Setenv(EnvDelay, "soon")

	cfg, err := NewLoader("", "dev").Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultAttempts, cfg.Translation.Attempts)
	assert.Equal(t, DefaultDelay, cfg.Translation.Delay)
}

func TestLoad_StrictUnknownField(t *testing.T) {
	path := writeConfig(t, "config.yaml", "translation:\n  sourceLang: pl\n")

	_, err := NewLoader(path, "dev").Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownConfigField)
}

func TestLoad_MultipleDocuments(t *testing.T) {
	path := writeConfig(t, "config.yaml", "output:\n  path: a.xml\n---\noutput:\n  path: b.xml\n")

	_, err := NewLoader(path, "dev").Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple documents")
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", "")

	cfg, err := NewLoader(path, "dev").Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputPath, cfg.OutputPath)
}

func TestLoad_RejectsNonYAML(t *testing.T) {
	path := writeConfig(t, "config.json", "{}")

	_, err := NewLoader(path, "dev").Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only YAML")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml"), "dev").Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
