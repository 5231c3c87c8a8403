// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package metrics holds the prometheus collectors for a guide run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Translation outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeFailure     = "failure"
	OutcomeCached      = "cached"
	OutcomeSkipped     = "skipped"
	OutcomeBreakerOpen = "breaker_open"
)

var (
	// Fetch metrics
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "epgtrans_fetch_total",
		Help: "Guide download attempts by status",
	}, []string{"status"}) // status=success|error

	fetchBytes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "epgtrans_fetch_bytes",
		Help: "Size of the last downloaded guide",
	}, []string{"kind"}) // kind=compressed|decompressed

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "epgtrans_fetch_duration_seconds",
		Help:    "Guide download and decompression duration",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	// Filter metrics
	channelsRetained = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "epgtrans_channels_retained",
		Help: "Channels kept by the allow-list in the last run",
	})

	programmesProcessed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "epgtrans_programmes_processed",
		Help: "Programmes kept and translated in the last run",
	})

	// Translation metrics
	translationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "epgtrans_translation_requests_total",
		Help: "Translation requests by outcome",
	}, []string{"outcome"}) // outcome=success|failure|cached|skipped|breaker_open

	translationAttemptDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "epgtrans_translation_attempt_duration_seconds",
		Help:    "Duration of single remote translation attempts",
		Buckets: prometheus.DefBuckets,
	})

	translationRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "epgtrans_translation_retries_total",
		Help: "Remote translation attempts that failed and were retried or abandoned",
	})

	translationCacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "epgtrans_translation_cache_entries",
		Help: "Distinct strings translated in the last run",
	})

	// Run metrics
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "epgtrans_runs_total",
		Help: "Completed runs by status",
	}, []string{"status"}) // status=success|failure

	runDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "epgtrans_run_duration_seconds",
		Help: "Duration of the last run",
	})

	lastRunTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "epgtrans_last_run_timestamp_seconds",
		Help: "Unix time the last run finished",
	})

	stageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "epgtrans_stage_failures_total",
		Help: "Run failures by stage",
	}, []string{"stage"}) // stage=fetch|parse|write
)

// RecordFetch records a guide download. Sizes are ignored on failure.
func RecordFetch(err error, compressed, decompressed int, d time.Duration) {
	fetchDuration.Observe(d.Seconds())
	if err != nil {
		fetchTotal.WithLabelValues("error").Inc()
		return
	}
	fetchTotal.WithLabelValues("success").Inc()
	fetchBytes.WithLabelValues("compressed").Set(float64(compressed))
	fetchBytes.WithLabelValues("decompressed").Set(float64(decompressed))
}

// SetChannelsRetained records how many channels passed the allow-list.
func SetChannelsRetained(n int) {
	channelsRetained.Set(float64(n))
}

// SetProgrammesProcessed records how many programmes were written.
func SetProgrammesProcessed(n int) {
	programmesProcessed.Set(float64(n))
}

// RecordTranslation counts one translation request by outcome.
func RecordTranslation(outcome string) {
	translationRequests.WithLabelValues(outcome).Inc()
}

// ObserveTranslationAttempt records the latency of one remote call.
func ObserveTranslationAttempt(d time.Duration) {
	translationAttemptDuration.Observe(d.Seconds())
}

// IncTranslationRetry counts a failed remote attempt.
func IncTranslationRetry() {
	translationRetries.Inc()
}

// SetTranslationCacheEntries records the size of the translation cache.
func SetTranslationCacheEntries(n int) {
	translationCacheEntries.Set(float64(n))
}

// RecordStageFailure counts a fatal failure in the named stage.
func RecordStageFailure(stage string) {
	stageFailures.WithLabelValues(stage).Inc()
}

// RecordRun records the end of a run.
func RecordRun(success bool, d time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	runsTotal.WithLabelValues(status).Inc()
	runDuration.Set(d.Seconds())
	lastRunTimestamp.SetToCurrentTime()
}
