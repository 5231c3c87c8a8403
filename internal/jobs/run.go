// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package jobs runs the fetch, filter, translate and write pipeline once.
package jobs

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ManuGH/epgtrans/internal/config"
	"github.com/ManuGH/epgtrans/internal/epg"
	xglog "github.com/ManuGH/epgtrans/internal/log"
	"github.com/ManuGH/epgtrans/internal/metrics"
	"github.com/ManuGH/epgtrans/internal/platform/httpx"
	platformnet "github.com/ManuGH/epgtrans/internal/platform/net"
	"github.com/ManuGH/epgtrans/internal/telemetry"
	"github.com/ManuGH/epgtrans/internal/translate"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Stages reported in errors, metrics and spans.
const (
	stageSetup     = "setup"
	stageFetch     = "fetch"
	stageParse     = "parse"
	stageTranslate = "translate"
	stageWrite     = "write"
)

// Run performs one complete cycle: download the source guide, keep the
// allow-listed channels and their programmes, translate titles and
// descriptions, and atomically write the result to cfg.OutputPath.
// On error the output file is left as it was.
func Run(ctx context.Context, cfg config.AppConfig, deps Deps) (*Stats, error) {
	now := deps.Clock
	if now == nil {
		now = time.Now
	}

	stats := &Stats{RunID: uuid.NewString(), StartTime: now(), OutputPath: cfg.OutputPath}
	ctx = xglog.ContextWithRunID(ctx, stats.RunID)
	logger := xglog.WithComponentFromContext(ctx, "jobs")

	ctx, span := telemetry.Tracer().Start(ctx, "epgtrans.run",
		trace.WithAttributes(attribute.String(xglog.FieldRunID, stats.RunID)))
	defer span.End()

	fail := func(stage string, err error) (*Stats, error) {
		err = fmt.Errorf("%s: %w", stage, err)
		metrics.RecordStageFailure(stage)
		metrics.RecordRun(false, now().Sub(stats.StartTime))
		telemetry.RecordError(span, err, stage)
		return nil, err
	}

	client := deps.Translator
	if client == nil {
		var err error
		if client, err = newTranslationClient(cfg.Translation); err != nil {
			return fail(stageSetup, err)
		}
	}

	// Fetch
	download, err := fetch(ctx, cfg.Source, deps.HTTPClient)
	if err != nil {
		return fail(stageFetch, err)
	}
	stats.CompressedBytes = download.CompressedBytes
	stats.DocumentBytes = len(download.Data)

	// Parse
	logger.Info().Str(xglog.FieldEvent, "parse.start").Msg("parsing source guide")
	_, parseSpan := telemetry.Tracer().Start(ctx, "epg.parse")
	doc, err := epg.ParseBytes(download.Data)
	if err != nil {
		telemetry.RecordError(parseSpan, err, stageParse)
		parseSpan.End()
		return fail(stageParse, err)
	}
	parseSpan.SetAttributes(
		attribute.Int(telemetry.EPGChannelsKey, len(doc.Channels)),
		attribute.Int(telemetry.EPGProgrammesKey, len(doc.Programmes)),
	)
	parseSpan.End()

	// Filter
	allow := epg.NewAllowList(cfg.Channels...)
	logger.Info().
		Str(xglog.FieldEvent, "filter.start").
		Strs(xglog.FieldChannels, allow.IDs()).
		Msg("filtering for target channels")
	tv, programmes := epg.Filter(doc, allow)
	for _, ch := range tv.Channels {
		logger.Info().
			Str(xglog.FieldEvent, "filter.channel").
			Str(xglog.FieldChannel, ch.ID).
			Msg("found and added target channel")
	}
	if len(tv.Channels) == 0 {
		logger.Warn().
			Str(xglog.FieldEvent, "filter.no_channels").
			Int(xglog.FieldChannels, len(doc.Channels)).
			Msg("no source channel matched the allow-list")
	}
	stats.ChannelsRetained = len(tv.Channels)
	metrics.SetChannelsRetained(stats.ChannelsRetained)

	// Translate
	opts := sessionOptions(cfg.Translation)
	opts.BackOff = deps.BackOff
	session := translate.NewSession(client, opts)

	logger.Info().
		Str(xglog.FieldEvent, "translate.start").
		Str(xglog.FieldProvider, opts.Provider).
		Msg("filtering and translating programmes")
	trCtx, trSpan := telemetry.Tracer().Start(ctx, "epg.translate",
		trace.WithAttributes(telemetry.TranslationAttributes(opts.Provider, opts.From, opts.To)...))
	for p := range programmes {
		if trCtx.Err() != nil {
			break
		}
		tv.Programmes = append(tv.Programmes, session.Programme(trCtx, p))
	}
	stats.ProgrammesProcessed = len(tv.Programmes)
	stats.Translation = session.Stats()
	trSpan.SetAttributes(
		attribute.Int(telemetry.EPGProgrammesKey, stats.ProgrammesProcessed),
		attribute.Int(telemetry.TranslateCallsKey, stats.Translation.Calls),
		attribute.Int(telemetry.TranslateCacheHitsKey, stats.Translation.CacheHits),
		attribute.Int(telemetry.TranslateFailuresKey, stats.Translation.Failures),
	)
	if err := ctx.Err(); err != nil {
		telemetry.RecordError(trSpan, err, stageTranslate)
		trSpan.End()
		return fail(stageTranslate, err)
	}
	trSpan.End()
	metrics.SetProgrammesProcessed(stats.ProgrammesProcessed)
	metrics.SetTranslationCacheEntries(stats.Translation.CacheEntries)

	logger.Info().
		Str(xglog.FieldEvent, "translate.summary").
		Int(xglog.FieldProgrammes, stats.ProgrammesProcessed).
		Int("api_calls", stats.Translation.Calls).
		Int("cache_hits", stats.Translation.CacheHits).
		Int("failed", stats.Translation.Failures).
		Int("skipped", stats.Translation.Rejected).
		Msg("translation summary")

	// Write
	logger.Info().
		Str(xglog.FieldEvent, "write.start").
		Str(xglog.FieldPath, cfg.OutputPath).
		Msg("saving filtered and translated guide")
	wCtx, wSpan := telemetry.Tracer().Start(ctx, "epg.write",
		trace.WithAttributes(attribute.String(telemetry.OutputPathKey, cfg.OutputPath)))
	if err := epg.Write(wCtx, cfg.OutputPath, tv); err != nil {
		telemetry.RecordError(wSpan, err, stageWrite)
		wSpan.End()
		return fail(stageWrite, err)
	}
	wSpan.End()

	stats.EndTime = now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	metrics.RecordRun(true, stats.Duration)

	logger.Info().
		Str(xglog.FieldEvent, "run.success").
		Str(xglog.FieldPath, cfg.OutputPath).
		Int(xglog.FieldChannels, stats.ChannelsRetained).
		Int(xglog.FieldProgrammes, stats.ProgrammesProcessed).
		Dur("duration", stats.Duration).
		Msg("job complete")
	return stats, nil
}

// fetch downloads the source guide within the configured timeout.
func fetch(ctx context.Context, src config.SourceConfig, client *http.Client) (*epg.Download, error) {
	logger := xglog.WithComponentFromContext(ctx, "jobs")
	if client == nil {
		client = httpx.NewClient(src.Timeout)
	}
	fetcher := epg.NewFetcher(src.URL, client,
		epg.WithMaxBytes(src.MaxBytes),
		epg.WithUserAgent(userAgent(src.UserAgent)),
	)

	safeURL := platformnet.SanitizeURL(src.URL)
	logger.Info().
		Str(xglog.FieldEvent, "fetch.start").
		Str(xglog.FieldURL, safeURL).
		Msg("downloading source guide")

	ctx, span := telemetry.Tracer().Start(ctx, "epg.fetch")
	defer span.End()
	if src.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, src.Timeout)
		defer cancel()
	}

	start := time.Now()
	d, err := fetcher.Download(ctx)
	if err != nil {
		metrics.RecordFetch(err, 0, 0, time.Since(start))
		telemetry.RecordError(span, err, stageFetch)
		return nil, err
	}
	metrics.RecordFetch(nil, d.CompressedBytes, len(d.Data), time.Since(start))
	span.SetAttributes(telemetry.SourceAttributes(safeURL, d.CompressedBytes, len(d.Data))...)

	logger.Info().
		Str(xglog.FieldEvent, "fetch.done").
		Int(xglog.FieldBytes, d.CompressedBytes).
		Int("document_bytes", len(d.Data)).
		Dur("duration", time.Since(start)).
		Msg("source guide downloaded")
	return d, nil
}

func userAgent(configured string) string {
	if configured != "" {
		return configured
	}
	return epg.GeneratorName
}
