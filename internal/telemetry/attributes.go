// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for pipeline spans.
const (
	// Source attributes
	SourceURLKey          = "epg.source.url"
	SourceBytesKey        = "epg.source.bytes"
	SourceDecompressedKey = "epg.source.decompressed_bytes"

	// Filter attributes
	EPGChannelsKey   = "epg.channels"
	EPGProgrammesKey = "epg.programmes"
	EPGAllowListKey  = "epg.allow_list"

	// Translation attributes
	TranslateProviderKey  = "translate.provider"
	TranslateFromKey      = "translate.from"
	TranslateToKey        = "translate.to"
	TranslateCallsKey     = "translate.calls"
	TranslateCacheHitsKey = "translate.cache_hits"
	TranslateFailuresKey  = "translate.failures"

	// Output attributes
	OutputPathKey = "epg.output.path"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// SourceAttributes describes a downloaded guide.
func SourceAttributes(url string, compressed, decompressed int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(SourceURLKey, url),
		attribute.Int(SourceBytesKey, compressed),
		attribute.Int(SourceDecompressedKey, decompressed),
	}
}

// TranslationAttributes describes a translation session.
func TranslationAttributes(provider, from, to string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	if provider != "" {
		attrs = append(attrs, attribute.String(TranslateProviderKey, provider))
	}
	attrs = append(attrs,
		attribute.String(TranslateFromKey, from),
		attribute.String(TranslateToKey, to),
	)
	return attrs
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}

// RecordError marks span as failed with err, classified by errorType.
func RecordError(span trace.Span, err error, errorType string) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetAttributes(ErrorAttributes(errorType)...)
	span.SetStatus(codes.Error, err.Error())
}
