// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package translate turns programme text into the target language through a
// remote service, with memoization, retries and graceful fallback.
package translate

import (
	"context"
	"errors"
)

var (
	// ErrTranslation marks a string whose remote translation failed.
	ErrTranslation = errors.New("translate: remote translation failed")
	// ErrEmptyTranslation is returned when the service answers with no text.
	ErrEmptyTranslation = errors.New("translate: empty translation")
)

// Client is a remote translation service.
type Client interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, text, from, to string) (string, error)

// Translate calls f.
func (f ClientFunc) Translate(ctx context.Context, text, from, to string) (string, error) {
	return f(ctx, text, from, to)
}
