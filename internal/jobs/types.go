// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package jobs

import (
	"net/http"
	"time"

	"github.com/ManuGH/epgtrans/internal/translate"
	"github.com/cenkalti/backoff/v5"
)

// Deps holds the replaceable collaborators of a run. Zero values are
// built from configuration.
type Deps struct {
	// HTTPClient downloads the source guide.
	HTTPClient *http.Client
	// Translator is the remote translation service.
	Translator translate.Client
	// BackOff builds the policy between failed translation attempts.
	BackOff func() backoff.BackOff
	// Clock returns the current time.
	Clock func() time.Time
}

// Stats contains statistics about a completed run.
type Stats struct {
	RunID               string
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
	CompressedBytes     int
	DocumentBytes       int
	ChannelsRetained    int
	ProgrammesProcessed int
	Translation         translate.Stats
	OutputPath          string
}
