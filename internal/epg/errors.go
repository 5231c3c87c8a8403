// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package epg

import (
	"errors"
	"fmt"

	platformnet "github.com/ManuGH/epgtrans/internal/platform/net"
)

var (
	// Sentinel errors for errors.Is checks at the job boundary.
	ErrNetwork       = errors.New("epg: source fetch failed")
	ErrDecompression = errors.New("epg: source is not valid gzip")
	ErrParse         = errors.New("epg: source is not well-formed XML")
	ErrWrite         = errors.New("epg: output write failed")
)

// FetchError carries the context of a failed download.
type FetchError struct {
	Sentinel error
	URL      string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%v: %s", e.Sentinel, platformnet.SanitizeURL(e.URL))
	if e.Status > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Sentinel}
	}
	return []error{e.Sentinel, e.Err}
}
