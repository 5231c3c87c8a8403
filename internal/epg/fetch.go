// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package epg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ManuGH/epgtrans/internal/platform/httpx"
	"github.com/klauspost/compress/gzip"
)

// DefaultMaxDocumentBytes caps the decompressed guide size.
const DefaultMaxDocumentBytes int64 = 512 << 20

var errTooLarge = errors.New("decompressed document exceeds size limit")

// Fetcher downloads a gzip-compressed guide and returns the raw markup.
type Fetcher struct {
	url       string
	client    *http.Client
	maxBytes  int64
	userAgent string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithMaxBytes limits the decompressed document size. Values <= 0 keep the default.
func WithMaxBytes(n int64) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
}

// WithUserAgent sets the User-Agent header sent with the request.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) { f.userAgent = ua }
}

// NewFetcher returns a Fetcher for url. A nil client gets an httpx client
// with the default timeout.
func NewFetcher(url string, client *http.Client, opts ...FetcherOption) *Fetcher {
	if client == nil {
		client = httpx.NewClient(0)
	}
	f := &Fetcher{
		url:       url,
		client:    client,
		maxBytes:  DefaultMaxDocumentBytes,
		userAgent: GeneratorName,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the source location.
func (f *Fetcher) URL() string { return f.url }

// Download is a fetched guide.
type Download struct {
	// CompressedBytes is the size of the payload on the wire.
	CompressedBytes int
	// Data is the decompressed markup.
	Data []byte
}

// Fetch downloads and decompresses the guide. Failures wrap ErrNetwork or
// ErrDecompression. There is no retry at this layer.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	d, err := f.Download(ctx)
	if err != nil {
		return nil, err
	}
	return d.Data, nil
}

// Download is Fetch that also reports the compressed size.
func (f *Fetcher) Download(ctx context.Context) (*Download, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &FetchError{Sentinel: ErrNetwork, URL: f.url, Err: err}
	}
	// The payload is already gzip; keep the transport from negotiating another layer.
	req.Header.Set("Accept-Encoding", "identity")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Sentinel: ErrNetwork, URL: f.url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{Sentinel: ErrNetwork, URL: f.url, Status: resp.StatusCode}
	}

	compressed, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Sentinel: ErrNetwork, URL: f.url, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	raw, err := Decompress(compressed, f.maxBytes)
	if err != nil {
		return nil, &FetchError{Sentinel: ErrDecompression, URL: f.url, Status: resp.StatusCode, Err: err}
	}
	return &Download{CompressedBytes: len(compressed), Data: raw}, nil
}

// Decompress gunzips data, refusing output larger than maxBytes.
func Decompress(data []byte, maxBytes int64) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip header: %w", err)
	}
	defer func() { _ = zr.Close() }()

	if maxBytes <= 0 {
		maxBytes = DefaultMaxDocumentBytes
	}
	out, err := io.ReadAll(io.LimitReader(zr, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("gzip stream: %w", err)
	}
	if int64(len(out)) > maxBytes {
		return nil, errTooLarge
	}
	return out, nil
}
