// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package epg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Success(t *testing.T) {
	payload := gzipBytes(t, []byte(sampleGuide))
	var gotUA, gotAE string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAE = r.Header.Get("Accept-Encoding")
		w.Header().Set("Content-Type", "application/gzip")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL+"/guide.xml.gz", srv.Client(), WithUserAgent("epgtrans-test"))
	raw, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleGuide, string(raw))
	assert.Equal(t, "epgtrans-test", gotUA)
	assert.Equal(t, "identity", gotAE)
}

func TestFetcher_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusNoContent + 100} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := NewFetcher(srv.URL, srv.Client()).Fetch(context.Background())
		srv.Close()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNetwork)
		assert.NotErrorIs(t, err, ErrDecompression)

		var fe *FetchError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, status, fe.Status)
		assert.Contains(t, err.Error(), "HTTP")
	}
}

func TestFetcher_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewFetcher(url, nil).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewFetcher(srv.URL, srv.Client()).Fetch(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetcher_NotGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleGuide))
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.URL, srv.Client()).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecompression)
	assert.NotErrorIs(t, err, ErrNetwork)
}

func TestFetcher_TruncatedGzip(t *testing.T) {
	payload := gzipBytes(t, []byte(strings.Repeat(sampleGuide, 10)))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload[:len(payload)/2])
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.URL, srv.Client()).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecompression)
}

func TestFetcher_SizeLimit(t *testing.T) {
	payload := gzipBytes(t, []byte(sampleGuide))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.URL, srv.Client(), WithMaxBytes(64)).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecompression)
	assert.Contains(t, err.Error(), "size limit")

	raw, err := NewFetcher(srv.URL, srv.Client(), WithMaxBytes(int64(len(sampleGuide)))).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, raw, len(sampleGuide))
}

func TestDecompress_Empty(t *testing.T) {
	_, err := Decompress(nil, 0)
	assert.Error(t, err)
}

func TestFetcher_DownloadReportsSizes(t *testing.T) {
	payload := gzipBytes(t, []byte(sampleGuide))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	d, err := NewFetcher(srv.URL, srv.Client()).Download(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(payload), d.CompressedBytes)
	assert.Equal(t, sampleGuide, string(d.Data))
}

func TestFetchError_RedactsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.URL+"/epg.xml.gz?token=s3cret", srv.Client()).Fetch(context.Background())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "s3cret")
	assert.Contains(t, err.Error(), "HTTP 403")
}
