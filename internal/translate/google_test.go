// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleClient_Translate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/translate_a/single", r.URL.Path)
		assert.Equal(t, "gtx", q.Get("client"))
		assert.Equal(t, "pl", q.Get("sl"))
		assert.Equal(t, "en", q.Get("tl"))
		assert.Equal(t, "t", q.Get("dt"))
		assert.Equal(t, "Wiadomości. Sport", q.Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[[["News. ","Wiadomości. ",null,null,10],["Sport","Sport",null,null,10]],null,"pl",null,null,null,1]`))
	}))
	defer srv.Close()

	g := NewGoogleClient(srv.URL+"/translate_a/single", srv.Client())
	got, err := g.Translate(context.Background(), "Wiadomości. Sport", "pl", "en")
	require.NoError(t, err)
	assert.Equal(t, "News. Sport", got)
}

func TestGoogleClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: "", wantMsg: "HTTP 429"},
		{name: "server error", status: http.StatusInternalServerError, body: "oops", wantMsg: "HTTP 500"},
		{name: "not json", status: http.StatusOK, body: "<html>", wantMsg: "google response"},
		{name: "empty array", status: http.StatusOK, body: "[]", wantErr: ErrEmptyTranslation},
		{name: "no sentences", status: http.StatusOK, body: "[null,null,\"pl\"]", wantErr: ErrEmptyTranslation},
		{name: "blank sentence", status: http.StatusOK, body: `[[[" ","Film"]]]`, wantErr: ErrEmptyTranslation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewGoogleClient(srv.URL, srv.Client()).Translate(context.Background(), "Film", "pl", "en")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestGoogleClient_TransportErrorHidesText(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewGoogleClient(url, nil).Translate(context.Background(), "tajny tekst", "pl", "en")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "tajny")
}
