// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ManuGH/epgtrans/internal/platform/httpx"
)

// maxGoogleResponseBytes bounds the JSON body read from the service.
const maxGoogleResponseBytes = 1 << 20

// GoogleClient talks to the public translate_a/single endpoint.
type GoogleClient struct {
	endpoint string
	client   *http.Client
}

// NewGoogleClient creates a client for endpoint. A nil client gets an httpx
// client with the default timeout.
func NewGoogleClient(endpoint string, client *http.Client) *GoogleClient {
	if client == nil {
		client = httpx.NewClient(0)
	}
	return &GoogleClient{endpoint: endpoint, client: client}
}

// Translate implements Client.
func (g *GoogleClient) Translate(ctx context.Context, text, from, to string) (string, error) {
	u, err := url.Parse(g.endpoint)
	if err != nil {
		return "", fmt.Errorf("google endpoint: %w", err)
	}
	q := u.Query()
	q.Set("client", "gtx")
	q.Set("sl", from)
	q.Set("tl", to)
	q.Set("dt", "t")
	q.Set("q", text)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		// url.Error repeats the query, which holds the text.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return "", fmt.Errorf("google request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxGoogleResponseBytes))
	if err != nil {
		return "", fmt.Errorf("google response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google response: HTTP %d", resp.StatusCode)
	}
	return parseGoogleResponse(body)
}

// parseGoogleResponse extracts the translated sentences from the nested
// array payload: [[["translated","source",...],...],...].
func parseGoogleResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("google response: %w", err)
	}
	if len(payload) == 0 {
		return "", ErrEmptyTranslation
	}

	var sentences [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &sentences); err != nil {
		return "", fmt.Errorf("google response sentences: %w", err)
	}

	var b strings.Builder
	for _, s := range sentences {
		if len(s) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(s[0], &part); err != nil {
			continue
		}
		b.WriteString(part)
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyTranslation
	}
	return b.String(), nil
}
