// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAIServer(t *testing.T, reply string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, openai.GPT4oMini, req.Model)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[0].Content, "from Polish to English")
		assert.Equal(t, "Film", req.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "chatcmpl-1",
			Object: "chat.completion",
			Model:  req.Model,
			Choices: []openai.ChatCompletionChoice{{
				Index:        0,
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
				FinishReason: openai.FinishReasonStop,
			}},
		})
	}))
}

func TestOpenAIClient_Translate(t *testing.T) {
	srv := openAIServer(t, " Movie\n", http.StatusOK)
	defer srv.Close()

	c := NewOpenAIClient(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1/"}, srv.Client())
	got, err := c.Translate(context.Background(), "Film", "pl", "en")
	require.NoError(t, err)
	assert.Equal(t, "Movie", got)
}

func TestOpenAIClient_EmptyReply(t *testing.T) {
	srv := openAIServer(t, "   ", http.StatusOK)
	defer srv.Close()

	c := NewOpenAIClient(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"}, srv.Client())
	_, err := c.Translate(context.Background(), "Film", "pl", "en")
	assert.ErrorIs(t, err, ErrEmptyTranslation)
}

func TestOpenAIClient_APIError(t *testing.T) {
	srv := openAIServer(t, "", http.StatusTooManyRequests)
	defer srv.Close()

	c := NewOpenAIClient(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"}, srv.Client())
	_, err := c.Translate(context.Background(), "Film", "pl", "en")
	require.Error(t, err)

	var apiErr *openai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.HTTPStatusCode)
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Polish", languageName("pl"))
	assert.Equal(t, "English", languageName("en"))
	assert.Equal(t, "not a tag", languageName("not a tag"))
}
