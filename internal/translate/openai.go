// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package translate

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ManuGH/epgtrans/internal/platform/httpx"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// OpenAIConfig selects the chat model used for translation.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIClient translates through a chat completion model.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient creates a client. A nil httpClient gets an httpx client
// with the default timeout.
func NewOpenAIClient(cfg OpenAIConfig, httpClient *http.Client) *OpenAIClient {
	if httpClient == nil {
		httpClient = httpx.NewClient(0)
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	oc.HTTPClient = httpClient

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(oc), model: model}
}

// Translate implements Client.
func (o *OpenAIClient) Translate(ctx context.Context, text, from, to string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf("You translate TV programme titles and descriptions from %s to %s. "+
					"Respond with only the translation, nothing else. Keep names, numbers and line breaks.",
					languageName(from), languageName(to)),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: 0.2,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyTranslation
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", ErrEmptyTranslation
	}
	return out, nil
}

// languageName spells out a BCP 47 code in English, e.g. "pl" -> "Polish".
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}
