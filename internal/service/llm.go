package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// CompletionRequest is a single chat-completion call: one system prompt, one
// user prompt, text out.
type CompletionRequest struct {
	Model       string
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// CompletionProvider abstracts the chat-completion backend so the pipeline
// services can be tested without network calls.
type CompletionProvider interface {
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
}

// LLMConfig holds configuration for the completion client.
type LLMConfig struct {
	APIKey  string
	BaseURL string
}

// LLMClient calls an OpenAI-compatible chat-completions endpoint.
type LLMClient struct {
	client   *resty.Client
	endpoint string
}

// NewLLMClient creates a completion client for the configured backend.
func NewLLMClient(cfg *LLMConfig) *LLMClient {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(30 * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &LLMClient{
		client:   client,
		endpoint: baseURL + "/chat/completions",
	}
}

// chatRequest represents the request to the LLM API.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete issues one chat-completion call and returns the trimmed response
// content.
func (c *LLMClient) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	body := chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	var resp chatResponse
	httpResp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&resp).
		Post(c.endpoint)

	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		if resp.Error != nil && resp.Error.Message != "" {
			return "", fmt.Errorf("completion API error: %s", resp.Error.Message)
		}
		return "", fmt.Errorf("completion API error: status %d", httpResp.StatusCode())
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("completion returned no content")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
