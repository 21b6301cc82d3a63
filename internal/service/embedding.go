package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const jinaEndpoint = "https://api.jina.ai/v1/embeddings"

// EmbeddingProvider produces fixed-length vectors for text.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EmbeddingConfig holds configuration for embedding service
type EmbeddingConfig struct {
	Provider   string
	Model      string
	APIKey     string
	Dimensions int
}

// EmbeddingService generates text embeddings through the Jina API.
type EmbeddingService struct {
	client     *resty.Client
	model      string
	dimensions int
}

// NewEmbeddingService creates a new embedding service
func NewEmbeddingService(cfg *EmbeddingConfig) *EmbeddingService {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(30 * time.Second)

	return &EmbeddingService{
		client:     client,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}
}

// Dimensions returns the configured embedding dimensionality.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// Jina API request/response structures
type jinaRequest struct {
	Model         string   `json:"model"`
	Task          string   `json:"task,omitempty"`
	Dimensions    int      `json:"dimensions,omitempty"`
	Input         []string `json:"input"`
	EmbeddingType string   `json:"embedding_type,omitempty"`
}

type jinaResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Detail string `json:"detail,omitempty"`
}

// Embed generates an embedding for a single text. Canonical intent phrases
// are queries against the FAQ library, so the retrieval.query task is used.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	req := jinaRequest{
		Model:         s.model,
		Task:          "retrieval.query",
		Dimensions:    s.dimensions,
		Input:         []string{text},
		EmbeddingType: "float",
	}

	var resp jinaResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(jinaEndpoint)

	if err != nil {
		return nil, fmt.Errorf("failed to call Jina API: %w", err)
	}

	if httpResp.StatusCode() != 200 {
		if resp.Detail != "" {
			return nil, fmt.Errorf("Jina API error: %s", resp.Detail)
		}
		return nil, fmt.Errorf("Jina API error: status %d", httpResp.StatusCode())
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	return resp.Data[0].Embedding, nil
}

// EmbedPassage generates an embedding for stored FAQ intents (the passage
// side of retrieval). Used by the re-embedding job.
func (s *EmbeddingService) EmbedPassage(ctx context.Context, text string) ([]float32, error) {
	req := jinaRequest{
		Model:         s.model,
		Task:          "retrieval.passage",
		Dimensions:    s.dimensions,
		Input:         []string{text},
		EmbeddingType: "float",
	}

	var resp jinaResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(jinaEndpoint)

	if err != nil {
		return nil, fmt.Errorf("failed to call Jina API: %w", err)
	}

	if httpResp.StatusCode() != 200 {
		if resp.Detail != "" {
			return nil, fmt.Errorf("Jina API error: %s", resp.Detail)
		}
		return nil, fmt.Errorf("Jina API error: status %d", httpResp.StatusCode())
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	return resp.Data[0].Embedding, nil
}
