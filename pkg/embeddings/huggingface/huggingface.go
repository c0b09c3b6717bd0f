// Package huggingface implements pkg/embeddings' Embedder against the
// Hugging Face inference API's feature-extraction pipeline.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rashtram/billrag/pkg/embeddings"
)

const (
	// DefaultModel is the default sentence-embedding model.
	DefaultModel = "sentence-transformers/all-mpnet-base-v2"

	// DefaultBaseURL is the default inference API URL.
	DefaultBaseURL = "https://api-inference.huggingface.co"
)

// Embedder wraps the Hugging Face feature-extraction endpoint.
type Embedder struct {
	baseURL    string
	model      string
	token      string
	httpClient *http.Client
}

// Config holds configuration for the Hugging Face embedder.
type Config struct {
	// BaseURL is the inference API URL. Defaults to DefaultBaseURL if empty.
	BaseURL string

	// Model is the sentence-embedding model id.
	// Defaults to DefaultModel if empty.
	Model string

	// Token is the API token sent as a bearer credential.
	Token string
}

// embedRequest is the request body for the feature-extraction pipeline.
type embedRequest struct {
	Inputs  string       `json:"inputs"`
	Options embedOptions `json:"options"`
}

type embedOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

// NewEmbedder creates an embedder backed by the Hugging Face inference API.
func NewEmbedder(cfg Config) (*Embedder, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Embedder{
		baseURL: baseURL,
		model:   model,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// Embed converts text into a vector embedding.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	jsonBody, err := json.Marshal(embedRequest{
		Inputs:  text,
		Options: embedOptions{WaitForModel: true},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling request: %v", embeddings.ErrEmbedding, err)
	}

	url := fmt.Sprintf("%s/pipeline/feature-extraction/%s", e.baseURL, e.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", embeddings.ErrEmbedding, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: sending request: %v", embeddings.ErrEmbedding, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: hugging face returned status %d: %s", embeddings.ErrEmbedding, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", embeddings.ErrEmbedding, err)
	}

	return decodeVector(body)
}

// decodeVector accepts both response shapes of the pipeline: a pooled vector
// for sentence-transformers models, or a nested token matrix for bare models
// (in which case the first row is used).
func decodeVector(body []byte) ([]float32, error) {
	var pooled []float32
	if err := json.Unmarshal(body, &pooled); err == nil && len(pooled) > 0 {
		return pooled, nil
	}

	var nested [][]float32
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}

	return nil, fmt.Errorf("%w: unexpected response shape", embeddings.ErrEmbedding)
}

// Close releases resources held by the embedder.
func (e *Embedder) Close() error {
	return nil
}

var _ embeddings.Embedder = (*Embedder)(nil)
