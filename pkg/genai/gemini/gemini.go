// Package gemini provides a genai.Generator backed by the Gemini
// generateContent REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rashtram/billrag/pkg/genai"
)

const (
	// DefaultModel is the default generation model.
	DefaultModel = "gemini-2.5-flash"

	// DefaultBaseURL is the Gemini API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
)

// Generator implements genai.Generator using the Gemini API.
type Generator struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds configuration for the Gemini generator.
type Config struct {
	// APIKey authenticates requests. Required.
	APIKey string

	// Model is the generation model. Defaults to DefaultModel if empty.
	Model string

	// BaseURL overrides the API endpoint, primarily for testing.
	BaseURL string
}

// NewGenerator creates a new Gemini text generator.
func NewGenerator(c Config, logger *zap.Logger) (*Generator, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	model := c.Model
	if model == "" {
		model = DefaultModel
	}
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Generator{
		baseURL: baseURL,
		apiKey:  c.APIKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt to the generateContent endpoint and returns the
// first candidate's text.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshaling request: %v", genai.ErrGeneration, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %v", genai.ErrGeneration, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: sending request: %v", genai.ErrGeneration, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: gemini returned status %d: %s", genai.ErrGeneration, resp.StatusCode, string(respBody))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", genai.ErrGeneration, err)
	}
	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("%w: response contained no candidates", genai.ErrGeneration)
	}

	var text strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}

	result := strings.TrimSpace(text.String())
	if result == "" {
		return "", fmt.Errorf("%w: response contained no text", genai.ErrGeneration)
	}

	g.logger.Debug("generated text",
		zap.String("model", g.model),
		zap.Int("length", len(result)),
	)

	return result, nil
}

// Close releases resources held by the generator.
func (g *Generator) Close() error {
	return nil
}

var _ genai.Generator = (*Generator)(nil)
