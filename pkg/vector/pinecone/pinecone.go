// Package pinecone provides a Pinecone vector database driver implementation.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/rashtram/billrag/pkg/vector"
)

// Driver implements vector.Driver using Pinecone's data-plane REST API.
type Driver struct {
	indexHost  string
	apiKey     string
	namespace  string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds configuration for the Pinecone driver.
type Config struct {
	// IndexHost is the index data-plane host
	// (e.g., "https://bills-abc123.svc.us-east-1.pinecone.io").
	IndexHost string

	// APIKey authenticates data-plane requests.
	APIKey string

	// Namespace scopes all operations; empty uses the default namespace.
	Namespace string
}

// NewDriver creates a new Pinecone vector driver.
func NewDriver(c Config, logger *zap.Logger) (*Driver, error) {
	if c.IndexHost == "" {
		return nil, fmt.Errorf("pinecone index host is required")
	}
	if c.APIKey == "" {
		return nil, fmt.Errorf("pinecone API key is required")
	}

	return &Driver{
		indexHost: c.IndexHost,
		apiKey:    c.APIKey,
		namespace: c.Namespace,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}, nil
}

// Upsert stores documents, overwriting records with the same ID.
func (d *Driver) Upsert(ctx context.Context, docs []vector.Document) error {
	if len(docs) == 0 {
		return nil
	}

	vectors := make([]upsertVector, len(docs))
	for i, doc := range docs {
		vectors[i] = upsertVector{
			ID:       doc.ID,
			Values:   doc.Values,
			Metadata: doc.Metadata,
		}
	}

	var resp upsertResponse
	err := d.post(ctx, "/vectors/upsert", upsertRequest{
		Vectors:   vectors,
		Namespace: d.namespace,
	}, &resp)
	if err != nil {
		return err
	}

	d.logger.Debug("upserted vectors to pinecone",
		zap.Int("count", len(docs)),
		zap.Int("acknowledged", resp.UpsertedCount),
	)

	return nil
}

// Query finds the topK most similar documents, filtered by documentId when a
// filter is given.
func (d *Driver) Query(ctx context.Context, embedding []float32, topK int, filter *vector.Filter) ([]vector.QueryResult, error) {
	if topK <= 0 {
		topK = 10
	}

	req := queryRequest{
		Vector:          embedding,
		TopK:            topK,
		IncludeMetadata: true,
		Namespace:       d.namespace,
	}
	if filter != nil && filter.DocumentID != "" {
		req.Filter = map[string]any{
			vector.KeyDocumentID: map[string]any{"$eq": filter.DocumentID},
		}
	}

	var resp queryResponse
	if err := d.post(ctx, "/query", req, &resp); err != nil {
		return nil, err
	}

	results := make([]vector.QueryResult, 0, len(resp.Matches))
	for _, match := range resp.Matches {
		results = append(results, vector.QueryResult{
			Document: vector.Document{
				ID:       match.ID,
				Values:   match.Values,
				Metadata: match.Metadata,
			},
			Score: match.Score,
		})
	}

	d.logger.Debug("queried pinecone",
		zap.Int("results", len(results)),
	)

	return results, nil
}

// post sends a JSON request to the data-plane and decodes the response.
func (d *Driver) post(ctx context.Context, path string, body, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: marshaling request: %v", vector.ErrStore, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.indexHost+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("%w: creating request: %v", vector.ErrStore, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", d.apiKey)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: sending request: %v", vector.ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: pinecone returned status %d: %s", vector.ErrStore, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", vector.ErrStore, err)
	}
	return nil
}

// Close releases resources held by the driver.
func (d *Driver) Close() error {
	return nil
}

var _ vector.Driver = (*Driver)(nil)
