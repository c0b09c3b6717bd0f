// Package rag implements retrieval-augmented generation over ingested bills:
// similarity search scoped to a single document, question answering and
// summarization grounded in the retrieved chunks.
package rag

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rashtram/billrag/pkg/embeddings"
	"github.com/rashtram/billrag/pkg/vector"
)

// DefaultTopK is the number of chunks retrieved when the caller does not
// specify a limit.
const DefaultTopK = 5

// Match is a retrieved chunk with its similarity score.
type Match struct {
	// ChunkID is the stored record id, "{documentId}-chunk-{index}".
	ChunkID string

	// Score is the cosine similarity to the query.
	Score float32

	// Content is the chunk text.
	Content string

	// ChunkIndex is the chunk's position within its document.
	ChunkIndex int

	// TotalChunks is the number of chunks in the document.
	TotalChunks int

	// Metadata is the full stored record metadata.
	Metadata map[string]any
}

// Retriever embeds a query and finds the most similar chunks of a document.
type Retriever struct {
	embedder embeddings.Embedder
	store    vector.Driver
	logger   *zap.Logger
}

// NewRetriever creates a retriever over the given embedder and vector store.
func NewRetriever(embedder embeddings.Embedder, store vector.Driver, logger *zap.Logger) *Retriever {
	return &Retriever{
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// Retrieve returns the topK chunks of documentID most similar to the query,
// in descending score order. An unknown document yields an empty result, not
// an error.
func (r *Retriever) Retrieve(ctx context.Context, query, documentID string, topK int) ([]Match, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := r.store.Query(ctx, embedding, topK, &vector.Filter{DocumentID: documentID})
	if err != nil {
		return nil, fmt.Errorf("querying vector store: %w", err)
	}

	matches := make([]Match, 0, len(results))
	for _, res := range results {
		content, _ := res.Metadata[vector.KeyContent].(string)
		matches = append(matches, Match{
			ChunkID:     res.ID,
			Score:       res.Score,
			Content:     content,
			ChunkIndex:  metadataInt(res.Metadata, vector.KeyChunkIndex),
			TotalChunks: metadataInt(res.Metadata, vector.KeyTotalChunks),
			Metadata:    res.Metadata,
		})
	}

	r.logger.Debug("retrieved chunks",
		zap.String("documentId", documentID),
		zap.Int("matches", len(matches)),
	)

	return matches, nil
}

// metadataInt reads an integer metadata value regardless of the numeric type
// the driver round-tripped it as.
func metadataInt(metadata map[string]any, key string) int {
	switch v := metadata[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	}
	return 0
}
