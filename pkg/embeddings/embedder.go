// Package embeddings provides interfaces and implementations for converting
// text into fixed-dimension vector embeddings.
package embeddings

import (
	"context"
	"errors"
)

// Dimension is the fixed embedding dimension for the system. Every vector
// stored in the index has exactly this length; a provider returning any other
// length is a hard failure, never padded or truncated.
const Dimension = 768

var (
	// ErrEmbedding is returned when embedding generation fails.
	ErrEmbedding = errors.New("embedding failed")

	// ErrDimension is returned when a provider yields a vector whose length
	// differs from Dimension.
	ErrDimension = errors.New("embedding dimension mismatch")
)

// Embedder provides text embedding capabilities.
type Embedder interface {
	// Embed converts text into a vector embedding.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Close releases any resources held by the embedder.
	Close() error
}
