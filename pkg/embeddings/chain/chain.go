// Package chain implements pkg/embeddings' Embedder as an ordered fallback
// chain over multiple providers.
//
// Providers are tried in priority order. Any failure, including a vector of
// the wrong dimension, moves on to the next provider. When every provider
// fails, the returned error names each provider's individual failure so the
// caller can distinguish the stages. Callers never receive a partial or
// default vector.
package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rashtram/billrag/pkg/embeddings"
)

// Provider is a named link in the fallback chain.
type Provider struct {
	// Name identifies the provider in aggregate error messages and logs.
	Name string

	// Embedder is the underlying embedding implementation.
	Embedder embeddings.Embedder
}

// Chain tries providers in order until one returns a valid vector.
type Chain struct {
	providers []Provider
	logger    *zap.Logger
}

// New creates a fallback chain over the given providers, tried in order.
func New(logger *zap.Logger, providers ...Provider) (*Chain, error) {
	if len(providers) == 0 {
		return nil, errors.New("at least one embedding provider is required")
	}
	for _, p := range providers {
		if p.Name == "" || p.Embedder == nil {
			return nil, errors.New("embedding providers need a name and an embedder")
		}
	}

	return &Chain{providers: providers, logger: logger}, nil
}

// Embed converts text into a vector embedding using the first provider that
// succeeds with a vector of exactly embeddings.Dimension entries.
func (c *Chain) Embed(ctx context.Context, text string) ([]float32, error) {
	failures := make([]string, 0, len(c.providers))

	for _, p := range c.providers {
		vec, err := p.Embedder.Embed(ctx, text)
		if err == nil && len(vec) != embeddings.Dimension {
			err = fmt.Errorf("%w: got %d, want %d", embeddings.ErrDimension, len(vec), embeddings.Dimension)
		}
		if err == nil {
			return vec, nil
		}

		c.logger.Warn("embedding provider failed, trying next",
			zap.String("provider", p.Name),
			zap.Error(err),
		)
		failures = append(failures, fmt.Sprintf("%s: %v", p.Name, err))
	}

	return nil, fmt.Errorf("%w: all providers failed (%s)", embeddings.ErrEmbedding, strings.Join(failures, "; "))
}

// Close closes every provider in the chain, returning the first error.
func (c *Chain) Close() error {
	var firstErr error
	for _, p := range c.providers {
		if err := p.Embedder.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ embeddings.Embedder = (*Chain)(nil)
